package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Interface to the audio device commonly called a
 *		"sound card" for historical reasons.
 *
 * Description:	PortAudio, blocking mode, mono float32 both ways.
 *		The output stream plays rendered CW; the input stream
 *		captures for a fixed duration for the decode pipeline.
 *
 *		A failed input open is not fatal.  A node wired only
 *		to a speaker is still a useful transmitter, so we log
 *		it and carry on in transmit-only mode.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/gordonklaus/portaudio"
)

/* Frames moved per blocking read/write call. */
const AUDIO_CHUNK_FRAMES = 2048

type audio_config_s struct {
	sample_rate   float64
	tone_freq_hz  float64
	wpm           int
	output_device int /* -1 = default */
	input_device  int /* -1 = default */
}

func audio_config_default() audio_config_s {
	return audio_config_s{
		sample_rate:   44100,
		tone_freq_hz:  750,
		wpm:           20,
		output_device: -1,
		input_device:  -1,
	}
}

type audio_io_s struct {
	cfg         audio_config_s
	out         *portaudio.Stream
	in          *portaudio.Stream
	out_buf     []float32
	in_buf      []float32
	initialized bool
}

/*-------------------------------------------------------------------
 *
 * Name:        audio_open
 *
 * Purpose:    	Initialize PortAudio and open the streams.
 *
 * Inputs:	cfg	- Device selection and rates.
 *
 * Returns:	Handle, or error if the library or the output stream
 *		could not be opened.  Input failure leaves a usable
 *		transmit-only handle.
 *
 *--------------------------------------------------------------------*/

func audio_open(cfg audio_config_s) (*audio_io_s, error) {

	var a = &audio_io_s{cfg: cfg}

	var err = portaudio.Initialize()
	if err != nil {
		return nil, fmt.Errorf("portaudio init: %w", err)
	}
	a.initialized = true

	var out_dev, in_dev *portaudio.DeviceInfo

	if cfg.output_device >= 0 || cfg.input_device >= 0 {
		var devices []*portaudio.DeviceInfo
		devices, err = portaudio.Devices()
		if err != nil {
			a.audio_close()
			return nil, fmt.Errorf("portaudio devices: %w", err)
		}
		if cfg.output_device >= 0 && cfg.output_device < len(devices) {
			out_dev = devices[cfg.output_device]
		}
		if cfg.input_device >= 0 && cfg.input_device < len(devices) {
			in_dev = devices[cfg.input_device]
		}
	}

	if out_dev == nil {
		out_dev, err = portaudio.DefaultOutputDevice()
		if err != nil {
			a.audio_close()
			return nil, fmt.Errorf("no output device: %w", err)
		}
	}

	var out_params = portaudio.StreamParameters{
		Output: portaudio.StreamDeviceParameters{
			Device:   out_dev,
			Channels: 1,
			Latency:  out_dev.DefaultLowOutputLatency,
		},
		SampleRate:      cfg.sample_rate,
		FramesPerBuffer: AUDIO_CHUNK_FRAMES,
	}

	a.out_buf = make([]float32, AUDIO_CHUNK_FRAMES)
	a.out, err = portaudio.OpenStream(out_params, &a.out_buf)
	if err != nil {
		a.audio_close()
		return nil, fmt.Errorf("output stream open: %w", err)
	}

	if in_dev == nil {
		in_dev, err = portaudio.DefaultInputDevice()
	}
	if in_dev != nil && err == nil {
		var in_params = portaudio.StreamParameters{
			Input: portaudio.StreamDeviceParameters{
				Device:   in_dev,
				Channels: 1,
				Latency:  in_dev.DefaultLowInputLatency,
			},
			SampleRate:      cfg.sample_rate,
			FramesPerBuffer: AUDIO_CHUNK_FRAMES,
		}

		a.in_buf = make([]float32, AUDIO_CHUNK_FRAMES)
		a.in, err = portaudio.OpenStream(in_params, &a.in_buf)
	}
	if a.in == nil {
		log.Warn("no usable audio input, continuing transmit-only", "err", err)
	}

	return a, nil
}

/*-------------------------------------------------------------------
 *
 * Name:        audio_close
 *
 * Purpose:    	Release streams and shut PortAudio down.  Safe to
 *		call on a partially opened handle.
 *
 *--------------------------------------------------------------------*/

func (a *audio_io_s) audio_close() {
	if a.out != nil {
		a.out.Close()
		a.out = nil
	}
	if a.in != nil {
		a.in.Close()
		a.in = nil
	}
	if a.initialized {
		portaudio.Terminate()
		a.initialized = false
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        audio_transmit
 *
 * Purpose:    	Render a timing array and play it.  Blocks for the
 *		full duration of the audio.
 *
 *--------------------------------------------------------------------*/

func (a *audio_io_s) audio_transmit(timing []int8) error {

	if a.out == nil {
		return fmt.Errorf("output stream not open")
	}

	var pcm = render_tone(timing, a.cfg.sample_rate, a.cfg.tone_freq_hz, a.cfg.wpm)

	var err = a.out.Start()
	if err != nil {
		return fmt.Errorf("output start: %w", err)
	}

	for pos := 0; pos < len(pcm); pos += AUDIO_CHUNK_FRAMES {
		var n = copy(a.out_buf, pcm[pos:])
		for i := n; i < AUDIO_CHUNK_FRAMES; i++ {
			a.out_buf[i] = 0 // pad the final chunk with silence
		}
		err = a.out.Write()
		if err != nil {
			a.out.Stop()
			return fmt.Errorf("output write: %w", err)
		}
	}

	return a.out.Stop()
}

/*-------------------------------------------------------------------
 *
 * Name:        audio_capture
 *
 * Purpose:    	Record from the input device.  Blocks for the full
 *		requested duration.
 *
 * Inputs:	duration_sec
 *
 * Returns:	Captured mono samples, or nil when there is no input
 *		stream or it fails to start.  A read error ends the
 *		capture early with the samples read so far.
 *
 *--------------------------------------------------------------------*/

func (a *audio_io_s) audio_capture(duration_sec float64) []float32 {

	if a.in == nil {
		return nil
	}

	var num_frames = int(a.cfg.sample_rate * duration_sec)
	var pcm = make([]float32, 0, num_frames)

	var err = a.in.Start()
	if err != nil {
		log.Error("input start failed", "err", err)
		return nil
	}

	for len(pcm) < num_frames {
		err = a.in.Read()
		if err != nil {
			log.Error("input read failed", "err", err)
			break
		}
		var want = num_frames - len(pcm)
		if want > len(a.in_buf) {
			want = len(a.in_buf)
		}
		pcm = append(pcm, a.in_buf[:want]...)
	}

	a.in.Stop()

	return pcm
}

/*-------------------------------------------------------------------
 *
 * Name:        audio_list_devices
 *
 * Purpose:    	Print available audio devices and their indices for
 *		the "devices" command.
 *
 *--------------------------------------------------------------------*/

func audio_list_devices() error {

	var err = portaudio.Initialize()
	if err != nil {
		return err
	}
	defer portaudio.Terminate()

	var devices []*portaudio.DeviceInfo
	devices, err = portaudio.Devices()
	if err != nil {
		return err
	}

	for i, info := range devices {
		fmt.Printf("  [%d] %s  (in:%d out:%d)\n",
			i, info.Name, info.MaxInputChannels, info.MaxOutputChannels)
	}

	return nil
}
