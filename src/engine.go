package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Top level engine wiring the pipeline to audio I/O
 *		and the network gateway.
 *
 * Description:	Transmit path:
 *
 *		  hex -> validate -> base43 -> frame (CRC) -> morse
 *		      timing -> audio out
 *
 *		Receive path:
 *
 *		  audio in (mic or SDR stream) -> Goertzel -> morse
 *		      decode -> deframe -> base43 decode -> validate
 *		      -> (optionally) broadcast
 *
 *		The engine owns the speaker and microphone streams
 *		for its lifetime.  The decode pipeline is built on
 *		first use; a transmit-only run never constructs
 *		receive state.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"time"

	"github.com/charmbracelet/log"
)

var errInvalidTX = errors.New("invalid or unsigned transaction")

type node_engine_s struct {
	cfg      config_s
	audio    *audio_io_s
	gateway  *gateway_s
	ptt      *ptt_s
	sdr      *sdr_input_s
	rxlog    *rxlog_s
	pipeline *decode_pipeline_s
}

/*-------------------------------------------------------------------
 *
 * Name:        engine_init
 *
 * Purpose:    	Bring up every subsystem.
 *
 * Returns:	Engine, or error when the audio driver or a requested
 *		optional subsystem cannot start.  A missing microphone
 *		is not an error; the engine runs transmit-only.
 *
 *--------------------------------------------------------------------*/

func engine_init(cfg config_s) (*node_engine_s, error) {

	var e = &node_engine_s{cfg: cfg}

	var err error
	e.audio, err = audio_open(cfg.audio_config())
	if err != nil {
		return nil, err
	}

	e.gateway = gateway_open(cfg.gateway_config())

	e.ptt, err = ptt_open(cfg.ptt_config())
	if err != nil {
		e.engine_shutdown()
		return nil, err
	}

	if cfg.SDR.Enabled {
		e.sdr, err = sdr_open(cfg.sdr_config())
		if err != nil {
			e.engine_shutdown()
			return nil, err
		}
	}

	e.rxlog = rxlog_init(cfg.rxlog_config())

	return e, nil
}

func (e *node_engine_s) engine_shutdown() {
	e.rxlog.rxlog_term()
	e.sdr.sdr_close()
	e.ptt.ptt_close()
	if e.audio != nil {
		e.audio.audio_close()
	}
	e.pipeline = nil
}

/* ----- Transmit path ----- */

/*-------------------------------------------------------------------
 *
 * Name:        encode_tx
 *
 * Purpose:    	Encode a raw transaction into a framed Morse timing
 *		array.
 *
 * Returns:	Timing array, or empty when validation fails.  An
 *		empty array is the only failure signal here.
 *
 *--------------------------------------------------------------------*/

func (e *node_engine_s) encode_tx(raw_tx_hex string) []int8 {

	if !tx_validate(raw_tx_hex) {
		log.Error("transaction validation failed, not encoding")
		return nil
	}

	var raw_bytes = tx_hex_to_bytes(raw_tx_hex)
	var b43 = base43_encode(raw_bytes)
	var framed = frame(b43)

	log.Info("framed payload", "chars", len(framed))

	return morse_encode(framed)
}

// play keys PTT (when configured) around the rendered audio.
func (e *node_engine_s) play(timing []int8) error {

	if err := e.ptt.ptt_set(true); err != nil {
		return err
	}
	defer e.ptt.ptt_set(false)

	return e.audio.audio_transmit(timing)
}

func (e *node_engine_s) transmit(raw_tx_hex string) error {
	var timing = e.encode_tx(raw_tx_hex)
	if len(timing) == 0 {
		return errInvalidTX
	}
	return e.play(timing)
}

/* ----- Receive path ----- */

// listen captures from the SDR stream when one is configured,
// otherwise from the microphone.
func (e *node_engine_s) listen(duration_sec float64) []float32 {
	if e.sdr != nil {
		return e.sdr.sdr_capture(duration_sec)
	}
	return e.audio.audio_capture(duration_sec)
}

func (e *node_engine_s) decode_audio(pcm []float32) decode_result_s {

	if e.pipeline == nil {
		e.pipeline = decode_pipeline_init(
			e.cfg.Audio.SampleRate,
			e.cfg.Audio.ToneHz,
			e.cfg.Audio.WPM,
			e.cfg.Goertzel.BlockSize,
			e.cfg.Goertzel.Threshold)
	}

	var result = e.pipeline.decode(pcm)

	e.rxlog.rxlog_write(time.Now(), result)

	return result
}

func (e *node_engine_s) listen_and_decode(duration_sec float64) decode_result_s {
	return e.decode_audio(e.listen(duration_sec))
}

/* ----- Network ----- */

/*-------------------------------------------------------------------
 *
 * Name:        broadcast
 *
 * Purpose:    	Send a raw transaction to the Bitcoin network.
 *
 * Returns:	txid, or "" on failure.  Validation runs again here;
 *		we refuse to relay something the network would reject,
 *		wherever the hex came from.
 *
 *--------------------------------------------------------------------*/

func (e *node_engine_s) broadcast(raw_tx_hex string) string {

	if !tx_validate(raw_tx_hex) {
		log.Error("refusing to broadcast invalid transaction")
		return ""
	}

	return e.gateway.broadcast(raw_tx_hex)
}
