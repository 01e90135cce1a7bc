package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Alternative capture source: audio streamed over UDP
 *		from a software defined radio.
 *
 * Description:	gqrx and friends can stream demodulated audio as raw
 *		16 bit little endian mono PCM over UDP.  We listen for
 *		a bounded duration, convert to float, and feed the
 *		same decode pipeline the microphone feeds.  The
 *		pipeline neither knows nor cares where PCM came from.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/binary"
	"fmt"
	"net"
	"time"

	"github.com/charmbracelet/log"
)

type sdr_config_s struct {
	enabled     bool
	listen_addr string /* e.g. "0.0.0.0:7355" */
	sample_rate float64
}

func sdr_config_default() sdr_config_s {
	return sdr_config_s{
		enabled:     false,
		listen_addr: "0.0.0.0:7355",
		sample_rate: 44100,
	}
}

type sdr_input_s struct {
	cfg  sdr_config_s
	conn *net.UDPConn
}

/*-------------------------------------------------------------------
 *
 * Name:        sdr_open
 *
 * Purpose:    	Bind the UDP listener for the audio stream.
 *
 *--------------------------------------------------------------------*/

func sdr_open(cfg sdr_config_s) (*sdr_input_s, error) {

	var addr, err = net.ResolveUDPAddr("udp", cfg.listen_addr)
	if err != nil {
		return nil, fmt.Errorf("sdr listen address %q: %w", cfg.listen_addr, err)
	}

	var conn *net.UDPConn
	conn, err = net.ListenUDP("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("sdr listen: %w", err)
	}

	log.Info("sdr input listening", "addr", cfg.listen_addr)

	return &sdr_input_s{cfg: cfg, conn: conn}, nil
}

func (s *sdr_input_s) sdr_close() {
	if s == nil || s.conn == nil {
		return
	}
	s.conn.Close()
	s.conn = nil
}

/*-------------------------------------------------------------------
 *
 * Name:        sdr_capture
 *
 * Purpose:    	Collect duration_sec worth of streamed samples.
 *
 * Returns:	Mono float32 PCM.  Returns whatever arrived if the
 *		stream stalls; an idle stream gives an empty buffer,
 *		which the pipeline reports as having no blocks.
 *
 *--------------------------------------------------------------------*/

func (s *sdr_input_s) sdr_capture(duration_sec float64) []float32 {

	if s == nil || s.conn == nil {
		return nil
	}

	var want = int(s.cfg.sample_rate * duration_sec)
	var pcm = make([]float32, 0, want)

	var deadline = time.Now().Add(time.Duration(duration_sec*float64(time.Second)) + time.Second)
	var packet = make([]byte, 65536)

	for len(pcm) < want {
		s.conn.SetReadDeadline(deadline)
		var n, _, err = s.conn.ReadFromUDP(packet)
		if err != nil {
			log.Warn("sdr stream ended early", "have", len(pcm), "want", want, "err", err)
			break
		}

		for i := 0; i+1 < n && len(pcm) < want; i += 2 {
			var sample = int16(binary.LittleEndian.Uint16(packet[i : i+2]))
			pcm = append(pcm, float32(sample)/32768.0)
		}
	}

	return pcm
}
