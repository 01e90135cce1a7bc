package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Activate an output control line for push to talk
 *		(PTT) around a transmission.
 *
 * Description:	For driving a real transmitter instead of a bare
 *		speaker.  The line is a GPIO pin (Raspberry Pi style)
 *		asserted just before audio starts and dropped when it
 *		ends.  Disabled by default; a node keying a speaker
 *		needs none of this.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

type ptt_config_s struct {
	enabled    bool
	chip       string /* e.g. "gpiochip0" */
	line       int    /* GPIO offset */
	active_low bool
}

func ptt_config_default() ptt_config_s {
	return ptt_config_s{
		enabled: false,
		chip:    "gpiochip0",
		line:    17,
	}
}

type ptt_s struct {
	cfg  ptt_config_s
	line *gpiocdev.Line
}

/*-------------------------------------------------------------------
 *
 * Name:        ptt_open
 *
 * Purpose:    	Request the GPIO line as an output, initially
 *		unkeyed.
 *
 * Returns:	nil handle without error when PTT is disabled.
 *
 *--------------------------------------------------------------------*/

func ptt_open(cfg ptt_config_s) (*ptt_s, error) {

	if !cfg.enabled {
		return nil, nil
	}

	var opts = []gpiocdev.LineReqOption{
		gpiocdev.AsOutput(0),
	}
	if cfg.active_low {
		opts = append(opts, gpiocdev.AsActiveLow)
	}

	var line, err = gpiocdev.RequestLine(cfg.chip, cfg.line, opts...)
	if err != nil {
		return nil, fmt.Errorf("ptt gpio %s:%d: %w", cfg.chip, cfg.line, err)
	}

	return &ptt_s{cfg: cfg, line: line}, nil
}

/*-------------------------------------------------------------------
 *
 * Name:        ptt_set
 *
 * Purpose:    	Key or unkey the transmitter.  A nil handle (PTT
 *		disabled) is a no-op.
 *
 *--------------------------------------------------------------------*/

func (p *ptt_s) ptt_set(on bool) error {

	if p == nil || p.line == nil {
		return nil
	}

	var v = 0
	if on {
		v = 1
	}

	return p.line.SetValue(v)
}

func (p *ptt_s) ptt_close() {
	if p == nil || p.line == nil {
		return
	}
	p.line.SetValue(0)
	p.line.Close()
	p.line = nil
}
