package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Staged receive pipeline: PCM in, transaction hex out.
 *
 * Description:	Five stages run in order and stop at the first
 *		failure:
 *
 *		  1. Goertzel detect      -> tone bits
 *		  2. Morse decode         -> text
 *		  3. Deframe + CRC        -> Base 43 payload
 *		  4. Base 43 decode       -> raw bytes
 *		  5. hex + validate       -> transaction hex
 *
 *		Everything computed before the failing stage stays in
 *		the result, so a CRC mismatch still hands the operator
 *		the raw Morse text that was heard.
 *
 *---------------------------------------------------------------*/

import (
	"math"
)

type decode_stage_e int

const (
	DECODE_STAGE_NONE decode_stage_e = iota
	DECODE_STAGE_GOERTZEL
	DECODE_STAGE_MORSE_DECODE
	DECODE_STAGE_DEFRAME
	DECODE_STAGE_BASE43_DECODE
	DECODE_STAGE_VALIDATE
	DECODE_STAGE_COMPLETE
)

func decode_stage_name(stage decode_stage_e) string {
	switch stage {
	case DECODE_STAGE_NONE:
		return "none"
	case DECODE_STAGE_GOERTZEL:
		return "goertzel"
	case DECODE_STAGE_MORSE_DECODE:
		return "morse_decode"
	case DECODE_STAGE_DEFRAME:
		return "deframe"
	case DECODE_STAGE_BASE43_DECODE:
		return "base43_decode"
	case DECODE_STAGE_VALIDATE:
		return "validate"
	case DECODE_STAGE_COMPLETE:
		return "complete"
	}
	return "unknown"
}

type decode_result_s struct {
	stage_reached decode_stage_e
	success       bool

	/* Intermediate values, populated as stages complete. */
	tone_bits      []bool
	morse_text     string
	base43_payload string
	raw_bytes      []byte
	hex_string     string

	errstr string
}

type decode_pipeline_s struct {
	detector *goertzel_s
	decoder  *morse_decoder_s
}

/*-------------------------------------------------------------------
 *
 * Name:        decode_pipeline_init
 *
 * Purpose:    	Build the pipeline for a set of audio parameters.
 *
 * Inputs:	sample_rate, tone_freq, wpm, block_size, threshold
 *		as for goertzel_init.
 *
 * Description:	Immutable after construction and safe to reuse across
 *		captures.
 *
 *--------------------------------------------------------------------*/

func decode_pipeline_init(sample_rate float64, tone_freq float64, wpm int, block_size int, threshold float64) *decode_pipeline_s {

	var blocks_per_unit = int(math.Round(unit_duration(wpm) * sample_rate / float64(block_size)))

	return &decode_pipeline_s{
		detector: goertzel_init(sample_rate, tone_freq, block_size, threshold),
		decoder:  morse_decoder_init(blocks_per_unit),
	}
}

/*-------------------------------------------------------------------
 *
 * Name:        decode
 *
 * Purpose:    	Run the full receive pipeline on a captured buffer.
 *
 * Returns:	Result with the furthest stage reached.  success is
 *		true exactly when stage_reached is COMPLETE.
 *
 *--------------------------------------------------------------------*/

func (p *decode_pipeline_s) decode(pcm []float32) decode_result_s {

	var result decode_result_s

	result.stage_reached = DECODE_STAGE_GOERTZEL
	result.tone_bits = p.detector.goertzel_detect(pcm)
	if len(result.tone_bits) == 0 {
		result.errstr = "Goertzel: no blocks to analyze"
		return result
	}

	result.stage_reached = DECODE_STAGE_MORSE_DECODE
	result.morse_text = p.decoder.morse_decoder_decode(result.tone_bits)
	if len(result.morse_text) == 0 {
		result.errstr = "Morse decode: no text recovered"
		return result
	}

	result.stage_reached = DECODE_STAGE_DEFRAME
	var df = deframe(result.morse_text)
	if !df.valid {
		result.errstr = "Deframe: " + df.errstr
		return result
	}
	result.base43_payload = df.payload

	result.stage_reached = DECODE_STAGE_BASE43_DECODE
	result.raw_bytes = base43_decode(result.base43_payload)
	if len(result.raw_bytes) == 0 {
		result.errstr = "Base43 decode: invalid encoding"
		return result
	}

	result.stage_reached = DECODE_STAGE_VALIDATE
	result.hex_string = tx_bytes_to_hex(result.raw_bytes)

	if !tx_validate(result.hex_string) {
		result.errstr = "Transaction validation failed"
		return result
	}

	result.stage_reached = DECODE_STAGE_COMPLETE
	result.success = true
	return result
}
