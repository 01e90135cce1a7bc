package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Inverse of frame(): strip the envelope and verify
 *		the CRC.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
)

type deframe_result_s struct {
	valid   bool
	payload string
	errstr  string
}

/*-------------------------------------------------------------------
 *
 * Name:        deframe
 *
 * Purpose:    	Locate the payload inside decoded text and check it.
 *
 * Inputs:	text	- Output of the Morse decoder.
 *
 * Returns:	valid, payload, error.  On a CRC mismatch the payload
 *		is still returned so the caller can show diagnostics.
 *
 * Description:	Frame format: "KKK " + payload + crc4 + " AR".
 *		Minimum length 11 (prefix 4, crc 4, suffix 3).
 *
 *--------------------------------------------------------------------*/

func deframe(text string) deframe_result_s {

	var min_len = len(FRAME_PREFIX) + FRAME_CRC_LEN + len(FRAME_SUFFIX)

	if len(text) < min_len {
		return deframe_result_s{false, "", "frame too short"}
	}

	if text[:len(FRAME_PREFIX)] != FRAME_PREFIX {
		return deframe_result_s{false, "", "missing KKK preamble"}
	}

	if text[len(text)-len(FRAME_SUFFIX):] != FRAME_SUFFIX {
		return deframe_result_s{false, "", "missing AR prosign"}
	}

	var body = text[len(FRAME_PREFIX) : len(text)-len(FRAME_SUFFIX)]

	// Unreachable while min_len covers prefix+crc+suffix, kept as a
	// guard against the constants drifting apart.
	if len(body) < FRAME_CRC_LEN {
		return deframe_result_s{false, "", "body too short for CRC"}
	}

	var payload = body[:len(body)-FRAME_CRC_LEN]
	var received_crc = body[len(body)-FRAME_CRC_LEN:]

	var expected_crc = encode_crc(checksum_crc32(payload))

	if received_crc != expected_crc {
		return deframe_result_s{false, payload,
			fmt.Sprintf("CRC mismatch: expected %s, got %s", expected_crc, received_crc)}
	}

	return deframe_result_s{true, payload, ""}
}
