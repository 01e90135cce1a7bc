package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	CRC-32 checksum and the on-air frame envelope.
 *
 * Description:	A payload travels as
 *
 *			"KKK " <payload> <crc4> " AR"
 *
 *		KKK is the CW invitation to transmit, AR the end of
 *		message prosign.  The 4 symbol CRC lets the receiver
 *		reject a payload mangled anywhere along the acoustic
 *		path.  There is no separator between payload and CRC;
 *		the CRC is always the last 4 characters before " AR".
 *
 *---------------------------------------------------------------*/

import (
	"hash/crc32"
)

const FRAME_PREFIX = "KKK "
const FRAME_SUFFIX = " AR"
const FRAME_CRC_LEN = 4

/*-------------------------------------------------------------------
 *
 * Name:        checksum_crc32
 *
 * Purpose:    	CRC-32 (IEEE 802.3 polynomial) over a payload string.
 *
 *--------------------------------------------------------------------*/

func checksum_crc32(payload string) uint32 {
	return crc32.ChecksumIEEE([]byte(payload))
}

/*-------------------------------------------------------------------
 *
 * Name:        encode_crc
 *
 * Purpose:    	Render a CRC-32 value as exactly 4 Base 43 symbols.
 *
 * Description:	The value is reduced modulo 43^4 and written big
 *		endian in the Base 43 alphabet, zero padded.  Every
 *		symbol is Morse encodable so the CRC survives the air
 *		like any other payload character.
 *
 *--------------------------------------------------------------------*/

func encode_crc(crc uint32) string {

	const radix = uint64(len(B43_ALPHABET))

	var v = uint64(crc) % (radix * radix * radix * radix)

	var out [FRAME_CRC_LEN]byte
	for i := FRAME_CRC_LEN - 1; i >= 0; i-- {
		out[i] = B43_ALPHABET[v%radix]
		v /= radix
	}

	return string(out[:])
}

/*-------------------------------------------------------------------
 *
 * Name:        frame
 *
 * Purpose:    	Wrap a payload in the on-air envelope.
 *
 * Inputs:	payload	- Base 43 text.
 *
 * Returns:	"KKK " + payload + crc4 + " AR"
 *
 *--------------------------------------------------------------------*/

func frame(payload string) string {
	return FRAME_PREFIX + payload + encode_crc(checksum_crc32(payload)) + FRAME_SUFFIX
}
