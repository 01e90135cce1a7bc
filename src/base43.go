package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Base 43 textual encoding of binary data.
 *
 * Description:	Radix 43 over an alphabet chosen so that every symbol
 *		has a Morse code assignment.  This keeps a framed
 *		payload keyable on the air.  Electrum uses a similar
 *		base 43 for compact QR transport of transactions but
 *		its alphabet contains '*', which Morse cannot carry.
 *
 *---------------------------------------------------------------*/

import (
	"math/big"
	"strings"
)

const B43_ALPHABET = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ+-./:=?"

var b43_radix = big.NewInt(int64(len(B43_ALPHABET)))

/*-------------------------------------------------------------------
 *
 * Name:        base43_encode
 *
 * Purpose:    	Encode binary data as Base 43 text.
 *
 * Inputs:	data
 *
 * Returns:	Textual form.  Leading zero bytes become leading '0'
 *		symbols so the length information survives.
 *
 *--------------------------------------------------------------------*/

func base43_encode(data []byte) string {

	if len(data) == 0 {
		return ""
	}

	var zeros = 0
	for zeros < len(data) && data[zeros] == 0 {
		zeros++
	}

	var num = new(big.Int).SetBytes(data)
	var mod = new(big.Int)

	var sb strings.Builder
	for num.Sign() > 0 {
		num.DivMod(num, b43_radix, mod)
		sb.WriteByte(B43_ALPHABET[mod.Int64()])
	}
	for i := 0; i < zeros; i++ {
		sb.WriteByte(B43_ALPHABET[0])
	}

	// Digits came out least significant first.
	var out = []byte(sb.String())
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}

	return string(out)
}

/*-------------------------------------------------------------------
 *
 * Name:        base43_decode
 *
 * Purpose:    	Decode Base 43 text back to binary.
 *
 * Inputs:	text
 *
 * Returns:	Original bytes, or nil if the text is empty or contains
 *		a symbol outside the alphabet.
 *
 *--------------------------------------------------------------------*/

func base43_decode(text string) []byte {

	if len(text) == 0 {
		return nil
	}

	var zeros = 0
	for zeros < len(text) && text[zeros] == B43_ALPHABET[0] {
		zeros++
	}

	var num = new(big.Int)
	for _, c := range []byte(text) {
		var v = strings.IndexByte(B43_ALPHABET, c)
		if v < 0 {
			return nil
		}
		num.Mul(num, b43_radix)
		num.Add(num, big.NewInt(int64(v)))
	}

	var out = make([]byte, zeros)
	if num.Sign() > 0 {
		out = append(out, num.Bytes()...)
	}

	return out
}
