package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Raw Bitcoin transaction handling: hex conversion,
 *		structural parsing, and a signed-ness check.
 *
 * Description:	This is not consensus validation.  The node only needs
 *		to refuse garbage before spending a minute keying it
 *		out, and to refuse relaying something the network would
 *		reject on sight.  A transaction passes if it parses as
 *		a complete serialization (legacy or segwit) with no
 *		trailing bytes, and every input carries either a
 *		scriptSig or a witness stack.
 *
 *---------------------------------------------------------------*/

import (
	"encoding/binary"
	"encoding/hex"
	"strings"
)

/*-------------------------------------------------------------------
 *
 * Name:        tx_hex_to_bytes / tx_bytes_to_hex
 *
 * Purpose:    	Convert between hex text and raw bytes.
 *
 * Returns:	tx_hex_to_bytes returns nil for odd length or any
 *		non-hex character.  tx_bytes_to_hex emits lower case.
 *
 *--------------------------------------------------------------------*/

func tx_hex_to_bytes(h string) []byte {
	var b, err = hex.DecodeString(strings.ToLower(h))
	if err != nil {
		return nil
	}
	return b
}

func tx_bytes_to_hex(b []byte) string {
	return hex.EncodeToString(b)
}

// hex_equal compares two hex strings ignoring case.  Morse has no
// case, so a round trip can legitimately change it.
func hex_equal(a, b string) bool {
	return strings.EqualFold(a, b)
}

/* Cursor over the serialized transaction. */

type tx_reader_s struct {
	data []byte
	pos  int
	bad  bool
}

func (r *tx_reader_s) take(n int) []byte {
	if r.bad || n < 0 || r.pos+n > len(r.data) {
		r.bad = true
		return nil
	}
	var b = r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

func (r *tx_reader_s) u32() uint32 {
	var b = r.take(4)
	if r.bad {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

func (r *tx_reader_s) u64() uint64 {
	var b = r.take(8)
	if r.bad {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// varint reads the Bitcoin CompactSize encoding.
func (r *tx_reader_s) varint() uint64 {
	var b = r.take(1)
	if r.bad {
		return 0
	}
	switch b[0] {
	case 0xfd:
		var v = r.take(2)
		if r.bad {
			return 0
		}
		return uint64(binary.LittleEndian.Uint16(v))
	case 0xfe:
		return uint64(r.u32())
	case 0xff:
		return r.u64()
	default:
		return uint64(b[0])
	}
}

/* Sanity cap so a corrupted count can't ask for gigabytes. */
const TX_MAX_ITEMS = 100000

/*-------------------------------------------------------------------
 *
 * Name:        tx_validate
 *
 * Purpose:    	Decide whether hex is a complete, signed transaction.
 *
 * Inputs:	h	- Raw transaction hex, either case.
 *
 * Returns:	true when the serialization is structurally complete
 *		and every input is signed.
 *
 *--------------------------------------------------------------------*/

func tx_validate(h string) bool {

	var raw = tx_hex_to_bytes(h)

	// Smallest conceivable transaction:
	// version + counts + one input + one output + locktime.
	if len(raw) < 60 {
		return false
	}

	var r = tx_reader_s{data: raw}

	r.u32() // version

	var segwit = false
	var n_in = r.varint()
	if n_in == 0 && !r.bad {
		// BIP 144 marker; flag byte must be 0x01.
		var flag = r.take(1)
		if r.bad || flag[0] != 0x01 {
			return false
		}
		segwit = true
		n_in = r.varint()
	}
	if r.bad || n_in == 0 || n_in > TX_MAX_ITEMS {
		return false
	}

	var script_sig_len = make([]uint64, n_in)

	for i := uint64(0); i < n_in; i++ {
		r.take(32) // previous txid
		r.u32()    // previous vout
		var slen = r.varint()
		if r.bad || slen > uint64(len(raw)) {
			return false
		}
		script_sig_len[i] = slen
		r.take(int(slen))
		r.u32() // sequence
	}

	var n_out = r.varint()
	if r.bad || n_out == 0 || n_out > TX_MAX_ITEMS {
		return false
	}

	for i := uint64(0); i < n_out; i++ {
		r.u64() // value
		var slen = r.varint()
		if r.bad || slen > uint64(len(raw)) {
			return false
		}
		r.take(int(slen))
	}

	var witness_items = make([]uint64, n_in)

	if segwit {
		for i := uint64(0); i < n_in; i++ {
			var n_items = r.varint()
			if r.bad || n_items > TX_MAX_ITEMS {
				return false
			}
			witness_items[i] = n_items
			for j := uint64(0); j < n_items; j++ {
				var ilen = r.varint()
				if r.bad || ilen > uint64(len(raw)) {
					return false
				}
				r.take(int(ilen))
			}
		}
	}

	r.u32() // locktime

	if r.bad || r.pos != len(raw) {
		return false
	}

	// Signed-ness: each input needs a scriptSig or a witness stack.
	for i := uint64(0); i < n_in; i++ {
		if script_sig_len[i] == 0 && witness_items[i] == 0 {
			return false
		}
	}

	return true
}
