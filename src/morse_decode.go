package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Turn the detector's boolean tone stream back into
 *		text.
 *
 * Description:	The stream is run length encoded and each run is
 *		classified by length.  Ideal CW ratios are 1:3 for
 *		dot:dash and 1:3:7 for the three gap kinds.  The
 *		decision boundaries sit at 2 and 5 units, midway
 *		between the ideal values, so timing may drift +-50%
 *		before a run is misclassified.
 *
 *		The reverse pattern table is built by querying the
 *		forward table in morse.go.  Any change to the Morse
 *		table stays in one place.
 *
 *---------------------------------------------------------------*/

import (
	"strings"
)

// Characters the payload alphabet can put on the air: the Base 43
// set.  '?' doubles as the unknown pattern sentinel below; Base 43
// and the frame CRC are the gates that catch a smuggled '?'.
const morse_decode_charset = B43_ALPHABET

type morse_decoder_s struct {
	blocks_per_unit int
	reverse         map[string]rune
}

/*-------------------------------------------------------------------
 *
 * Name:        morse_decoder_init
 *
 * Purpose:    	Build a decoder for a given temporal resolution.
 *
 * Inputs:	blocks_per_unit	- Detector blocks per Morse time unit.
 *				  round(unit_duration * fs / block_size),
 *				  3 at the 20 WPM / 44100 / 882 defaults.
 *
 *--------------------------------------------------------------------*/

func morse_decoder_init(blocks_per_unit int) *morse_decoder_s {

	var d = &morse_decoder_s{
		blocks_per_unit: blocks_per_unit,
		reverse:         make(map[string]rune),
	}

	// Space is not here.  It falls out of word gap runs.
	for _, ch := range morse_decode_charset {
		var pattern, ok = morse_lookup(ch)
		if ok {
			d.reverse[pattern] = ch
		}
	}

	return d
}

type run_s struct {
	on     bool
	length int /* blocks */
}

func (d *morse_decoder_s) flush(sb *strings.Builder, pattern *strings.Builder) {
	if pattern.Len() == 0 {
		return
	}
	var ch, ok = d.reverse[pattern.String()]
	if ok {
		sb.WriteRune(ch)
	} else {
		sb.WriteByte('?') // unknown pattern, kept for diagnostics
	}
	pattern.Reset()
}

/*-------------------------------------------------------------------
 *
 * Name:        morse_decoder_decode
 *
 * Purpose:    	Decode a boolean tone stream to text.
 *
 * Inputs:	tones	- One bool per detector block.
 *
 * Returns:	Decoded characters.  Unknown patterns come out as '?'
 *		rather than vanishing, so a failed deframe still shows
 *		the operator what was heard.
 *
 *--------------------------------------------------------------------*/

func (d *morse_decoder_s) morse_decoder_decode(tones []bool) string {

	if len(tones) == 0 {
		return ""
	}

	var runs []run_s

	var current = tones[0]
	var count = 1
	for i := 1; i < len(tones); i++ {
		if tones[i] == current {
			count++
		} else {
			runs = append(runs, run_s{current, count})
			current = tones[i]
			count = 1
		}
	}
	runs = append(runs, run_s{current, count})

	// Thresholds in blocks:
	//   dot vs dash, and intra vs inter character gap:  2 units
	//   inter character gap vs word gap:                5 units
	var dot_dash_threshold = 2 * d.blocks_per_unit
	var word_gap_threshold = 5 * d.blocks_per_unit

	var result strings.Builder
	var pattern strings.Builder // dots/dashes of the character in progress

	for _, run := range runs {
		if run.on {
			if run.length < dot_dash_threshold {
				pattern.WriteByte('.')
			} else {
				pattern.WriteByte('-')
			}
		} else {
			switch {
			case run.length < dot_dash_threshold:
				// Intra-character gap.  Elements keep accumulating.
			case run.length < word_gap_threshold:
				d.flush(&result, &pattern)
			default:
				d.flush(&result, &pattern)
				// A word gap before any character is leading
				// silence, not a space.
				if result.Len() > 0 {
					result.WriteByte(' ')
				}
			}
		}
	}

	d.flush(&result, &pattern)

	return result.String()
}
