package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Morse code table and conversion of text into an
 *		array of keying time units.
 *
 * Description:	Timing follows the PARIS standard: a dot is one unit
 *		of tone, a dash is three, the gap between elements of
 *		one character is one unit of silence, the gap between
 *		characters is three.  A space character contributes one
 *		more unit of silence which, together with the character
 *		gaps on either side, adds up to the seven unit word gap.
 *
 *---------------------------------------------------------------*/

import (
	"unicode"
)

func TIME_UNITS_TO_MS(tu int, wpm int) float64 {
	return (float64((tu)*1200.0) / float64(wpm))
}

// unit_duration returns the length of one timing unit in seconds.
// PARIS standard: 50 units per word.
func unit_duration(wpm int) float64 {
	return 1.2 / float64(wpm)
}

type morse_s struct {
	ch  rune
	enc string
}

var MORSE []morse_s = []morse_s{
	{'A', ".-"},
	{'B', "-..."},
	{'C', "-.-."},
	{'D', "-.."},
	{'E', "."},
	{'F', "..-."},
	{'G', "--."},
	{'H', "...."},
	{'I', ".."},
	{'J', ".---"},
	{'K', "-.-"},
	{'L', ".-.."},
	{'M', "--"},
	{'N', "-."},
	{'O', "---"},
	{'P', ".--."},
	{'Q', "--.-"},
	{'R', ".-."},
	{'S', "..."},
	{'T', "-"},
	{'U', "..-"},
	{'V', "...-"},
	{'W', ".--"},
	{'X', "-..-"},
	{'Y', "-.--"},
	{'Z', "--.."},
	{'1', ".----"},
	{'2', "..---"},
	{'3', "...--"},
	{'4', "....-"},
	{'5', "....."},
	{'6', "-...."},
	{'7', "--..."},
	{'8', "---.."},
	{'9', "----."},
	{'0', "-----"},
	{'.', ".-.-.-"},
	{',', "--..--"},
	{'?', "..--.."},
	{'/', "-..-."},

	{'=', "-...-"}, /* from ARRL */
	{'-', "-....-"},
	{':', "---..."},
	{';', "-.-.-."},

	{'+', ".-.-."},
	{'_', "..--.-"},
	{'@', ".--.-."},
}

/*-------------------------------------------------------------------
 *
 * Name:        morse_lookup
 *
 * Purpose:    	Given a character, find its dot/dash pattern.
 *
 * Inputs:	ch
 *
 * Returns:	Pattern such as ".-" and true, or "" and false if the
 *		character has no Morse assignment.  Notice that space
 *		is not in the table.  It is keyed as extra silence.
 *
 *--------------------------------------------------------------------*/

func morse_lookup(ch rune) (string, bool) {

	if unicode.IsLower(ch) {
		ch = unicode.ToUpper(ch)
	}

	for _, m := range MORSE {
		if ch == m.ch {
			return m.enc, true
		}
	}

	return "", false
}

/*-------------------------------------------------------------------
 *
 * Name:        morse_encode
 *
 * Purpose:    	Convert a text string into an array of timing units.
 *
 * Inputs:	str	- Text to send.  Lower case is folded to upper.
 *
 * Returns:	One element per time unit: +1 for tone, -1 for silence.
 *		Space, or any character not in the table, contributes a
 *		single unit of silence.  With the three unit character
 *		gaps either side that makes the seven unit word gap.
 *
 *--------------------------------------------------------------------*/

func morse_encode(str string) []int8 {

	var timing []int8

	var runes = []rune(str)
	for strIdx, p := range runes {
		var enc, ok = morse_lookup(p)
		if ok {
			for encIdx, e := range enc {
				if e == '.' {
					timing = append(timing, 1)
				} else {
					timing = append(timing, 1, 1, 1)
				}
				if encIdx != len(enc)-1 { // Intersperse quiet
					timing = append(timing, -1)
				}
			}
		} else {
			timing = append(timing, -1)
		}

		if strIdx != len(runes)-1 { // Intersperse quiet
			timing = append(timing, -1, -1, -1)
		}
	}

	return timing
}

/*-------------------------------------------------------------------
 *
 * Name:        morse_units_ch
 *
 * Purpose:    	Find number of time units for a character.
 *
 * Inputs:	ch
 *
 * Returns:	1 for E (.)
 *		3 for T (-)
 *		etc.
 *
 *		The one unexpected result is 1 for space.  Why not 7?
 *		When a space appears between two other characters,
 *		we already have 3 before and after so only 1 more is needed.
 *
 *--------------------------------------------------------------------*/

func morse_units_ch(ch rune) int {

	var enc, ok = morse_lookup(ch)

	if !ok {
		return (1) /* space or any invalid character */
	}

	var units = len(enc) - 1

	for _, k := range enc {
		switch k {
		case '.':
			units++
		case '-':
			units += 3
		}
	}

	return (units)
}

/*-------------------------------------------------------------------
 *
 * Name:        morse_units_str
 *
 * Purpose:    	Find number of time units for a string of characters.
 *
 * Inputs:	str
 *
 * Returns:	1 for E
 *		5 for EE	(1 + 3 + 1)
 *		9 for E E	(1 + 7 + 1)
 *		etc.
 *
 *--------------------------------------------------------------------*/

func morse_units_str(str string) int {

	var runes = []rune(str)
	var units = (len(runes) - 1) * 3

	for _, k := range runes {
		units += morse_units_ch(k)
	}

	return (units)
}
