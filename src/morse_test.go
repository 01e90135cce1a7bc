package btccw

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestMorseLookup(t *testing.T) {
	var enc, ok = morse_lookup('A')
	require.True(t, ok)
	assert.Equal(t, ".-", enc)

	enc, ok = morse_lookup('a') // folds to upper
	require.True(t, ok)
	assert.Equal(t, ".-", enc)

	enc, ok = morse_lookup('0')
	require.True(t, ok)
	assert.Equal(t, "-----", enc)

	_, ok = morse_lookup(' ')
	assert.False(t, ok, "space is keyed as silence, not a pattern")

	_, ok = morse_lookup('*')
	assert.False(t, ok)
}

func TestMorseEncodeSimple(t *testing.T) {
	assert.Equal(t, []int8{1}, morse_encode("E"))
	assert.Equal(t, []int8{1, 1, 1}, morse_encode("T"))
	assert.Equal(t, []int8{1, -1, -1, -1, 1}, morse_encode("EE"))

	// E, word gap (3+1+3 = 7 units off), E.
	assert.Equal(t, []int8{1, -1, -1, -1, -1, -1, -1, -1, 1}, morse_encode("E E"))
}

func TestMorseEncodeCaseFolds(t *testing.T) {
	assert.Equal(t, morse_encode("KKK A AR"), morse_encode("kkk a ar"))
}

func TestMorseEncodeLengthMatchesUnits(t *testing.T) {
	for _, str := range []string{"E", "PARIS", "KKK A AR", "KKK 0000 AR", B43_ALPHABET} {
		assert.Equal(t, morse_units_str(str), len(morse_encode(str)), "string %q", str)
	}
}

func TestMorseUnitsParis(t *testing.T) {
	// The PARIS standard word, including the trailing word gap,
	// is defined as 50 units.  Without the 7 unit gap: 43.
	assert.Equal(t, 43, morse_units_str("PARIS"))
}

func TestMorseEncodeOnlyUnitValues(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var str = rapid.StringOfN(rapid.RuneFrom([]rune(B43_ALPHABET+" ")), 1, 64, -1).Draw(t, "str")

		for _, v := range morse_encode(str) {
			if v != 1 && v != -1 {
				t.Fatalf("timing element %d is neither +1 nor -1", v)
			}
		}
	})
}

func TestMorseEncodeDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var str = rapid.StringOfN(rapid.RuneFrom([]rune(B43_ALPHABET+" ")), 1, 64, -1).Draw(t, "str")

		assert.Equal(t, morse_encode(str), morse_encode(str))
	})
}

func TestBase43AlphabetIsMorseEncodable(t *testing.T) {
	require.Len(t, B43_ALPHABET, 43)

	var seen = map[rune]bool{}
	for _, ch := range B43_ALPHABET {
		assert.False(t, seen[ch], "duplicate alphabet symbol %q", ch)
		seen[ch] = true

		var _, ok = morse_lookup(ch)
		assert.True(t, ok, "alphabet symbol %q has no Morse pattern", ch)
	}
}
