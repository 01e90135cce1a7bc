package btccw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const test_sample_rate = 44100.0
const test_tone_freq = 750.0
const test_wpm = 20
const test_block_size = 882

func TestRenderToneLength(t *testing.T) {
	// floor(44100 * 1.2 / 20) = 2646 samples per unit.
	var pcm = render_tone([]int8{1}, test_sample_rate, test_tone_freq, test_wpm)
	assert.Len(t, pcm, 2646)

	pcm = render_tone([]int8{1, -1, 1}, test_sample_rate, test_tone_freq, test_wpm)
	assert.Len(t, pcm, 3*2646)

	assert.Empty(t, render_tone(nil, test_sample_rate, test_tone_freq, test_wpm))
}

func TestRenderToneSilenceIsZero(t *testing.T) {
	var pcm = render_tone([]int8{-1, -1}, test_sample_rate, test_tone_freq, test_wpm)
	for i, s := range pcm {
		require.Zero(t, s, "sample %d", i)
	}
}

func TestRenderToneAmplitude(t *testing.T) {
	var pcm = render_tone([]int8{1, 1, 1}, test_sample_rate, test_tone_freq, test_wpm)

	var peak float64
	for _, s := range pcm {
		if math.Abs(float64(s)) > peak {
			peak = math.Abs(float64(s))
		}
	}

	assert.InDelta(t, TONE_AMPLITUDE, peak, 0.01)
	assert.LessOrEqual(t, peak, TONE_AMPLITUDE+1e-6)
}

func TestRenderTonePhaseContinuity(t *testing.T) {
	// A dash is three consecutive ON units.  The waveform must cross
	// the unit boundaries without a jump: the sample index runs
	// across the whole message, so the sample-to-sample step can
	// never exceed the derivative bound amplitude * omega.
	var pcm = render_tone(morse_encode("T"), test_sample_rate, test_tone_freq, test_wpm)
	require.Len(t, pcm, 3*2646)

	var omega = 2.0 * math.Pi * test_tone_freq / test_sample_rate
	var bound = TONE_AMPLITUDE*omega + 1e-9

	for i := 1; i < len(pcm); i++ {
		var step = math.Abs(float64(pcm[i]) - float64(pcm[i-1]))
		require.LessOrEqual(t, step, bound, "phase jump at sample %d", i)
	}
}

func TestRenderToneDeterministic(t *testing.T) {
	var timing = morse_encode("KKK A AR")
	var a = render_tone(timing, test_sample_rate, test_tone_freq, test_wpm)
	var b = render_tone(timing, test_sample_rate, test_tone_freq, test_wpm)
	assert.Equal(t, a, b)
}
