package btccw

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Power of the CW tone in one full block at the default amplitude is
// around (0.8 * N/2)^2 ~ 1.2e5, so this sits comfortably between the
// tone level and digital silence.
const test_threshold = 1000.0

func test_tone_pcm(freq float64, amplitude float64, num_samples int) []float32 {
	var pcm = make([]float32, num_samples)
	var omega = 2.0 * math.Pi * freq / test_sample_rate
	for n := range pcm {
		pcm[n] = float32(amplitude * math.Sin(omega*float64(n)))
	}
	return pcm
}

func TestGoertzelEmptyInput(t *testing.T) {
	var d = goertzel_init(test_sample_rate, test_tone_freq, test_block_size, test_threshold)

	assert.Empty(t, d.goertzel_detect(nil))
	assert.Empty(t, d.goertzel_detect(make([]float32, test_block_size-1)),
		"less than one block")
}

func TestGoertzelPureTone(t *testing.T) {
	var d = goertzel_init(test_sample_rate, test_tone_freq, test_block_size, test_threshold)

	var pcm = test_tone_pcm(test_tone_freq, 0.8, 10*test_block_size)
	var bits = d.goertzel_detect(pcm)

	require.Len(t, bits, 10)
	for i, b := range bits {
		assert.True(t, b, "block %d", i)
	}
}

func TestGoertzelDigitalSilence(t *testing.T) {
	var pcm = make([]float32, 10*test_block_size)

	// Explicit threshold.
	var d = goertzel_init(test_sample_rate, test_tone_freq, test_block_size, test_threshold)
	for i, b := range d.goertzel_detect(pcm) {
		assert.False(t, b, "block %d (explicit)", i)
	}

	// Auto threshold degenerates to zero on digital silence and
	// must not latch ON.
	d = goertzel_init(test_sample_rate, test_tone_freq, test_block_size, 0)
	var bits = d.goertzel_detect(pcm)
	require.Len(t, bits, 10)
	for i, b := range bits {
		assert.False(t, b, "block %d (auto)", i)
	}
}

func TestGoertzelOffFrequencyToneIgnored(t *testing.T) {
	var d = goertzel_init(test_sample_rate, test_tone_freq, test_block_size, test_threshold)

	// 3 kHz is far outside the 750 Hz bin.
	var pcm = test_tone_pcm(3000, 0.8, 10*test_block_size)
	for i, b := range d.goertzel_detect(pcm) {
		assert.False(t, b, "block %d", i)
	}
}

func TestGoertzelAutoThresholdSparseSignal(t *testing.T) {
	// Mostly quiet hiss with a burst of tone in the middle: the
	// median block power tracks the hiss, so 3x median lands far
	// below the tone level.
	var d = goertzel_init(test_sample_rate, test_tone_freq, test_block_size, 0)

	var pcm = test_tone_pcm(3000, 0.005, 20*test_block_size)
	var burst = test_tone_pcm(test_tone_freq, 0.8, 4*test_block_size)
	copy(pcm[8*test_block_size:], burst)

	var bits = d.goertzel_detect(pcm)
	require.Len(t, bits, 20)

	for i, b := range bits {
		if i >= 8 && i < 12 {
			assert.True(t, b, "tone block %d", i)
		} else {
			assert.False(t, b, "quiet block %d", i)
		}
	}
}

func TestGoertzelHysteresis(t *testing.T) {
	var d = goertzel_init(test_sample_rate, test_tone_freq, test_block_size, test_threshold)

	// Build blocks by amplitude relative to the thresholds.  The
	// ON threshold corresponds to some amplitude a_on; an amplitude
	// between sqrt(0.7)*a_on and a_on must hold the previous state
	// either way.
	var full_power = d.goertzel_magnitude(test_tone_pcm(test_tone_freq, 1.0, test_block_size))
	var a_on = math.Sqrt(test_threshold / full_power)
	var a_mid = a_on * 0.9 // power 0.81 of threshold: above OFF (0.7), below ON

	var mk = func(amp float64) []float32 {
		return test_tone_pcm(test_tone_freq, amp, test_block_size)
	}

	var pcm []float32
	pcm = append(pcm, mk(a_mid)...)    // below ON while OFF -> stays OFF
	pcm = append(pcm, mk(a_on*1.5)...) // clearly ON
	pcm = append(pcm, mk(a_mid)...)    // above OFF while ON -> stays ON
	pcm = append(pcm, mk(a_on*0.1)...) // below OFF -> OFF
	pcm = append(pcm, mk(a_mid)...)    // below ON while OFF -> stays OFF

	var bits = d.goertzel_detect(pcm)
	require.Len(t, bits, 5)
	assert.Equal(t, []bool{false, true, true, false, false}, bits)
}
