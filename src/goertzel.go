package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Single frequency tone detector using the Goertzel
 *		algorithm.
 *
 * Description:	PCM is processed in fixed size blocks, each reduced to
 *		the signal power at the CW tone frequency, then gated
 *		into a boolean tone present / absent stream.
 *
 *		The gate uses two thresholds.  A block must reach the
 *		ON threshold to key up and fall below 70% of it to key
 *		down.  Without that margin, blocks hovering near a
 *		single threshold flicker mid-dash and the run length
 *		timing downstream falls apart.
 *
 * References:	http://eetimes.com/design/embedded/4024443/The-Goertzel-Algorithm
 *
 *---------------------------------------------------------------*/

import (
	"math"
	"sort"
)

const GOERTZEL_BLOCK_SIZE = 882 /* ~20 ms at 44100 */

const HYSTERESIS_OFF_RATIO = 0.7

type goertzel_s struct {
	sample_rate float64
	tone_freq   float64
	block_size  int
	threshold   float64 /* 0 = auto, 3 x median block power */
	coeff       float64 /* 2 cos(2 pi k / N) */
}

/*-------------------------------------------------------------------
 *
 * Name:        goertzel_init
 *
 * Purpose:    	Set up a detector for one frequency.
 *
 * Inputs:	sample_rate	- e.g. 44100.
 *		tone_freq	- Target frequency, e.g. 750.
 *		block_size	- Samples per analysis block, e.g. 882.
 *		threshold	- Detection threshold on block power.
 *				  0 picks one automatically per capture.
 *
 *--------------------------------------------------------------------*/

func goertzel_init(sample_rate float64, tone_freq float64, block_size int, threshold float64) *goertzel_s {

	var d = &goertzel_s{
		sample_rate: sample_rate,
		tone_freq:   tone_freq,
		block_size:  block_size,
		threshold:   threshold,
	}

	// k = round(N * f / fs), integer bin for bin-centered detection.
	var k = math.Round(float64(block_size) * tone_freq / sample_rate)
	d.coeff = 2.0 * math.Cos(2.0*math.Pi*k/float64(block_size))

	return d
}

/*-------------------------------------------------------------------
 *
 * Name:        goertzel_magnitude
 *
 * Purpose:    	Signal power at the tone frequency for one block.
 *
 * Description:	Standard second order recurrence.  The result is
 *		power, s1^2 + s2^2 - coeff*s1*s2, not amplitude.
 *		Thresholds are calibrated against this quantity.
 *
 *--------------------------------------------------------------------*/

func (d *goertzel_s) goertzel_magnitude(samples []float32) float64 {

	var s0, s1, s2 float64

	for _, x := range samples {
		s0 = float64(x) + d.coeff*s1 - s2
		s2 = s1
		s1 = s0
	}

	return s1*s1 + s2*s2 - d.coeff*s1*s2
}

/*-------------------------------------------------------------------
 *
 * Name:        goertzel_detect
 *
 * Purpose:    	Reduce a PCM buffer to a per block tone present
 *		stream.
 *
 * Inputs:	pcm	- Mono samples.  Trailing samples that do not
 *			  fill a whole block are discarded.
 *
 * Returns:	One bool per complete block.  Empty input, or input
 *		shorter than one block, gives an empty result.
 *
 * Description:	The automatic threshold assumes the capture is mostly
 *		silence (3 x median block power).  On a capture that is
 *		mostly tone the median sits on the tone level and the
 *		threshold lands too high; pass an explicit threshold
 *		for continuous tone material.  A median of zero means
 *		there is no noise floor at all (digital silence) and
 *		yields an all-false result rather than a zero threshold
 *		that would latch ON.
 *
 *--------------------------------------------------------------------*/

func (d *goertzel_s) goertzel_detect(pcm []float32) []bool {

	if len(pcm) == 0 || d.block_size == 0 {
		return nil
	}

	var num_blocks = len(pcm) / d.block_size
	if num_blocks == 0 {
		return nil
	}

	var mags = make([]float64, num_blocks)
	for i := 0; i < num_blocks; i++ {
		mags[i] = d.goertzel_magnitude(pcm[i*d.block_size : (i+1)*d.block_size])
	}

	var thresh_on = d.threshold
	if thresh_on <= 0.0 {
		var sorted = make([]float64, num_blocks)
		copy(sorted, mags)
		sort.Float64s(sorted)
		var median = sorted[len(sorted)/2]
		thresh_on = median * 3.0

		if thresh_on == 0.0 {
			return make([]bool, num_blocks)
		}
	}

	var thresh_off = thresh_on * HYSTERESIS_OFF_RATIO

	var result = make([]bool, num_blocks)
	var state = false // start OFF

	for i := 0; i < num_blocks; i++ {
		if state {
			// Currently ON.  Stay ON unless below OFF threshold.
			if mags[i] < thresh_off {
				state = false
			}
		} else {
			// Currently OFF.  Turn ON at or above ON threshold.
			if mags[i] >= thresh_on {
				state = true
			}
		}
		result[i] = state
	}

	return result
}
