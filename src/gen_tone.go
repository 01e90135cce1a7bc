package btccw

/*------------------------------------------------------------------
 *
 * Purpose:   	Render a Morse timing array into PCM sine samples.
 *
 * Description:	The sample index runs across the whole message rather
 *		than restarting per timing unit, so consecutive tone
 *		units join with continuous phase.  A phase jump at a
 *		unit boundary would put a click in the audio and smear
 *		energy away from the tone bin the receive side watches.
 *
 *---------------------------------------------------------------*/

import (
	"math"
)

const TONE_AMPLITUDE = 0.8 /* peak, of full scale 1.0 */

/*-------------------------------------------------------------------
 *
 * Name:        render_tone
 *
 * Purpose:    	Generate PCM audio for a timing array.
 *
 * Inputs:	timing		- One element per time unit, +1 tone, -1 silence.
 *		sample_rate	- e.g. 44100.
 *		tone_freq	- CW pitch in Hz, e.g. 750.
 *		wpm		- Keying speed.
 *
 * Returns:	Mono float32 samples in -1 .. +1.  Length is
 *		len(timing) * floor(sample_rate * 1.2 / wpm).
 *
 *--------------------------------------------------------------------*/

func render_tone(timing []int8, sample_rate float64, tone_freq float64, wpm int) []float32 {

	var samples_per_unit = int(sample_rate * unit_duration(wpm))

	var pcm = make([]float32, 0, len(timing)*samples_per_unit)

	var omega = 2.0 * math.Pi * tone_freq / sample_rate
	var sample_idx = 0

	for _, t := range timing {
		for s := 0; s < samples_per_unit; s, sample_idx = s+1, sample_idx+1 {
			if t > 0 {
				pcm = append(pcm, float32(TONE_AMPLITUDE*math.Sin(omega*float64(sample_idx))))
			} else {
				pcm = append(pcm, 0.0)
			}
		}
	}

	return pcm
}
