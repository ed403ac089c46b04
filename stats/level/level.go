// Package level measures time-domain signal levels of audio buffers.
package level

import "math"

// Levels holds amplitude measurements of a buffer.
//
//nolint:revive
type Levels struct {
	Length      int
	RMS         float64
	RMS_dB      float64
	Peak        float64 // max |x|
	Peak_dB     float64
	CrestFactor float64 // peak / RMS, 0 for silence
	DC          float64 // mean
}

// ToDB converts an amplitude to decibels. Zero maps to -Inf.
func ToDB(amp float64) float64 {
	a := math.Abs(amp)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// Measure computes the levels of samples in one pass.
func Measure(samples []float64) Levels {
	if len(samples) == 0 {
		return Levels{RMS_dB: math.Inf(-1), Peak_dB: math.Inf(-1)}
	}

	// Kahan-compensated mean.
	var sum, c, sumSq, peak float64
	for _, x := range samples {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t

		sumSq += x * x
		peak = math.Max(peak, math.Abs(x))
	}

	n := float64(len(samples))
	rms := math.Sqrt(sumSq / n)

	l := Levels{
		Length:  len(samples),
		RMS:     rms,
		RMS_dB:  ToDB(rms),
		Peak:    peak,
		Peak_dB: ToDB(peak),
		DC:      sum / n,
	}
	if rms > 0 {
		l.CrestFactor = peak / rms
	}

	return l
}

// RMS returns the root-mean-square of samples.
func RMS(samples []float64) float64 {
	if len(samples) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range samples {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(samples)))
}

// Reduction returns how many dB quieter after is than before, measured by
// RMS. It is +Inf when after is silent and before is not, and 0 when both
// are silent.
func Reduction(before, after []float64) float64 {
	rb, ra := RMS(before), RMS(after)
	switch {
	case rb == 0 && ra == 0:
		return 0
	case ra == 0:
		return math.Inf(1)
	case rb == 0:
		return math.Inf(-1)
	}

	return 20 * math.Log10(rb/ra)
}
