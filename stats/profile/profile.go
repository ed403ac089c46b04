// Package profile summarizes one-sided magnitude spectra such as noise
// profiles.
package profile

import "math"

// RolloffFraction is the energy fraction used by [Summarize] for Rolloff.
const RolloffFraction = 0.85

// Summary describes the shape of a magnitude spectrum.
//
//nolint:revive
type Summary struct {
	Bins     int
	Mean     float64 // mean magnitude
	Mean_dB  float64
	Peak     float64
	PeakBin  int
	PeakFreq float64 // Hz
	Centroid float64 // Hz
	Flatness float64 // geometric / arithmetic mean, 0..1, DC excluded
	Rolloff  float64 // Hz below which RolloffFraction of the energy lies
}

// BinFreq returns the frequency of bin k for a frame of frameLen samples.
func BinFreq(k int, sampleRate float64, frameLen int) float64 {
	return float64(k) * sampleRate / float64(frameLen)
}

func toDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

// Summarize computes a [Summary] of mag, the bins 0..frameLen/2 of an rfft.
func Summarize(mag []float64, sampleRate float64, frameLen int) Summary {
	n := len(mag)
	if n == 0 || frameLen <= 0 {
		return Summary{Mean_dB: math.Inf(-1)}
	}

	s := Summary{Bins: n, Peak: mag[0]}

	var sum, energy, weighted float64
	for k, v := range mag {
		sum += v
		energy += v * v
		weighted += BinFreq(k, sampleRate, frameLen) * v
		if v > s.Peak {
			s.Peak = v
			s.PeakBin = k
		}
	}

	s.Mean = sum / float64(n)
	s.Mean_dB = toDB(s.Mean)
	s.PeakFreq = BinFreq(s.PeakBin, sampleRate, frameLen)
	if sum > 0 {
		s.Centroid = weighted / sum
	}
	s.Flatness = Flatness(mag)
	s.Rolloff = rolloff(mag, sampleRate, frameLen, energy)

	return s
}

// Flatness returns the spectral flatness (Wiener entropy) of mag excluding
// the DC bin. It is 0 when any considered bin is zero.
func Flatness(mag []float64) float64 {
	if len(mag) < 2 {
		return 0
	}

	var sumLin, sumLog float64
	for _, v := range mag[1:] {
		if v <= 0 {
			return 0
		}
		sumLin += v
		sumLog += math.Log(v)
	}

	nb := float64(len(mag) - 1)

	return math.Exp(sumLog/nb) / (sumLin / nb)
}

func rolloff(mag []float64, sampleRate float64, frameLen int, energy float64) float64 {
	if energy == 0 {
		return 0
	}

	threshold := RolloffFraction * energy
	var cum float64
	for k, v := range mag {
		cum += v * v
		if cum >= threshold {
			return BinFreq(k, sampleRate, frameLen)
		}
	}

	return BinFreq(len(mag)-1, sampleRate, frameLen)
}
