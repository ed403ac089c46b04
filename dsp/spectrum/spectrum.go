package spectrum

import (
	"math"
	"math/cmplx"
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

// scratchBuf holds pooled scratch memory for complex-to-real unpacking.
type scratchBuf struct {
	data []float64
}

var scratchPool = sync.Pool{
	New: func() any { return &scratchBuf{} },
}

func getScratch(n int) (re, im []float64, buf *scratchBuf) {
	buf = scratchPool.Get().(*scratchBuf)
	need := 2 * n
	if cap(buf.data) < need {
		buf.data = make([]float64, need)
	} else {
		buf.data = buf.data[:need]
	}
	return buf.data[:n], buf.data[n:need], buf
}

// MagnitudeInto writes |X[k]| into dst, which must have len(in) elements.
//
// Uses the SIMD magnitude kernel when available. Scratch buffers are pooled
// internally, so in steady state this does not allocate.
func MagnitudeInto(dst []float64, in []complex128) {
	if len(in) == 0 {
		return
	}

	re, im, buf := getScratch(len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(dst, re, im)
	scratchPool.Put(buf)
}

// PhaseInto writes arg(X[k]) in radians into dst, which must have len(in)
// elements. Phase is atan2(imag, real), so a zero bin has phase 0.
func PhaseInto(dst []float64, in []complex128) {
	for i, c := range in {
		dst[i] = cmplx.Phase(c)
	}
}

// PolarInto splits in into magnitude and phase. mag and phase must have
// len(in) elements.
func PolarInto(mag, phase []float64, in []complex128) {
	MagnitudeInto(mag, in)
	PhaseInto(phase, in)
}

// FromPolar writes mag[k]*exp(i*phase[k]) into dst. All three slices must
// have the same length.
func FromPolar(dst []complex128, mag, phase []float64) {
	for k := range dst {
		sin, cos := math.Sincos(phase[k])
		dst[k] = complex(mag[k]*cos, mag[k]*sin)
	}
}
