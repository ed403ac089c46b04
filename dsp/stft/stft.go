package stft

import (
	"errors"
	"fmt"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-denoise/dsp/window"
)

var (
	// ErrInvalidParameter is returned for unusable framing or malformed frames.
	ErrInvalidParameter = errors.New("stft: invalid parameter")
	// ErrInsufficientData is returned when fewer than one frame of samples is given.
	ErrInsufficientData = errors.New("stft: insufficient data")
)

// normFloor is the smallest overlap-add normalization an output sample may
// be divided by.
const normFloor = 1e-10

// Option configures a Transform.
type Option func(*options)

type options struct {
	windowType window.Type
}

// WithWindow selects the analysis/synthesis window. The window is always
// generated in its periodic form.
func WithWindow(t window.Type) Option {
	return func(o *options) {
		o.windowType = t
	}
}

// Transform converts real signals to frame spectra and back.
//
// A Transform keeps FFT scratch buffers and is not safe for concurrent use.
// The frames it returns are freshly allocated and owned by the caller.
type Transform struct {
	frameLen   int
	hopLen     int
	windowType window.Type

	plan      *algofft.Plan[complex128]
	coeffs    []float64
	windowSum float64

	spectrum []complex128
	timeBuf  []complex128
	segment  []float64
}

// New creates a Transform for frames of frameLen samples taken every hopLen
// samples. frameLen must be a power of two.
func New(frameLen, hopLen int, opts ...Option) (*Transform, error) {
	o := options{windowType: window.TypeHann}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	if frameLen <= 0 {
		return nil, fmt.Errorf("%w: frame length must be > 0: %d", ErrInvalidParameter, frameLen)
	}

	if !ValidFrameLen(frameLen) {
		return nil, fmt.Errorf("%w: frame length must be a power of two: %d", ErrInvalidParameter, frameLen)
	}

	if hopLen <= 0 {
		return nil, fmt.Errorf("%w: hop length must be > 0: %d", ErrInvalidParameter, hopLen)
	}

	if hopLen > frameLen {
		return nil, fmt.Errorf("%w: hop length %d exceeds frame length %d", ErrInvalidParameter, hopLen, frameLen)
	}

	coeffs := window.Generate(o.windowType, frameLen, window.WithPeriodic())

	windowSum := window.Sum(coeffs)
	if windowSum <= 0 {
		return nil, fmt.Errorf("%w: %s window of length %d has zero gain", ErrInvalidParameter, o.windowType, frameLen)
	}

	plan, err := algofft.NewPlan64(frameLen)
	if err != nil {
		return nil, fmt.Errorf("%w: no FFT plan for frame length %d: %w", ErrInvalidParameter, frameLen, err)
	}

	return &Transform{
		frameLen:   frameLen,
		hopLen:     hopLen,
		windowType: o.windowType,
		plan:       plan,
		coeffs:     coeffs,
		windowSum:  windowSum,
		spectrum:   make([]complex128, frameLen),
		timeBuf:    make([]complex128, frameLen),
		segment:    make([]float64, frameLen),
	}, nil
}

// ValidFrameLen reports whether n is a supported frame length, a positive
// power of two.
func ValidFrameLen(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// FrameLen returns the frame length in samples.
func (t *Transform) FrameLen() int { return t.frameLen }

// HopLen returns the hop length in samples.
func (t *Transform) HopLen() int { return t.hopLen }

// WindowType returns the window shape.
func (t *Transform) WindowType() window.Type { return t.windowType }

// Bins returns the number of non-negative frequency bins per frame.
func (t *Transform) Bins() int { return t.frameLen/2 + 1 }

// Window returns a copy of the window coefficients.
func (t *Transform) Window() []float64 {
	return append([]float64(nil), t.coeffs...)
}

// FrameCount returns how many full frames fit into n samples.
func (t *Transform) FrameCount(n int) int {
	if n < t.frameLen {
		return 0
	}

	return 1 + (n-t.frameLen)/t.hopLen
}

// OutputLen returns the length Inverse produces for the given frame count.
func (t *Transform) OutputLen(frames int) int {
	if frames <= 0 {
		return 0
	}

	return (frames-1)*t.hopLen + t.frameLen
}

// Forward returns one spectrum of Bins() values per full frame of samples.
func (t *Transform) Forward(samples []float64) ([][]complex128, error) {
	if len(samples) < t.frameLen {
		return nil, fmt.Errorf("%w: need at least %d samples, got %d",
			ErrInsufficientData, t.frameLen, len(samples))
	}

	count := t.FrameCount(len(samples))
	bins := t.Bins()
	scale := complex(1/t.windowSum, 0)

	frames := make([][]complex128, count)
	backing := make([]complex128, count*bins)

	for f := range count {
		pos := f * t.hopLen

		for i, w := range t.coeffs {
			t.spectrum[i] = complex(samples[pos+i]*w, 0)
		}

		err := t.plan.Forward(t.spectrum, t.spectrum)
		if err != nil {
			return nil, fmt.Errorf("stft: forward FFT failed: %w", err)
		}

		frame := backing[f*bins : (f+1)*bins : (f+1)*bins]
		for k := range frame {
			frame[k] = t.spectrum[k] * scale
		}

		frames[f] = frame
	}

	return frames, nil
}

// Inverse reconstructs a signal of OutputLen(len(frames)) samples.
func (t *Transform) Inverse(frames [][]complex128) ([]float64, error) {
	if len(frames) == 0 {
		return nil, nil
	}

	n := t.frameLen
	bins := t.Bins()
	scale := complex(t.windowSum, 0)

	output := make([]float64, t.OutputLen(len(frames)))
	norm := window.OverlapSquares(t.coeffs, t.hopLen, len(frames))

	for f, frame := range frames {
		if len(frame) != bins {
			return nil, fmt.Errorf("%w: frame %d has %d bins, want %d", ErrInvalidParameter, f, len(frame), bins)
		}

		for k, v := range frame {
			t.spectrum[k] = v * scale
		}

		// Mirror for real-valued IFFT.
		t.spectrum[0] = complex(real(t.spectrum[0]), 0)
		if n%2 == 0 {
			t.spectrum[n/2] = complex(real(t.spectrum[n/2]), 0)
		}

		for k := 1; k < bins; k++ {
			if n-k >= bins {
				v := t.spectrum[k]
				t.spectrum[n-k] = complex(real(v), -imag(v))
			}
		}

		err := t.plan.Inverse(t.timeBuf, t.spectrum)
		if err != nil {
			return nil, fmt.Errorf("stft: inverse FFT failed: %w", err)
		}

		for i := range t.segment {
			t.segment[i] = real(t.timeBuf[i])
		}

		pos := f * t.hopLen
		vecmath.MulBlockInPlace(t.segment, t.coeffs)
		vecmath.AddBlockInPlace(output[pos:pos+n], t.segment)
	}

	for i := range output {
		if norm[i] > normFloor {
			output[i] /= norm[i]
		} else {
			output[i] = 0
		}
	}

	return output, nil
}
