// Package stft implements a short-time Fourier transform and its
// overlap-add inverse.
//
// Framing uses no boundary extension: only frames that lie completely
// inside the input are analyzed, so a signal of n samples yields
// 1 + (n-frameLen)/hopLen frames and the inverse produces
// (frames-1)*hopLen + frameLen samples.
//
// Forward and inverse share one window (periodic Hann by default). The
// forward transform scales each frame by 1/sum(w), so a sine of amplitude A
// centered on a bin shows a magnitude of A/2 there. The inverse undoes that
// scale, multiplies by the synthesis window, overlap-adds and divides every
// output sample by the accumulated sum of squared window values. Output
// samples whose accumulated sum is at or below 1e-10 are set to zero.
package stft
