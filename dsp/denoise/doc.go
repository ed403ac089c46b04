// Package denoise reduces stationary background noise by spectral
// subtraction.
//
// The noise's average magnitude spectrum (the profile) is estimated from
// the leading NoiseDuration seconds of the recording, which are assumed to
// contain background only. The profile is then subtracted from the
// magnitude of every STFT frame of the whole recording, floored at zero,
// recombined with the frame's original phase and inverted.
//
// The result always has the input's length. The first MarginMs
// milliseconds are forced to zero to hide the transform's start-up edge;
// this discards signal there on purpose.
//
// Every function is stateless and allocates its own transform, so calls
// may run concurrently.
package denoise
