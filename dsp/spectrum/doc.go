// Package spectrum provides helpers over complex spectrum bins.
//
// The package does not implement an FFT. It converts between the rectangular
// bins an FFT produces and the magnitude/phase form spectral processors
// operate on.
package spectrum
