// Package window generates the analysis and synthesis windows used by the
// short-time transform.
//
// Only cosine-sum windows are provided. Use [WithPeriodic] for FFT framing;
// the symmetric form is the default.
package window
