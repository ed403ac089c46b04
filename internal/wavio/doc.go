// Package wavio decodes PCM WAV files into normalized per-channel float
// buffers and encodes them back.
//
// Integer samples are divided by the format's largest positive value,
// 2^(bits-1) - 1, so full-scale positive samples map to exactly 1. 8-bit
// WAV data is unsigned and is re-centered around 128 first.
package wavio
