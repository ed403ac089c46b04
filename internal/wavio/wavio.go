package wavio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"time"

	"github.com/go-audio/audio"
	"github.com/go-audio/riff"
	"github.com/go-audio/wav"
)

var (
	ErrInvalidWAV        = errors.New("wavio: invalid WAV data")
	ErrUnsupportedFormat = errors.New("wavio: unsupported sample format")
	ErrChannelMismatch   = errors.New("wavio: channel length mismatch")
)

const (
	formatPCM        = 1
	formatExtensible = 0xFFFE
)

// Audio is a decoded multi-channel recording.
type Audio struct {
	SampleRate int
	// BitDepth is the integer sample width the data was decoded from and
	// is encoded back to.
	BitDepth int
	// Channels holds one normalized [-1, 1] buffer per channel, all of the
	// same length.
	Channels [][]float64
}

// Frames returns the per-channel sample count.
func (a *Audio) Frames() int {
	if len(a.Channels) == 0 {
		return 0
	}

	return len(a.Channels[0])
}

// Duration returns the playing time.
func (a *Audio) Duration() time.Duration {
	if a.SampleRate <= 0 {
		return 0
	}

	return time.Duration(float64(a.Frames()) / float64(a.SampleRate) * float64(time.Second))
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Audio, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("wavio: open %q: %w", path, err)
	}
	defer f.Close()

	a, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("wavio: read %q: %w", path, err)
	}

	return a, nil
}

// fmtHeader is the common part of a WAVE fmt chunk.
type fmtHeader struct {
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
}

// fmtExtension follows fmtHeader for WAVE_FORMAT_EXTENSIBLE. SubFormat is
// the leading format code of the sub-format GUID.
type fmtExtension struct {
	Size               uint16
	ValidBitsPerSample uint16
	ChannelMask        uint32
	SubFormat          uint16
}

// readFormat returns the effective audio format code of r, resolving
// WAVE_FORMAT_EXTENSIBLE to its sub-format. r is rewound afterwards.
func readFormat(r io.ReadSeeker) (uint16, error) {
	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("wavio: rewind: %w", err)
	}

	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil || p.Format != riff.WavFormatID {
		return 0, ErrInvalidWAV
	}

	var format uint16
	for {
		ch, err := p.NextChunk()
		if err != nil {
			return 0, fmt.Errorf("%w: no fmt chunk", ErrInvalidWAV)
		}
		if ch.ID != riff.FmtID {
			ch.Drain()
			continue
		}

		var hdr fmtHeader
		if ch.Size < binary.Size(hdr) {
			return 0, fmt.Errorf("%w: fmt chunk of %d bytes", ErrInvalidWAV, ch.Size)
		}
		if err := ch.ReadLE(&hdr); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
		}
		format = hdr.AudioFormat

		if format == formatExtensible {
			var ext fmtExtension
			if ch.Size < binary.Size(hdr)+binary.Size(ext) {
				return 0, fmt.Errorf("%w: extensible fmt chunk of %d bytes", ErrInvalidWAV, ch.Size)
			}
			if err := ch.ReadLE(&ext); err != nil {
				return 0, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
			}
			format = ext.SubFormat
		}
		break
	}

	if _, err := r.Seek(0, io.SeekStart); err != nil {
		return 0, fmt.Errorf("wavio: rewind: %w", err)
	}

	return format, nil
}

// Read decodes an integer PCM WAV stream, plain or WAVE_FORMAT_EXTENSIBLE.
func Read(r io.ReadSeeker) (*Audio, error) {
	format, err := readFormat(r)
	if err != nil {
		return nil, err
	}
	if format != formatPCM {
		return nil, fmt.Errorf("%w: audio format %#x", ErrUnsupportedFormat, format)
	}

	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidWAV
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidWAV, err)
	}

	if buf.Format == nil || buf.Format.NumChannels <= 0 || buf.Format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: missing format", ErrInvalidWAV)
	}

	bitDepth := buf.SourceBitDepth
	if bitDepth == 0 {
		bitDepth = int(dec.BitDepth)
	}

	scale, offset, err := quantization(bitDepth)
	if err != nil {
		return nil, err
	}

	numChans := buf.Format.NumChannels
	frames := len(buf.Data) / numChans

	channels := make([][]float64, numChans)
	for c := range channels {
		channels[c] = make([]float64, frames)
	}

	for i := range frames {
		for c := range numChans {
			channels[c][i] = float64(buf.Data[i*numChans+c]-offset) / scale
		}
	}

	return &Audio{
		SampleRate: buf.Format.SampleRate,
		BitDepth:   bitDepth,
		Channels:   channels,
	}, nil
}

// WriteFile encodes a to a new WAV file at path.
func WriteFile(path string, a *Audio) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("wavio: create %q: %w", path, err)
	}

	err = Write(f, a)
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("wavio: write %q: %w", path, err)
	}

	return f.Close()
}

// Write encodes a as integer PCM at a.BitDepth. Samples are clamped to
// [-1, 1] before quantization.
func Write(w io.WriteSeeker, a *Audio) error {
	if len(a.Channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrChannelMismatch)
	}

	if a.SampleRate <= 0 {
		return fmt.Errorf("wavio: sample rate must be > 0: %d", a.SampleRate)
	}

	scale, offset, err := quantization(a.BitDepth)
	if err != nil {
		return err
	}

	frames := a.Frames()
	for c, ch := range a.Channels {
		if len(ch) != frames {
			return fmt.Errorf("%w: channel %d has %d samples, want %d", ErrChannelMismatch, c, len(ch), frames)
		}
	}

	numChans := len(a.Channels)
	data := make([]int, frames*numChans)

	for i := range frames {
		for c, ch := range a.Channels {
			v := math.Max(-1, math.Min(1, ch[i]))
			data[i*numChans+c] = int(math.Round(v*scale)) + offset
		}
	}

	enc := wav.NewEncoder(w, a.SampleRate, a.BitDepth, numChans, formatPCM)

	err = enc.Write(&audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: a.SampleRate},
		Data:           data,
		SourceBitDepth: a.BitDepth,
	})
	if err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("wavio: finalize: %w", err)
	}

	return nil
}

// quantization returns the full-scale divisor and the zero offset for an
// integer PCM bit depth.
func quantization(bitDepth int) (scale float64, offset int, err error) {
	switch bitDepth {
	case 8:
		return 127, 128, nil
	case 16, 24, 32:
		return float64(int64(1)<<(bitDepth-1) - 1), 0, nil
	default:
		return 0, 0, fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, bitDepth)
	}
}
