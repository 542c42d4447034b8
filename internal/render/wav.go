// Package render converts sampled polynomials to and from PCM WAV audio.
//
// A polynomial sampled over [0, 1] becomes one mono clip: an envelope,
// easing curve or waveform that can be inspected in any audio editor.
// Reading goes the other way and yields normalized samples that can be fit
// with an S-basis polynomial.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/tphakala/go-sbasis/internal/vecops"
)

// WAV format constants
const (
	bitsPerSample16 = 16
	bitsPerSample24 = 24
	bitsPerSample32 = 32

	maxInt16 = 32767.0
	maxInt24 = 8388607.0
	maxInt32 = 2147483647.0

	monoChannels  = 1
	pcmFormatCode = 1
)

var (
	// ErrBitDepth indicates a bit depth other than 16, 24 or 32.
	ErrBitDepth = errors.New("unsupported bit depth")

	// ErrSampleRate indicates a non-positive sample rate.
	ErrSampleRate = errors.New("invalid sample rate")

	// ErrInvalidFile indicates input that is not a PCM WAV file.
	ErrInvalidFile = errors.New("invalid WAV file")
)

// Options controls how samples are turned into PCM.
type Options struct {
	SampleRate int
	BitDepth   int

	// RemoveDC subtracts the mean before conversion.
	RemoveDC bool

	// Normalize scales the peak to full scale. Without it, samples outside
	// [-1, 1] are clipped.
	Normalize bool
}

func (o Options) validate() error {
	if o.SampleRate <= 0 {
		return fmt.Errorf("%w: %d", ErrSampleRate, o.SampleRate)
	}
	if _, err := maxValue(o.BitDepth); err != nil {
		return err
	}
	return nil
}

// maxValue returns the maximum sample value for the given bit depth.
func maxValue(bitDepth int) (float64, error) {
	switch bitDepth {
	case bitsPerSample16:
		return maxInt16, nil
	case bitsPerSample24:
		return maxInt24, nil
	case bitsPerSample32:
		return maxInt32, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrBitDepth, bitDepth)
}

// Condition applies the DC removal and normalization of opts to a copy of
// samples.
func Condition(samples []float64, opts Options) []float64 {
	ops := vecops.SIMD()
	out := make([]float64, len(samples))
	copy(out, samples)
	if len(out) == 0 {
		return out
	}

	if opts.RemoveDC {
		mean := ops.Sum(out) / float64(len(out))
		for i := range out {
			out[i] -= mean
		}
	}
	if opts.Normalize {
		var peak float64
		for _, v := range out {
			peak = math.Max(peak, math.Abs(v))
		}
		if peak > 0 {
			ops.Scale(out, out, 1/peak)
		}
	}
	return out
}

// Quantize converts samples in [-1, 1] to integers of the given bit depth,
// clipping anything outside that range.
func Quantize(samples []float64, bitDepth int) ([]int, error) {
	maxVal, err := maxValue(bitDepth)
	if err != nil {
		return nil, err
	}

	out := make([]int, len(samples))
	for i, sample := range samples {
		if sample > 1.0 {
			sample = 1.0
		} else if sample < -1.0 {
			sample = -1.0
		}
		out[i] = int(math.Round(sample * maxVal))
	}
	return out, nil
}

// WriteWAV encodes samples as a mono PCM WAV stream.
func WriteWAV(w io.WriteSeeker, samples []float64, opts Options) (err error) {
	if err := opts.validate(); err != nil {
		return err
	}

	data, err := Quantize(Condition(samples, opts), opts.BitDepth)
	if err != nil {
		return err
	}

	enc := wav.NewEncoder(w, opts.SampleRate, opts.BitDepth, monoChannels, pcmFormatCode)
	defer func() {
		if cerr := enc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to finalize WAV: %w", cerr)
		}
	}()

	buf := &audio.IntBuffer{
		Data: data,
		Format: &audio.Format{
			NumChannels: monoChannels,
			SampleRate:  opts.SampleRate,
		},
		SourceBitDepth: opts.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("failed to write samples: %w", err)
	}
	return nil
}

// Clip holds decoded audio as floats in [-1, 1].
type Clip struct {
	Samples    []float64
	SampleRate int
	BitDepth   int
}

// ReadWAV decodes a PCM WAV stream. Multichannel input is reduced to its
// first channel.
func ReadWAV(r io.ReadSeeker) (*Clip, error) {
	decoder := wav.NewDecoder(r)
	if !decoder.IsValidFile() {
		return nil, ErrInvalidFile
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to decode samples: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	maxVal, err := maxValue(bitDepth)
	if err != nil {
		return nil, err
	}

	channels := max(buf.Format.NumChannels, monoChannels)
	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := range frames {
		samples[i] = float64(buf.Data[i*channels]) / maxVal
	}

	return &Clip{
		Samples:    samples,
		SampleRate: buf.Format.SampleRate,
		BitDepth:   bitDepth,
	}, nil
}
