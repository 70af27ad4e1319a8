// Package audiofile exports rendered audio as PCM WAV.
package audiofile

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// ErrUnsupportedFormat is returned for bit depths other than 16 and 24 and
// for empty or ragged channel sets.
var ErrUnsupportedFormat = errors.New("unsupported wav format")

// wavFormatPCM is the RIFF format tag for integer PCM
const wavFormatPCM = 1

// WriteWAV encodes planar float samples as integer PCM. Samples outside
// [-1, 1] are clamped.
func WriteWAV(w io.WriteSeeker, channels [][]float32, sampleRate, bitDepth int) error {
	if bitDepth != 16 && bitDepth != 24 {
		return fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, bitDepth)
	}
	if len(channels) == 0 {
		return fmt.Errorf("%w: no channels", ErrUnsupportedFormat)
	}
	if sampleRate <= 0 {
		return fmt.Errorf("%w: sample rate %d", ErrUnsupportedFormat, sampleRate)
	}

	frames := len(channels[0])
	for ch, data := range channels {
		if len(data) != frames {
			return fmt.Errorf("%w: channel %d has %d frames, want %d", ErrUnsupportedFormat, ch, len(data), frames)
		}
	}

	numChans := len(channels)
	scale := float64(int(1)<<(bitDepth-1) - 1)

	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: numChans, SampleRate: sampleRate},
		Data:           make([]int, frames*numChans),
		SourceBitDepth: bitDepth,
	}
	for ch, data := range channels {
		for i, v := range data {
			buf.Data[i*numChans+ch] = quantize(v, scale)
		}
	}

	enc := wav.NewEncoder(w, sampleRate, bitDepth, numChans, wavFormatPCM)
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("write samples: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("finish wav: %w", err)
	}
	return nil
}

func quantize(v float32, scale float64) int {
	x := float64(v)
	if math.IsNaN(x) {
		return 0
	}
	x = max(-1, min(1, x))
	return int(math.Round(x * scale))
}

// WriteWAVFile creates path and writes the samples to it
func WriteWAVFile(path string, channels [][]float32, sampleRate, bitDepth int) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()

	return WriteWAV(f, channels, sampleRate, bitDepth)
}
