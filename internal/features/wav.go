// Package features turns rendered waveforms into fixed-coefficient
// spectral summaries and normalizes batches of them for training.
package features

import (
	"fmt"
	"os"

	"github.com/go-audio/wav"

	apperrors "github.com/dygy/guitarset/internal/errors"
)

// ReadWAV decodes a WAV file into a mono float64 waveform in [-1, 1] and
// returns it with the file's sample rate. Multi-channel input is averaged
// down to one channel.
func ReadWAV(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, 0, fmt.Errorf("%w: %s", apperrors.ErrFileNotFound, path)
		}
		return nil, 0, fmt.Errorf("open wav: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, 0, fmt.Errorf("%w: %s is not a valid WAV file", apperrors.ErrUnsupportedFormat, path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("decode wav: %w", err)
	}

	channels := buf.Format.NumChannels
	if channels < 1 {
		channels = 1
	}
	scale := float64(int(1) << (decoder.BitDepth - 1))

	frames := len(buf.Data) / channels
	samples := make([]float64, frames)
	for i := 0; i < frames; i++ {
		var sum float64
		for c := 0; c < channels; c++ {
			sum += float64(buf.Data[i*channels+c]) / scale
		}
		samples[i] = sum / float64(channels)
	}

	return samples, int(decoder.SampleRate), nil
}
