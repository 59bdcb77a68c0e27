package transcode

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/youpy/go-wav"
)

const wavReadChunk = 2048

// decodeWAVFile reads a PCM WAV file natively, averaging channels down to
// mono. Keeps the pipeline free of external binaries for the most common
// upload format.
func decodeWAVFile(filename string) (*AudioData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open WAV file: %w", err)
	}
	defer file.Close()

	reader := wav.NewReader(file)
	format, err := reader.Format()
	if err != nil {
		return nil, fmt.Errorf("failed to read WAV format: %w", err)
	}

	if format.AudioFormat != wav.AudioFormatPCM {
		return nil, fmt.Errorf("unsupported WAV format: %d (only PCM supported)", format.AudioFormat)
	}

	sampleRate := int(format.SampleRate)
	channels := int(format.NumChannels)
	if sampleRate <= 0 || channels <= 0 {
		return nil, fmt.Errorf("invalid WAV format: rate=%d channels=%d", sampleRate, channels)
	}
	if channels > 2 {
		// go-wav samples carry at most two channels; let ffmpeg mix these
		return nil, fmt.Errorf("WAV has %d channels, native path handles at most 2", channels)
	}

	var pcm []float64
	for {
		samples, err := reader.ReadSamples(wavReadChunk)
		for _, sample := range samples {
			// Mixdown by channel average, same policy as the ffmpeg path (-ac 1)
			sum := 0.0
			for ch := 0; ch < channels; ch++ {
				sum += reader.FloatValue(sample, uint(ch))
			}
			pcm = append(pcm, sum/float64(channels))
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read WAV samples: %w", err)
		}
	}

	if len(pcm) == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", filename)
	}

	duration := time.Duration(len(pcm)) * time.Second / time.Duration(sampleRate)

	return &AudioData{
		PCM:        pcm,
		SampleRate: sampleRate,
		Duration:   duration,
	}, nil
}
