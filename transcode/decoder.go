package transcode

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/soundprobe/soundprobe/logging"
)

// AudioData represents decoded audio data
type AudioData struct {
	PCM        []float64     `json:"-"` // Mono PCM samples in [-1, 1]
	SampleRate int           `json:"sample_rate"`
	Duration   time.Duration `json:"duration"`
}

// DecoderConfig holds decoder configuration
type DecoderConfig struct {
	FFmpegPath  string        `json:"ffmpeg_path"`  // Path to ffmpeg binary
	FFprobePath string        `json:"ffprobe_path"` // Path to ffprobe binary
	Timeout     time.Duration `json:"timeout"`      // Timeout for ffmpeg operations
}

// DefaultDecoderConfig returns default decoder configuration
func DefaultDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		FFmpegPath:  "ffmpeg",  // Assume in PATH
		FFprobePath: "ffprobe", // Assume in PATH
		Timeout:     60 * time.Second,
	}
}

// Decoder loads an audio file as a mono float64 signal at the file's own
// sample rate. WAV files are read natively; everything else goes through
// FFmpeg. The whole file is decoded into memory, there is no duration cap
// and no resampling.
type Decoder struct {
	config *DecoderConfig
}

// NewDecoder creates a new audio decoder
func NewDecoder(config *DecoderConfig) *Decoder {
	if config == nil {
		config = DefaultDecoderConfig()
	}
	return &Decoder{config: config}
}

// DecodeFile decodes an audio file and returns mono PCM data at the
// source sample rate
func (d *Decoder) DecodeFile(filename string) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component": "audio_decoder",
		"function":  "DecodeFile",
		"filename":  filename,
	})

	logger.Debug("starting audio file decode")

	if _, err := os.Stat(filename); err != nil {
		return nil, fmt.Errorf("cannot access audio file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(filename), ".wav") {
		audio, err := decodeWAVFile(filename)
		if err == nil {
			return audio, nil
		}
		// Non-PCM or malformed WAV containers fall through to FFmpeg
		logger.Debug("native WAV decode failed, falling back to ffmpeg", logging.Fields{
			"error": err.Error(),
		})
	}

	sampleRate, err := d.probeSampleRate(filename)
	if err != nil {
		return nil, err
	}

	return d.decodeWithFFmpeg(filename, sampleRate)
}

// probeSampleRate uses ffprobe to read the native sample rate of the first
// audio stream
func (d *Decoder) probeSampleRate(filename string) (int, error) {
	args := []string{
		"-v", "quiet",
		"-print_format", "json",
		"-show_streams",
		"-select_streams", "a:0",
		filename,
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.config.FFprobePath, args...)
	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok && len(exitError.Stderr) > 0 {
			return 0, fmt.Errorf("ffprobe failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}

	var probe struct {
		Streams []struct {
			CodecType  string `json:"codec_type"`
			SampleRate string `json:"sample_rate"`
		} `json:"streams"`
	}

	if err := json.Unmarshal(output, &probe); err != nil {
		return 0, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}

	if len(probe.Streams) == 0 {
		return 0, fmt.Errorf("no audio streams found in %s", filename)
	}

	stream := probe.Streams[0]
	if stream.CodecType != "audio" {
		return 0, fmt.Errorf("stream is not audio type: %s", stream.CodecType)
	}

	sampleRate, err := strconv.Atoi(stream.SampleRate)
	if err != nil || sampleRate <= 0 {
		return 0, fmt.Errorf("invalid sample rate %q in ffprobe output", stream.SampleRate)
	}

	return sampleRate, nil
}

// decodeWithFFmpeg decodes the file to raw mono f64le at the probed sample
// rate and converts it to []float64
func (d *Decoder) decodeWithFFmpeg(filename string, sampleRate int) (*AudioData, error) {
	logger := logging.WithFields(logging.Fields{
		"component":   "audio_decoder",
		"function":    "decodeWithFFmpeg",
		"filename":    filename,
		"sample_rate": sampleRate,
	})

	args := []string{
		"-v", "error",
		"-i", filename,
		"-vn",
		"-map", "0:a:0",
		"-f", "f64le",
		"-ac", "1",
		"-ar", strconv.Itoa(sampleRate), // Same rate as the source, no resample
		"pipe:1",
	}

	ctx, cancel := context.WithTimeout(context.Background(), d.config.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, d.config.FFmpegPath, args...)

	logger.Debug("running ffmpeg command", logging.Fields{
		"args": strings.Join(args, " "),
	})

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok && len(exitError.Stderr) > 0 {
			return nil, fmt.Errorf("ffmpeg decode failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	samples := bytesToFloat64(output)
	if len(samples) == 0 {
		return nil, fmt.Errorf("no audio samples decoded from %s", filename)
	}

	duration := time.Duration(len(samples)) * time.Second / time.Duration(sampleRate)

	logger.Debug("ffmpeg decode completed", logging.Fields{
		"samples":  len(samples),
		"duration": duration.Seconds(),
	})

	return &AudioData{
		PCM:        samples,
		SampleRate: sampleRate,
		Duration:   duration,
	}, nil
}

// bytesToFloat64 converts raw little-endian float64 bytes to []float64
func bytesToFloat64(data []byte) []float64 {
	if len(data)%8 != 0 {
		data = data[:len(data)-(len(data)%8)]
	}

	if len(data) == 0 {
		return nil
	}

	sampleCount := len(data) / 8
	samples := make([]float64, sampleCount)

	for i := 0; i < sampleCount; i++ {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}

	return samples
}
