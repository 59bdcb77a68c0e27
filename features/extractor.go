package features

import (
	"fmt"

	"github.com/soundprobe/soundprobe/algorithms/spectral"
	"github.com/soundprobe/soundprobe/algorithms/stats"
	"github.com/soundprobe/soundprobe/algorithms/temporal"
	"github.com/soundprobe/soundprobe/algorithms/tonal"
	"github.com/soundprobe/soundprobe/algorithms/windowing"
	"github.com/soundprobe/soundprobe/logging"
)

// Fixed analysis parameters. Every framed feature uses the same 2048/512
// framing so the statistics describe the same time grid.
const (
	FrameSize = 2048
	HopSize   = 512
	NumMFCC   = 13
)

// Extractor derives the acoustic summary features from a decoded waveform.
// All features are pure functions of the waveform and sample rate, so
// extraction is deterministic.
type Extractor struct {
	sampleRate int
	logger     logging.Logger
}

// NewExtractor creates an extractor for the given sample rate
func NewExtractor(sampleRate int) *Extractor {
	return &Extractor{
		sampleRate: sampleRate,
		logger: logging.WithFields(logging.Fields{
			"component":   "feature_extractor",
			"sample_rate": sampleRate,
		}),
	}
}

// Extract computes the full feature record except Duration, which the
// caller takes from the decoder. A signal shorter than one analysis frame
// produces zero frames for every framed feature; the summary of an empty
// series is 0.0, not an error.
func (e *Extractor) Extract(pcm []float64) (*FeatureRecord, error) {
	if len(pcm) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if e.sampleRate <= 0 {
		return nil, fmt.Errorf("invalid sample rate: %d", e.sampleRate)
	}

	record := &FeatureRecord{
		MFCCMeans: make([]float64, NumMFCC),
	}

	// Pitch: voiced frames only, 0.0/0.0 when nothing is voiced
	tracker := tonal.NewPitchTracker(e.sampleRate)
	f0Voiced := voicedFrequencies(tracker.Track(pcm))
	f0Summary := stats.Summarize(f0Voiced)
	record.MeanF0 = f0Summary.Mean
	record.StdF0 = f0Summary.StdDev

	// RMS energy and zero-crossing rate work on the raw waveform
	energySummary := stats.Summarize(temporal.NewEnergy(FrameSize, HopSize).ComputeFrames(pcm))
	record.MeanRMSEnergy = energySummary.Mean
	record.StdRMSEnergy = energySummary.StdDev

	zcrSummary := stats.Summarize(spectral.NewZeroCrossingRate(FrameSize, HopSize).ComputeFrames(pcm))
	record.MeanZCR = zcrSummary.Mean
	record.StdZCR = zcrSummary.StdDev

	// Centroid and MFCC share one magnitude spectrogram
	if len(pcm) >= FrameSize {
		window := windowing.NewHann(FrameSize, false)
		stftResult, err := spectral.NewSTFT().ComputeWithWindow(pcm, FrameSize, HopSize, e.sampleRate, window)
		if err != nil {
			return nil, fmt.Errorf("stft failed: %w", err)
		}

		centroidSummary := stats.Summarize(
			spectral.NewSpectralCentroid(e.sampleRate).ComputeFrames(stftResult.Magnitude))
		record.MeanSpectralCentroid = centroidSummary.Mean
		record.StdSpectralCentroid = centroidSummary.StdDev

		mfccFrames, err := spectral.NewMFCC(e.sampleRate, NumMFCC).ComputeFrames(stftResult.Magnitude)
		if err != nil {
			return nil, fmt.Errorf("mfcc failed: %w", err)
		}
		record.MFCCMeans = averageCoefficients(mfccFrames, NumMFCC)

		e.logger.Debug("framed features computed", logging.Fields{
			"frames":        stftResult.TimeFrames,
			"voiced_frames": len(f0Voiced),
		})
	}

	return record, nil
}

// voicedFrequencies keeps the frequency estimates of frames flagged voiced
func voicedFrequencies(frames []tonal.FramePitch) []float64 {
	voiced := make([]float64, 0, len(frames))
	for _, frame := range frames {
		if frame.Voiced {
			voiced = append(voiced, frame.Frequency)
		}
	}
	return voiced
}

// averageCoefficients collapses the time axis of an MFCC matrix, averaging
// each coefficient independently. Coefficient order is preserved.
func averageCoefficients(frames [][]float64, numCoefficients int) []float64 {
	means := make([]float64, numCoefficients)
	if len(frames) == 0 {
		return means
	}

	series := make([]float64, len(frames))
	for k := 0; k < numCoefficients; k++ {
		for t, frame := range frames {
			series[t] = frame[k]
		}
		means[k] = stats.Summarize(series).Mean
	}

	return means
}
