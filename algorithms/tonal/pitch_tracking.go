package tonal

import (
	"math"
)

// Default analysis range, C2 to C7 in equal temperament
const (
	DefaultMinFreq = 65.41  // C2
	DefaultMaxFreq = 2093.0 // C7
)

// FramePitch is the pitch estimate for one analysis frame
type FramePitch struct {
	Frequency   float64 `json:"frequency"`   // Estimated F0 in Hz (0 when unvoiced)
	Voiced      bool    `json:"voiced"`      // Whether the frame has a discernible pitch
	Probability float64 `json:"probability"` // Voicing probability (0-1)
}

// PitchTrackerParams contains parameters for pitch tracking
type PitchTrackerParams struct {
	SampleRate int     `json:"sample_rate"`
	WindowSize int     `json:"window_size"`
	HopSize    int     `json:"hop_size"`
	MinFreq    float64 `json:"min_freq"` // Lower bound of the search range (Hz)
	MaxFreq    float64 `json:"max_freq"` // Upper bound of the search range (Hz)
	Threshold  float64 `json:"threshold"`
}

// PitchTracker implements frame-wise YIN pitch estimation with a voicing
// decision.
//
// Reference: de Cheveigné, A., Kawahara, H. (2002). "YIN, a fundamental
// frequency estimator for speech and music"
type PitchTracker struct {
	params PitchTrackerParams
}

// NewPitchTracker creates a pitch tracker with default parameters for the
// given sample rate
func NewPitchTracker(sampleRate int) *PitchTracker {
	return NewPitchTrackerWithParams(PitchTrackerParams{
		SampleRate: sampleRate,
		WindowSize: 2048,
		HopSize:    512,
		MinFreq:    DefaultMinFreq,
		MaxFreq:    DefaultMaxFreq,
		Threshold:  0.15,
	})
}

// NewPitchTrackerWithParams creates a pitch tracker with custom parameters
func NewPitchTrackerWithParams(params PitchTrackerParams) *PitchTracker {
	if params.WindowSize <= 0 {
		params.WindowSize = 2048
	}
	if params.HopSize <= 0 {
		params.HopSize = 512
	}
	if params.MinFreq <= 0 {
		params.MinFreq = DefaultMinFreq
	}
	if params.MaxFreq <= params.MinFreq {
		params.MaxFreq = DefaultMaxFreq
	}
	if params.Threshold <= 0 {
		params.Threshold = 0.15
	}
	return &PitchTracker{params: params}
}

// Track runs pitch estimation over overlapping frames of the signal
func (pt *PitchTracker) Track(signal []float64) []FramePitch {
	if len(signal) < pt.params.WindowSize {
		return []FramePitch{}
	}

	numFrames := (len(signal)-pt.params.WindowSize)/pt.params.HopSize + 1
	frames := make([]FramePitch, numFrames)

	for i := 0; i < numFrames; i++ {
		startIdx := i * pt.params.HopSize
		endIdx := startIdx + pt.params.WindowSize

		if endIdx > len(signal) {
			break
		}

		frames[i] = pt.TrackFrame(signal[startIdx:endIdx])
	}

	return frames
}

// TrackFrame estimates the pitch of a single frame using YIN. Degenerate
// frames (silence, too short) come back unvoiced with probability 0, never
// NaN.
func (pt *PitchTracker) TrackFrame(frame []float64) FramePitch {
	n := len(frame)
	halfN := n / 2
	if halfN < 2 {
		return FramePitch{}
	}

	// Difference function
	diff := make([]float64, halfN)
	for tau := 0; tau < halfN; tau++ {
		sum := 0.0
		for j := 0; j < halfN; j++ {
			delta := frame[j] - frame[j+tau]
			sum += delta * delta
		}
		diff[tau] = sum
	}

	// Cumulative mean normalized difference function
	cmndf := make([]float64, halfN)
	cmndf[0] = 1.0

	runningSum := 0.0
	for tau := 1; tau < halfN; tau++ {
		runningSum += diff[tau]
		if runningSum > 0 {
			cmndf[tau] = diff[tau] * float64(tau) / runningSum
		} else {
			// All-zero frame: no periodicity evidence at all
			cmndf[tau] = 1.0
		}
	}

	// Restrict the lag search to the configured frequency range
	tauMin := int(float64(pt.params.SampleRate) / pt.params.MaxFreq)
	tauMin = max(tauMin, 1)
	tauMax := int(float64(pt.params.SampleRate)/pt.params.MinFreq) + 1
	tauMax = min(tauMax, halfN-1)

	if tauMin >= tauMax {
		return FramePitch{}
	}

	// First local minimum below the absolute threshold
	minTau := -1
	for tau := tauMin; tau < tauMax; tau++ {
		if cmndf[tau] < pt.params.Threshold {
			for tau+1 < tauMax && cmndf[tau+1] < cmndf[tau] {
				tau++
			}
			minTau = tau
			break
		}
	}

	if minTau < 0 {
		// Unvoiced: report how close the best candidate came
		best := cmndf[tauMin]
		for tau := tauMin; tau < tauMax; tau++ {
			if cmndf[tau] < best {
				best = cmndf[tau]
			}
		}
		return FramePitch{Probability: clampUnit(1.0 - best)}
	}

	period := parabolicInterpolation(cmndf, minTau)
	if period <= 0 {
		return FramePitch{}
	}

	frequency := float64(pt.params.SampleRate) / period
	if frequency < pt.params.MinFreq || frequency > pt.params.MaxFreq {
		return FramePitch{Probability: clampUnit(1.0 - cmndf[minTau])}
	}

	return FramePitch{
		Frequency:   frequency,
		Voiced:      true,
		Probability: clampUnit(1.0 - cmndf[minTau]),
	}
}

// GetParameters returns the current parameters
func (pt *PitchTracker) GetParameters() PitchTrackerParams {
	return pt.params
}

// parabolicInterpolation refines the minimum position of the CMNDF for
// sub-sample period accuracy
func parabolicInterpolation(data []float64, peakIdx int) float64 {
	if peakIdx <= 0 || peakIdx >= len(data)-1 {
		return float64(peakIdx)
	}

	y1 := data[peakIdx-1]
	y2 := data[peakIdx]
	y3 := data[peakIdx+1]

	a := (y1 - 2*y2 + y3) / 2
	b := (y3 - y1) / 2

	if a == 0 {
		return float64(peakIdx)
	}

	return float64(peakIdx) - b/(2*a)
}

func clampUnit(x float64) float64 {
	return math.Max(0.0, math.Min(1.0, x))
}
