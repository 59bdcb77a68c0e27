package spectral

import (
	"math"
	"testing"

	"github.com/soundprobe/soundprobe/algorithms/windowing"
)

func sine(freq float64, sampleRate, n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return signal
}

func TestSTFTFrameCount(t *testing.T) {
	const sampleRate = 44100
	signal := sine(440, sampleRate, 4096)

	window := windowing.NewHann(2048, false)
	result, err := NewSTFT().ComputeWithWindow(signal, 2048, 512, sampleRate, window)
	if err != nil {
		t.Fatalf("ComputeWithWindow failed: %v", err)
	}

	wantFrames := (4096-2048)/512 + 1
	if result.TimeFrames != wantFrames {
		t.Errorf("TimeFrames: got %d, want %d", result.TimeFrames, wantFrames)
	}
	if result.FreqBins != 2048/2+1 {
		t.Errorf("FreqBins: got %d, want %d", result.FreqBins, 1025)
	}
	if len(result.Magnitude) != wantFrames {
		t.Errorf("Magnitude rows: got %d, want %d", len(result.Magnitude), wantFrames)
	}
}

func TestSTFTSinePeakBin(t *testing.T) {
	const sampleRate = 44100
	const bin = 100

	// Frequency placed exactly on an analysis bin
	freq := float64(bin) * float64(sampleRate) / 2048.0
	signal := sine(freq, sampleRate, 4096)

	window := windowing.NewHann(2048, false)
	result, err := NewSTFT().ComputeWithWindow(signal, 2048, 512, sampleRate, window)
	if err != nil {
		t.Fatalf("ComputeWithWindow failed: %v", err)
	}

	spectrum := result.Magnitude[0]
	peak := 0
	for i, mag := range spectrum {
		if mag > spectrum[peak] {
			peak = i
		}
	}

	if peak != bin {
		t.Errorf("peak bin: got %d, want %d", peak, bin)
	}
}

func TestSTFTEmptySignal(t *testing.T) {
	if _, err := NewSTFT().ComputeWithWindow(nil, 2048, 512, 44100, nil); err == nil {
		t.Error("expected error for empty signal")
	}
}

func TestSTFTSignalTooShort(t *testing.T) {
	if _, err := NewSTFT().ComputeWithWindow(make([]float64, 100), 2048, 512, 44100, nil); err == nil {
		t.Error("expected error for signal shorter than one window")
	}
}

func TestSpectralCentroidSingleBin(t *testing.T) {
	const sampleRate = 44100
	const numBins = 1025

	spectrum := make([]float64, numBins)
	spectrum[100] = 1.0

	centroid := NewSpectralCentroid(sampleRate).Compute(spectrum)

	want := 100.0 * float64(sampleRate) / 2048.0
	if math.Abs(centroid-want) > 1e-9 {
		t.Errorf("centroid: got %f, want %f", centroid, want)
	}
}

func TestSpectralCentroidZeroSpectrum(t *testing.T) {
	spectrum := make([]float64, 1025)

	if got := NewSpectralCentroid(44100).Compute(spectrum); got != 0.0 {
		t.Errorf("centroid of silent spectrum: got %f, want 0.0", got)
	}
}

func TestZeroCrossingRateAlternating(t *testing.T) {
	// Sign flips on every pair: the maximum possible rate
	frame := make([]float64, 2048)
	for i := range frame {
		if i%2 == 0 {
			frame[i] = 1.0
		} else {
			frame[i] = -1.0
		}
	}

	rate := NewZeroCrossingRate(2048, 512).Compute(frame)
	if math.Abs(rate-1.0) > 1e-9 {
		t.Errorf("alternating signal ZCR: got %f, want 1.0", rate)
	}
}

func TestZeroCrossingRateSilence(t *testing.T) {
	signal := make([]float64, 8192)

	rates := NewZeroCrossingRate(2048, 512).ComputeFrames(signal)
	if len(rates) == 0 {
		t.Fatal("expected frames for 8192-sample signal")
	}
	for i, rate := range rates {
		if rate != 0.0 {
			t.Errorf("frame %d: silent signal ZCR got %f, want 0.0", i, rate)
		}
	}
}

func TestZeroCrossingRateSine(t *testing.T) {
	const sampleRate = 44100
	const freq = 220.0
	signal := sine(freq, sampleRate, 8192)

	rates := NewZeroCrossingRate(2048, 512).ComputeFrames(signal)
	if len(rates) == 0 {
		t.Fatal("expected frames")
	}

	// A sine at F crosses zero about 2F times per second
	want := 2 * freq * 2048 / float64(sampleRate) / 2047
	for i, rate := range rates {
		if math.Abs(rate-want) > want/2 {
			t.Errorf("frame %d: ZCR got %f, want about %f", i, rate, want)
		}
	}
}

func TestMFCCShape(t *testing.T) {
	const sampleRate = 44100
	signal := sine(440, sampleRate, 4096)

	window := windowing.NewHann(2048, false)
	result, err := NewSTFT().ComputeWithWindow(signal, 2048, 512, sampleRate, window)
	if err != nil {
		t.Fatalf("stft failed: %v", err)
	}

	frames, err := NewMFCC(sampleRate, 13).ComputeFrames(result.Magnitude)
	if err != nil {
		t.Fatalf("ComputeFrames failed: %v", err)
	}

	if len(frames) != result.TimeFrames {
		t.Errorf("MFCC frames: got %d, want %d", len(frames), result.TimeFrames)
	}
	for t2, coeffs := range frames {
		if len(coeffs) != 13 {
			t.Fatalf("frame %d: got %d coefficients, want 13", t2, len(coeffs))
		}
	}
}

func TestMFCCDeterministic(t *testing.T) {
	const sampleRate = 44100
	spectrum := make([]float64, 1025)
	for i := range spectrum {
		spectrum[i] = 1.0 / float64(i+1)
	}

	first, err := NewMFCC(sampleRate, 13).Compute(spectrum)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	second, err := NewMFCC(sampleRate, 13).Compute(spectrum)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}

	for i := range first {
		if first[i] != second[i] {
			t.Errorf("coefficient %d differs between runs: %f vs %f", i, first[i], second[i])
		}
	}
}

func TestMFCCSilentFrame(t *testing.T) {
	spectrum := make([]float64, 1025)

	coeffs, err := NewMFCC(44100, 13).Compute(spectrum)
	if err != nil {
		t.Fatalf("Compute failed: %v", err)
	}
	if len(coeffs) != 13 {
		t.Fatalf("got %d coefficients, want 13", len(coeffs))
	}
	for i, c := range coeffs {
		if math.IsNaN(c) || math.IsInf(c, 0) {
			t.Errorf("coefficient %d is not finite: %f", i, c)
		}
	}
}
