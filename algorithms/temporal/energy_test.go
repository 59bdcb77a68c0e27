package temporal

import (
	"math"
	"testing"
)

func TestComputeFramesConstantSignal(t *testing.T) {
	signal := make([]float64, 8192)
	for i := range signal {
		signal[i] = 0.5
	}

	energies := NewEnergy(2048, 512).ComputeFrames(signal)
	if len(energies) == 0 {
		t.Fatal("expected frames for 8192-sample signal")
	}

	for i, energy := range energies {
		if math.Abs(energy-0.5) > 1e-12 {
			t.Errorf("frame %d: RMS got %f, want 0.5", i, energy)
		}
	}
}

func TestComputeFramesSilence(t *testing.T) {
	signal := make([]float64, 8192)

	energies := NewEnergy(2048, 512).ComputeFrames(signal)
	for i, energy := range energies {
		if energy != 0.0 {
			t.Errorf("frame %d: silent RMS got %f, want exactly 0.0", i, energy)
		}
	}
}

func TestComputeFramesSine(t *testing.T) {
	const sampleRate = 44100
	signal := make([]float64, 8192)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 440 * float64(i) / float64(sampleRate))
	}

	energies := NewEnergy(2048, 512).ComputeFrames(signal)

	// RMS of a unit sine is 1/sqrt(2)
	want := 1.0 / math.Sqrt2
	for i, energy := range energies {
		if math.Abs(energy-want) > 0.01 {
			t.Errorf("frame %d: RMS got %f, want about %f", i, energy, want)
		}
	}
}

func TestComputeFramesShortSignal(t *testing.T) {
	if got := NewEnergy(2048, 512).ComputeFrames(make([]float64, 100)); len(got) != 0 {
		t.Errorf("short signal: got %d frames, want 0", len(got))
	}
}

func TestComputeFramesFrameCount(t *testing.T) {
	signal := make([]float64, 10240)

	energies := NewEnergy(2048, 512).ComputeFrames(signal)
	want := (10240-2048)/512 + 1
	if len(energies) != want {
		t.Errorf("frame count: got %d, want %d", len(energies), want)
	}
}
