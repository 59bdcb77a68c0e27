package features

import (
	"encoding/json"
	"fmt"
)

// FeatureRecord is the flat acoustic summary produced once per invocation.
// Field order is the output contract: consumers parse the JSON object with
// exactly these ten keys and MFCCMeans always has exactly NumMFCC entries,
// coefficient 0 first.
type FeatureRecord struct {
	Duration             float64   `json:"duration"`
	MeanF0               float64   `json:"mean_f0"`
	StdF0                float64   `json:"std_f0"`
	MeanSpectralCentroid float64   `json:"mean_spectral_centroid"`
	StdSpectralCentroid  float64   `json:"std_spectral_centroid"`
	MeanRMSEnergy        float64   `json:"mean_rms_energy"`
	StdRMSEnergy         float64   `json:"std_rms_energy"`
	MeanZCR              float64   `json:"mean_zcr"`
	StdZCR               float64   `json:"std_zcr"`
	MFCCMeans            []float64 `json:"mfcc_means"`
}

// EncodeJSON serializes the record as one compact line without embedded
// newlines.
func (r *FeatureRecord) EncodeJSON() (string, error) {
	if len(r.MFCCMeans) != NumMFCC {
		return "", fmt.Errorf("mfcc_means has %d entries, want %d", len(r.MFCCMeans), NumMFCC)
	}

	data, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("failed to serialize feature record: %w", err)
	}

	return string(data), nil
}
