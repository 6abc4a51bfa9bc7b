package ml

import (
	"encoding/json"
	"fmt"
	"os"
)

// ScalerParams carries the parameters of both fitted scalers, exported once
// from the training environment into a JSON file. The values are loaded at
// process start and never refitted.
type ScalerParams struct {
	MinMax   MinMaxParams   `json:"minmax"`
	Standard StandardParams `json:"standard"`
}

// MinMaxParams follows the x*scale + min formulation of a fitted min-max
// rescaler.
type MinMaxParams struct {
	Min   [FeatureCount]float64 `json:"min"`
	Scale [FeatureCount]float64 `json:"scale"`
}

// StandardParams holds per-feature mean and deviation of a fitted
// standardization rescaler.
type StandardParams struct {
	Mean  [FeatureCount]float64 `json:"mean"`
	Scale [FeatureCount]float64 `json:"scale"`
}

// LoadScalerParams reads and validates the scaler parameter file.
func LoadScalerParams(path string) (*ScalerParams, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scaler params: %w", err)
	}

	var params ScalerParams
	if err := json.Unmarshal(data, &params); err != nil {
		return nil, fmt.Errorf("failed to parse scaler params: %w", err)
	}

	for i, s := range params.Standard.Scale {
		if s == 0 {
			return nil, fmt.Errorf("standard scaler has zero deviation for feature %d", i)
		}
	}

	return &params, nil
}

// Pipeline applies the two fitted transforms in their training order:
// min-max rescaling strictly before standardization. Swapping the order
// changes the predicted label, so the pipeline owns the sequencing instead
// of leaving it to callers.
type Pipeline struct {
	params *ScalerParams
}

func NewPipeline(params *ScalerParams) *Pipeline {
	return &Pipeline{params: params}
}

// Normalize transforms a raw feature vector into the float32 row the
// classifier expects. Deterministic: identical input yields identical output.
func (p *Pipeline) Normalize(features FeatureVector) [FeatureCount]float32 {
	var out [FeatureCount]float32
	for i, v := range features {
		scaled := v*p.params.MinMax.Scale[i] + p.params.MinMax.Min[i]
		standardized := (scaled - p.params.Standard.Mean[i]) / p.params.Standard.Scale[i]
		out[i] = float32(standardized)
	}
	return out
}
