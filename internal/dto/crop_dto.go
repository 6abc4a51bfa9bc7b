package dto

import "crop-advisor-be/pkg/ml"

// RecommendRequest carries the seven soil/climate measurements. Ranges match
// the sensor/value bounds the input form enforces.
type RecommendRequest struct {
	Nitrogen    float64 `json:"nitrogen" validate:"min=0,max=140"`
	Phosphorus  float64 `json:"phosphorus" validate:"min=0,max=145"`
	Potassium   float64 `json:"potassium" validate:"min=0,max=205"`
	Temperature float64 `json:"temperature" validate:"min=0,max=50"`
	Humidity    float64 `json:"humidity" validate:"min=0,max=100"`
	Ph          float64 `json:"ph" validate:"min=0,max=14"`
	Rainfall    float64 `json:"rainfall" validate:"min=0,max=300"`

	Language string `json:"language" validate:"omitempty,oneof=en te"`
}

// Features maps the request into the pipeline's fixed ordering.
func (r *RecommendRequest) Features() ml.FeatureVector {
	return ml.FeatureVector{
		r.Nitrogen,
		r.Phosphorus,
		r.Potassium,
		r.Temperature,
		r.Humidity,
		r.Ph,
		r.Rainfall,
	}
}

type RecommendResponse struct {
	Crop      string `json:"crop,omitempty"`
	Found     bool   `json:"found"`
	Insights  string `json:"insights,omitempty"`
	SessionId string `json:"session_id,omitempty"`
	Message   string `json:"message,omitempty"`
}
