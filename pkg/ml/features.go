// Package ml wraps the fitted preprocessing scalers and the trained crop
// classifier behind narrow interfaces so the rest of the application never
// touches model internals.
package ml

import "math"

// FeatureCount is the fixed width of the classifier input.
const FeatureCount = 7

// FeatureVector holds the seven soil/climate measurements in their fixed
// semantic order: nitrogen, phosphorus, potassium, temperature (°C),
// humidity (%), pH, rainfall (mm).
type FeatureVector [FeatureCount]float64

// FeatureNames mirrors the FeatureVector ordering. Index i labels value i.
var FeatureNames = [FeatureCount]string{
	"Nitrogen",
	"Phosphorus",
	"Potassium",
	"Temperature",
	"Humidity",
	"pH",
	"Rainfall",
}

// Valid reports whether every value is finite. NaN or Inf inputs would
// silently poison the scaler chain, so they are rejected up front.
func (f FeatureVector) Valid() bool {
	for _, v := range f {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
