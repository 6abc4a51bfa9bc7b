package ml

import "fmt"

// Classifier is the narrow contract over the trained model: one (1,7) input
// row in, one predicted label out. Implementations are safe for concurrent
// use and loaded once per process.
type Classifier interface {
	Predict(row [FeatureCount]float32) (int64, error)
	Close() error
}

// Recommender chains the preprocessing pipeline and the classifier into the
// single operation the rest of the application consumes.
type Recommender struct {
	pipeline   *Pipeline
	classifier Classifier
}

func NewRecommender(pipeline *Pipeline, classifier Classifier) *Recommender {
	return &Recommender{
		pipeline:   pipeline,
		classifier: classifier,
	}
}

// Recommend returns the crop name for the given raw measurements. A failed
// inference or a label outside the known class set yields ok=false and a
// descriptive message; it never panics and never surfaces as an error to the
// HTTP layer.
func (r *Recommender) Recommend(features FeatureVector) (crop string, ok bool, err error) {
	if !features.Valid() {
		return "", false, fmt.Errorf("feature vector contains non-finite values")
	}

	row := r.pipeline.Normalize(features)

	label, err := r.classifier.Predict(row)
	if err != nil {
		return "", false, fmt.Errorf("inference failed: %w", err)
	}

	name, found := CropName(label)
	if !found {
		return "", false, nil
	}
	return name, true, nil
}
