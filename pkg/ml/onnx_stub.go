//go:build !cgo
// +build !cgo

package ml

import "errors"

// ONNXClassifier stub type when built without CGO (see onnx.go for the real
// implementation).
type ONNXClassifier struct{}

// NewONNXClassifier returns an error when built without CGO (ONNX Runtime
// not available).
func NewONNXClassifier(_ string) (*ONNXClassifier, error) {
	return nil, errors.New("ONNX classifier requires CGO; build with CGO_ENABLED=1 and onnxruntime")
}

func (c *ONNXClassifier) Predict(_ [FeatureCount]float32) (int64, error) {
	return 0, errors.New("ONNX classifier not available in this build")
}

func (c *ONNXClassifier) Close() error { return nil }
