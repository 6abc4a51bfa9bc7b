//go:build cgo
// +build cgo

package ml

import (
	"fmt"
	"sync"

	ort "github.com/yalue/onnxruntime_go"
)

// Default tensor names produced when the trained sklearn model is exported
// to ONNX.
const (
	onnxInputName  = "float_input"
	onnxOutputName = "output_label"
)

// ONNXClassifier runs the exported crop model through ONNX Runtime. It
// requires CGO and the onnxruntime shared library.
type ONNXClassifier struct {
	session      *ort.AdvancedSession
	inputTensor  *ort.Tensor[float32]
	outputTensor *ort.Tensor[int64]
	// The session reuses pre-allocated tensors, so calls are serialized.
	mu sync.Mutex
}

// NewONNXClassifier loads the model file and prepares a (1,7) input tensor
// and a (1,) label output tensor. InitializeEnvironment is called if not
// already done.
func NewONNXClassifier(modelPath string) (*ONNXClassifier, error) {
	if !ort.IsInitialized() {
		if err := ort.InitializeEnvironment(); err != nil {
			return nil, fmt.Errorf("failed to initialize ONNX runtime: %w", err)
		}
	}

	inputData := make([]float32, FeatureCount)
	inputTensor, err := ort.NewTensor(ort.NewShape(1, FeatureCount), inputData)
	if err != nil {
		return nil, fmt.Errorf("failed to create input tensor: %w", err)
	}

	outputData := make([]int64, 1)
	outputTensor, err := ort.NewTensor(ort.NewShape(1), outputData)
	if err != nil {
		inputTensor.Destroy()
		return nil, fmt.Errorf("failed to create output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(
		modelPath,
		[]string{onnxInputName},
		[]string{onnxOutputName},
		[]ort.ArbitraryTensor{inputTensor},
		[]ort.ArbitraryTensor{outputTensor},
		nil,
	)
	if err != nil {
		inputTensor.Destroy()
		outputTensor.Destroy()
		return nil, fmt.Errorf("failed to create ONNX session: %w", err)
	}

	return &ONNXClassifier{
		session:      session,
		inputTensor:  inputTensor,
		outputTensor: outputTensor,
	}, nil
}

// Predict runs the model on a single normalized row and returns the label.
func (c *ONNXClassifier) Predict(row [FeatureCount]float32) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	copy(c.inputTensor.GetData(), row[:])

	if err := c.session.Run(); err != nil {
		return 0, fmt.Errorf("inference failed: %w", err)
	}

	return c.outputTensor.GetData()[0], nil
}

// Close destroys the session and tensors.
func (c *ONNXClassifier) Close() error {
	var err error
	if c.session != nil {
		err = c.session.Destroy()
		c.session = nil
	}
	if c.inputTensor != nil {
		_ = c.inputTensor.Destroy()
		c.inputTensor = nil
	}
	if c.outputTensor != nil {
		_ = c.outputTensor.Destroy()
		c.outputTensor = nil
	}
	return err
}
