package onnx

import (
	"errors"
	"fmt"

	"github.com/MeKo-Tech/textspot/internal/geometry"
)

// Tensor is a float32 tensor prepared for ONNX input. Data is row-major,
// NCHW for images.
type Tensor struct {
	Data  []float32
	Shape []int64
}

// TensorFromPlanar wraps a planar image as a [1, C, H, W] tensor without
// copying.
func TensorFromPlanar(p geometry.Planar) (Tensor, error) {
	if p.Data == nil {
		return Tensor{}, errors.New("nil planar data")
	}
	expected := p.Channels * p.Height * p.Width
	if len(p.Data) != expected {
		return Tensor{}, fmt.Errorf("unexpected data length: got %d, want %d", len(p.Data), expected)
	}
	shape := []int64{1, int64(p.Channels), int64(p.Height), int64(p.Width)}
	return Tensor{Data: p.Data, Shape: shape}, nil
}

// ValidateNCHW ensures a shape is [N, C, H, W] with positive dimensions.
func ValidateNCHW(shape []int64) error {
	if len(shape) != 4 {
		return fmt.Errorf("shape rank %d != 4", len(shape))
	}
	for i, v := range shape {
		if v <= 0 {
			return fmt.Errorf("dimension %d must be > 0, got %d", i, v)
		}
	}
	return nil
}

// TensorStats computes min, max and mean for debug output.
func TensorStats(data []float32) (float32, float32, float32) {
	if len(data) == 0 {
		return 0, 0, 0
	}
	minVal, maxVal := data[0], data[0]
	var sum float64
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
		sum += float64(v)
	}
	return minVal, maxVal, float32(sum / float64(len(data)))
}
