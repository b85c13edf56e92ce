package onnx

import (
	"testing"

	"github.com/MeKo-Tech/textspot/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTensorFromPlanar(t *testing.T) {
	p := geometry.NewPlanar(4, 3, 3)
	tensor, err := TensorFromPlanar(p)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 3, 4}, tensor.Shape)
	assert.Len(t, tensor.Data, 36)
}

func TestTensorFromPlanarNilData(t *testing.T) {
	_, err := TensorFromPlanar(geometry.Planar{Width: 2, Height: 2, Channels: 1})
	assert.Error(t, err)
}

func TestTensorFromPlanarLengthMismatch(t *testing.T) {
	p := geometry.Planar{Data: make([]float32, 5), Width: 2, Height: 2, Channels: 3}
	_, err := TensorFromPlanar(p)
	assert.Error(t, err)
}

func TestValidateNCHW(t *testing.T) {
	assert.NoError(t, ValidateNCHW([]int64{1, 3, 48, 320}))
	assert.Error(t, ValidateNCHW([]int64{1, 3, 48}))
	assert.Error(t, ValidateNCHW([]int64{1, 3, 0, 320}))
	assert.Error(t, ValidateNCHW([]int64{1, -1, 48, 320}))
}

func TestTensorStats(t *testing.T) {
	minV, maxV, mean := TensorStats([]float32{1, 2, 3, 4})
	assert.InDelta(t, 1, minV, 1e-6)
	assert.InDelta(t, 4, maxV, 1e-6)
	assert.InDelta(t, 2.5, mean, 1e-6)

	minV, maxV, mean = TensorStats(nil)
	assert.Zero(t, minV)
	assert.Zero(t, maxV)
	assert.Zero(t, mean)
}
