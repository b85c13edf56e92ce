package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContourScoreUniformBlob(t *testing.T) {
	// 20x10 map with a uniform 8x4 blob at value 200.
	w, h := 20, 10
	prob := make([]float32, w*h)
	var contour Contour
	for y := 3; y < 7; y++ {
		for x := 5; x < 13; x++ {
			prob[y*w+x] = 200
			contour = append(contour, MapPoint{X: x, Y: y})
		}
	}

	// Every counted pixel lies in the blob, so the mean equals the blob value.
	score := contourScore(prob, w, h, contour)
	assert.InDelta(t, 200, score, 1e-6)
}

func TestContourScoreEmptyContour(t *testing.T) {
	prob := make([]float32, 16)
	assert.Zero(t, contourScore(prob, 4, 4, nil))
}

func TestContourBoundsClamped(t *testing.T) {
	contour := Contour{{X: -2, Y: 1}, {X: 10, Y: 5}}
	minX, minY, maxX, maxY := contourBounds(contour, 8, 4)
	assert.Equal(t, 0, minX)
	assert.Equal(t, 1, minY)
	assert.Equal(t, 7, maxX)
	assert.Equal(t, 3, maxY)
}

func TestFitRotatedRectAxisAligned(t *testing.T) {
	// Horizontal run of pixels: principal axis along x, angle 0.
	var contour Contour
	for y := 0; y < 3; y++ {
		for x := 0; x < 21; x++ {
			contour = append(contour, MapPoint{X: x, Y: y})
		}
	}
	rect := fitRotatedRect(contour)

	assert.InDelta(t, 10, rect.Center.X, 1e-9)
	assert.InDelta(t, 1, rect.Center.Y, 1e-9)
	assert.InDelta(t, 20, rect.Size.Width, 1e-9)
	assert.InDelta(t, 2, rect.Size.Height, 1e-9)
	assert.InDelta(t, 0, rect.Angle, 1e-9)
}

func TestFitRotatedRectVerticalRun(t *testing.T) {
	var contour Contour
	for y := 0; y < 21; y++ {
		for x := 0; x < 3; x++ {
			contour = append(contour, MapPoint{X: x, Y: y})
		}
	}
	rect := fitRotatedRect(contour)

	// Principal axis along y: width spans the long dimension at 90 degrees.
	assert.InDelta(t, 20, rect.Size.Width, 1e-9)
	assert.InDelta(t, 2, rect.Size.Height, 1e-9)
	assert.InDelta(t, 90, rect.Angle, 1e-9)
}

func TestFitRotatedRectDiagonal(t *testing.T) {
	// Points along the 45-degree line.
	var contour Contour
	for i := 0; i < 30; i++ {
		contour = append(contour, MapPoint{X: i, Y: i})
	}
	rect := fitRotatedRect(contour)

	require.InDelta(t, 45, rect.Angle, 1e-6)
	assert.InDelta(t, 0, rect.Size.Height, 1e-6)
}

func TestFitRotatedRectEmpty(t *testing.T) {
	rect := fitRotatedRect(nil)
	assert.Zero(t, rect.Size.Width)
	assert.Zero(t, rect.Size.Height)
}
