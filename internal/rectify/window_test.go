package rectify

import (
	"image"
	"testing"

	"github.com/MeKo-Tech/textspot/internal/geometry"
	"github.com/stretchr/testify/assert"
)

func TestCropWindowClampsToBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 40, 30))
	rect := geometry.RotatedRect{
		Center: geometry.Point{X: 5, Y: 5},
		Size:   geometry.Size{Width: 30, Height: 30},
	}
	crop, offX, offY := cropWindow(img, rect, 10)
	assert.Equal(t, 0, offX)
	assert.Equal(t, 0, offY)
	b := crop.Bounds()
	assert.LessOrEqual(t, b.Dx(), 40)
	assert.LessOrEqual(t, b.Dy(), 30)
}
