package geometry

import (
	"image"

	"github.com/MeKo-Tech/textspot/internal/mempool"
)

// Planar is a channel-planar float32 image: all pixels of channel 0, then
// all pixels of channel 1, and so on. This is the layout both networks
// consume and the layout the warper iterates for cache locality.
type Planar struct {
	Data     []float32
	Width    int
	Height   int
	Channels int
}

// NewPlanar allocates a zero-filled planar image.
func NewPlanar(w, h, c int) Planar {
	return Planar{Data: make([]float32, w*h*c), Width: w, Height: h, Channels: c}
}

// NewPlanarPooled allocates a planar image from the buffer pool. The caller
// must hand the image back via Release when done with it.
func NewPlanarPooled(w, h, c int) Planar {
	buf := mempool.GetFloat32(w * h * c)
	for i := range buf {
		buf[i] = 0
	}
	return Planar{Data: buf, Width: w, Height: h, Channels: c}
}

// Release returns a pooled planar buffer. Safe on zero-value images.
func (p *Planar) Release() {
	mempool.PutFloat32(p.Data)
	p.Data = nil
}

// Channel returns the pixel plane for channel c.
func (p Planar) Channel(c int) []float32 {
	plane := p.Width * p.Height
	return p.Data[c*plane : (c+1)*plane]
}

// At returns the value at (x, y) in channel c. No bounds checking beyond
// the slice's own.
func (p Planar) At(c, x, y int) float32 {
	return p.Data[c*p.Width*p.Height+y*p.Width+x]
}

// Set writes the value at (x, y) in channel c.
func (p *Planar) Set(c, x, y int, v float32) {
	p.Data[c*p.Width*p.Height+y*p.Width+x] = v
}

// PlanarFromImage converts an image to a 3-channel planar RGB float image
// with values in [0, 255].
func PlanarFromImage(img image.Image) Planar {
	b := img.Bounds()
	out := NewPlanar(b.Dx(), b.Dy(), 3)
	fillFromImage(out, img)
	return out
}

// PlanarFromImagePooled is PlanarFromImage with the buffer drawn from the
// pool. The caller must Release the result.
func PlanarFromImagePooled(img image.Image) Planar {
	b := img.Bounds()
	out := NewPlanarPooled(b.Dx(), b.Dy(), 3)
	fillFromImage(out, img)
	return out
}

func fillFromImage(out Planar, img image.Image) {
	b := img.Bounds()
	w, h := out.Width, out.Height
	rp := out.Channel(0)
	gp := out.Channel(1)
	bp := out.Channel(2)
	for y := range h {
		for x := range w {
			r, g, bl, _ := img.At(b.Min.X+x, b.Min.Y+y).RGBA()
			i := y*w + x
			rp[i] = float32(r >> 8)
			gp[i] = float32(g >> 8)
			bp[i] = float32(bl >> 8)
		}
	}
}
