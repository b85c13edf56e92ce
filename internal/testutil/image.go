package testutil

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// TextImageConfig holds configuration for generating synthetic text images.
type TextImageConfig struct {
	Text       string
	Width      int
	Height     int
	Background color.Color
	Foreground color.Color
	FontFace   font.Face
	Rotation   float64 // degrees, counter-clockwise
}

// DefaultTextImageConfig returns a configuration for a simple white image
// with one line of black text.
func DefaultTextImageConfig() TextImageConfig {
	return TextImageConfig{
		Text:       "Sample Text",
		Width:      640,
		Height:     480,
		Background: color.White,
		Foreground: color.Black,
		FontFace:   basicfont.Face7x13,
	}
}

// GenerateTextImage creates a synthetic text image. Text is centered
// horizontally and placed at the vertical middle.
func GenerateTextImage(cfg TextImageConfig) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height))
	draw.Draw(img, img.Bounds(), &image.Uniform{cfg.Background}, image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{cfg.Foreground},
		Face: cfg.FontFace,
	}
	textWidth := drawer.MeasureString(cfg.Text).Ceil()
	drawer.Dot = fixed.P((cfg.Width-textWidth)/2, cfg.Height/2)
	drawer.DrawString(cfg.Text)

	if cfg.Rotation != 0 {
		return imaging.Rotate(img, cfg.Rotation, cfg.Background)
	}
	return img
}

// SolidImage returns a uniform image of the given size and color.
func SolidImage(w, h int, c color.Color) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), &image.Uniform{c}, image.Point{}, draw.Src)
	return img
}

// GradientImage returns an image whose red channel increases left to right
// and green channel top to bottom. Useful for checking sampling geometry.
func GradientImage(w, h int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r := uint8(x * 255 / max(w-1, 1))
			g := uint8(y * 255 / max(h-1, 1))
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: 128, A: 255})
		}
	}
	return img
}
