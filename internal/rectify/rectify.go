package rectify

import (
	"image"

	"github.com/MeKo-Tech/textspot/internal/detector"
	"github.com/MeKo-Tech/textspot/internal/geometry"
	"github.com/disintegration/imaging"
)

// Config holds the canonical-strip parameters for the recognition model.
type Config struct {
	// TargetHeight is the fixed strip height the recognition model expects.
	TargetHeight int
	// MaxWidth caps the strip width to bound memory on extreme boxes.
	MaxWidth int
	// MinWidth floors the strip width.
	MinWidth int
	// Margin is the extra crop border, in pixels, around the box corners.
	Margin int
}

// DefaultConfig returns the PP-OCRv5 recognition input geometry.
func DefaultConfig() Config {
	return Config{
		TargetHeight: 48,
		MaxWidth:     2048,
		MinWidth:     16,
		Margin:       10,
	}
}

// CropAndWarp cuts a minimal window around the region out of the source
// image and warps it into a canonical fixed-height strip. The source image
// is never mutated. The returned strip is 3-channel planar RGB in [0,255],
// drawn from the buffer pool; the caller must Release it once the
// recognition input has been consumed. Normalization to the recognition
// model's input range happens at the pipeline boundary.
func CropAndWarp(img image.Image, region detector.TextRegion, cfg Config) geometry.Planar {
	rw := region.Rect.Size.Width
	rh := region.Rect.Size.Height
	// Upstream filtering guarantees sane boxes; clamp anyway so the width
	// computation below cannot divide by zero.
	if rw < 1 {
		rw = 1
	}
	if rh < 1 {
		rh = 1
	}

	targetW := rh * float64(cfg.TargetHeight) / rw
	if targetW > float64(cfg.MaxWidth) {
		targetW = float64(cfg.MaxWidth)
	}
	dstW := int(targetW)
	if dstW < cfg.MinWidth {
		dstW = cfg.MinWidth
	}
	dstH := cfg.TargetHeight

	corners := region.Rect.Corners()
	crop, offX, offY := cropWindow(img, region.Rect, cfg.Margin)
	src := srcCorrespondence(corners, region.Orientation, offX, offY)
	dst := [3]geometry.Point{
		{X: 0, Y: 0},
		{X: float64(dstW), Y: 0},
		{X: 0, Y: float64(dstH)},
	}

	m := geometry.SolveAffine(src, dst)
	plane := geometry.PlanarFromImagePooled(crop)
	strip := geometry.WarpBilinearPooled(plane, m, dstW, dstH)
	plane.Release()
	return strip
}

// cropWindow extracts the axis-aligned bounding window of the region plus a
// margin, clamped to the image, and returns the window origin so corners can
// be re-expressed relative to it.
func cropWindow(img image.Image, rect geometry.RotatedRect, margin int) (image.Image, int, int) {
	b := img.Bounds()
	minX, minY, maxX, maxY := rect.BoundingBox()

	x0 := int(minX) - margin
	y0 := int(minY) - margin
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	x1 := int(maxX) + margin
	y1 := int(maxY) + margin
	if x1 > b.Dx() {
		x1 = b.Dx()
	}
	if y1 > b.Dy() {
		y1 = b.Dy()
	}
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	crop := imaging.Crop(img, image.Rect(b.Min.X+x0, b.Min.Y+y0, b.Min.X+x1, b.Min.Y+y1))
	return crop, x0, y0
}

// srcCorrespondence picks three of the four corners as the strip's top-left,
// top-right and bottom-left, in crop-window coordinates. Horizontal and
// vertical boxes use different corner-to-role mappings because after angle
// normalization their width axes point along different image axes.
func srcCorrespondence(corners [4]geometry.Point, orient detector.Orientation, offX, offY int) [3]geometry.Point {
	rel := func(p geometry.Point) geometry.Point {
		return geometry.Point{X: p.X - float64(offX), Y: p.Y - float64(offY)}
	}
	if orient == detector.Horizontal {
		return [3]geometry.Point{rel(corners[3]), rel(corners[0]), rel(corners[2])}
	}
	return [3]geometry.Point{rel(corners[1]), rel(corners[2]), rel(corners[0])}
}
