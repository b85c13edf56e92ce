package pipeline

import (
	"image"
	"image/color"

	"github.com/MeKo-Tech/textspot/internal/detector"
	"github.com/MeKo-Tech/textspot/internal/geometry"
	"github.com/disintegration/imaging"
)

// ImageNet channel statistics used by the detection model, in [0,255] pixel
// scale.
var (
	detMean  = [3]float32{0.485 * 255, 0.456 * 255, 0.406 * 255}
	detScale = [3]float32{1 / (0.229 * 255), 1 / (0.224 * 255), 1 / (0.225 * 255)}
)

// preprocessDetection shrinks the image so its longer side fits
// cfg.TargetLongSide (never upscaling), pads both dimensions to the next
// stride multiple with centered gray borders, and normalizes per channel
// into a pooled NCHW planar tensor. The returned Remap carries the scale
// and padding needed to express detected boxes in original coordinates.
// The caller must Release the returned planar.
func preprocessDetection(img image.Image, cfg Config) (geometry.Planar, detector.Remap) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	scale := 1.0
	rw, rh := w, h
	if longer := max(w, h); longer > cfg.TargetLongSide {
		scale = float64(cfg.TargetLongSide) / float64(longer)
		if w > h {
			rw = cfg.TargetLongSide
			rh = int(float64(h) * scale)
		} else {
			rh = cfg.TargetLongSide
			rw = int(float64(w) * scale)
		}
	}
	resized := imaging.Resize(img, rw, rh, imaging.Lanczos)

	stride := cfg.PadStride
	padW := (rw+stride-1)/stride*stride - rw
	padH := (rh+stride-1)/stride*stride - rh

	fill := color.NRGBA{R: cfg.PadFill, G: cfg.PadFill, B: cfg.PadFill, A: 255}
	canvas := imaging.New(rw+padW, rh+padH, fill)
	canvas = imaging.Paste(canvas, resized, image.Pt(padW/2, padH/2))

	input := normalizeDetectionInput(canvas)
	return input, detector.Remap{Scale: scale, PadW: padW, PadH: padH}
}

// normalizeDetectionInput converts the padded image to planar float RGB and
// applies per-channel mean/scale normalization.
func normalizeDetectionInput(img *image.NRGBA) geometry.Planar {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	out := geometry.NewPlanarPooled(w, h, 3)
	for c := range 3 {
		plane := out.Channel(c)
		mean, scale := detMean[c], detScale[c]
		for y := range h {
			row := img.Pix[y*img.Stride:]
			for x := range w {
				plane[y*w+x] = (float32(row[x*4+c]) - mean) * scale
			}
		}
	}
	return out
}

// denormalizeMap rescales the detection output from [0,1] to the extraction
// scale in place, so thresholding and scoring share one scale.
func denormalizeMap(m ProbabilityMap, fullScale float64) {
	s := float32(fullScale)
	for i := range m.Data {
		m.Data[i] *= s
	}
}
