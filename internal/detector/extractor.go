package detector

import (
	"log/slog"

	"github.com/MeKo-Tech/textspot/internal/geometry"
)

// ExtractRegions converts a probability map into oriented text regions in
// original-image coordinates: threshold, 4-connected components, ray-cast
// scoring, PCA box fit, orientation and angle normalization, enlargement,
// remap through the preprocessing scale/padding, and degenerate-box
// rejection. Regions come back in component discovery order.
func ExtractRegions(prob []float32, w, h int, params Params, remap Remap) []TextRegion {
	if len(prob) != w*h || w <= 0 || h <= 0 {
		return nil
	}

	threshold := float32(params.Threshold * params.FullScale)
	contours := findComponents(prob, w, h, threshold, params.MinPixels)

	regions := make([]TextRegion, 0, len(contours))
	for _, contour := range contours {
		score := contourScore(prob, w, h, contour) / params.FullScale
		if score < params.BoxThreshold {
			continue
		}

		rect := fitRotatedRect(contour)
		if maxDim(rect.Size) < params.MinMapSize*remap.Scale {
			continue
		}

		orient := normalizeOrientation(&rect, params.VerticalRatio)
		enlarge(&rect, params.EnlargeRatio)
		remapRect(&rect, remap)

		if rect.Size.Width < params.MinBoxSize || rect.Size.Height < params.MinBoxSize {
			slog.Warn("discarding degenerate text box",
				"width", rect.Size.Width, "height", rect.Size.Height,
				"cx", rect.Center.X, "cy", rect.Center.Y)
			continue
		}
		ratio := rect.Size.Height / (rect.Size.Width + 1e-6)
		if ratio > params.MaxAspect || ratio < 1.0/params.MaxAspect {
			slog.Warn("discarding extreme aspect ratio text box",
				"width", rect.Size.Width, "height", rect.Size.Height, "ratio", ratio)
			continue
		}

		regions = append(regions, TextRegion{
			Rect:        rect,
			Orientation: orient,
			Confidence:  score,
		})
	}
	return regions
}

// normalizeOrientation classifies the region and rewrites angle and extents
// into the convention where width is the reading-direction axis. The
// condition sequence must stay in this exact order; the bands overlap near
// the 30/60 degree boundaries and downstream behavior depends on the
// ordering.
func normalizeOrientation(rect *geometry.RotatedRect, verticalRatio float64) Orientation {
	orient := Horizontal
	if rect.Angle >= -30 && rect.Angle <= 30 && rect.Size.Height > rect.Size.Width*verticalRatio {
		orient = Vertical
	}
	if (rect.Angle <= -60 || rect.Angle >= 60) && rect.Size.Width > rect.Size.Height*verticalRatio {
		orient = Vertical
	}

	if rect.Angle < -30 {
		rect.Angle += 180
	}
	if orient == Horizontal && rect.Angle < 30 {
		rect.Angle += 90
		rect.Size.Width, rect.Size.Height = rect.Size.Height, rect.Size.Width
	}
	if orient == Vertical && rect.Angle >= 60 {
		rect.Angle -= 90
		rect.Size.Width, rect.Size.Height = rect.Size.Height, rect.Size.Width
	}
	return orient
}

// enlarge grows a tight detection box asymmetrically: recognition needs
// margin mostly along the short axis, so height grows by width*(ratio-1)
// while width scales directly.
func enlarge(rect *geometry.RotatedRect, ratio float64) {
	rect.Size.Height += rect.Size.Width * (ratio - 1)
	rect.Size.Width *= ratio
}

// remapRect undoes the preprocessing padding and resize to express the box
// in original-image pixels.
func remapRect(rect *geometry.RotatedRect, remap Remap) {
	if remap.Scale == 0 {
		return
	}
	rect.Center.X = (rect.Center.X - float64(remap.PadW)/2) / remap.Scale
	rect.Center.Y = (rect.Center.Y - float64(remap.PadH)/2) / remap.Scale
	rect.Size.Width /= remap.Scale
	rect.Size.Height /= remap.Scale
}

func maxDim(s geometry.Size) float64 {
	if s.Width > s.Height {
		return s.Width
	}
	return s.Height
}
