package detector

import "github.com/MeKo-Tech/textspot/internal/geometry"

// Orientation classifies the reading direction of a text region.
type Orientation int

const (
	// Horizontal text reads along the box's width axis.
	Horizontal Orientation = iota
	// Vertical text reads top to bottom.
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// TextRegion is an oriented, confidence-scored text box in original-image
// coordinates. Confidence starts as the detection score; the pipeline
// overwrites it with the mean recognition confidence once glyphs are
// decoded.
type TextRegion struct {
	Rect        geometry.RotatedRect
	Orientation Orientation
	Confidence  float64
}

// MapPoint is an integer pixel coordinate on the probability map.
type MapPoint struct {
	X int
	Y int
}

// Contour is the pixel set of one connected component of the thresholded
// probability map. It is a point cloud, not a boundary walk.
type Contour []MapPoint
