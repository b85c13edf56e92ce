package geometry

import "math"

// Point is a 2D coordinate in float image space.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height extent in float image space.
type Size struct {
	Width  float64
	Height float64
}

// RotatedRect is an oriented box given by center, extent and rotation angle
// in degrees. An angle of 0 means Width runs along the image x axis.
type RotatedRect struct {
	Center Point
	Size   Size
	Angle  float64
}

// Corners returns the four corners of the box after rotating the half-extent
// offsets by Angle and translating by Center. The order is fixed: top-left,
// top-right, bottom-right, bottom-left under the 0-degree reference, so
// callers can index corners by role.
func (r RotatedRect) Corners() [4]Point {
	rad := r.Angle * math.Pi / 180.0
	cosA := math.Cos(rad)
	sinA := math.Sin(rad)

	hw := r.Size.Width / 2.0
	hh := r.Size.Height / 2.0

	relX := [4]float64{-hw, hw, hw, -hw}
	relY := [4]float64{-hh, -hh, hh, hh}

	var pts [4]Point
	for i := range 4 {
		pts[i] = Point{
			X: r.Center.X + relX[i]*cosA - relY[i]*sinA,
			Y: r.Center.Y + relX[i]*sinA + relY[i]*cosA,
		}
	}
	return pts
}

// BoundingBox returns the axis-aligned min/max extents of the rotated box.
func (r RotatedRect) BoundingBox() (minX, minY, maxX, maxY float64) {
	pts := r.Corners()
	minX, maxX = pts[0].X, pts[0].X
	minY, maxY = pts[0].Y, pts[0].Y
	for _, p := range pts[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return minX, minY, maxX, maxY
}
