package detector

import (
	"math"

	"github.com/MeKo-Tech/textspot/internal/geometry"
)

// fitRotatedRect fits an oriented box to a contour by principal component
// analysis: the symmetric 2x2 covariance eigenproblem is solved analytically,
// the points are projected onto the principal axis and its perpendicular,
// and the extents map back to image coordinates. The angle is the atan2 of
// the principal eigenvector, in degrees.
func fitRotatedRect(contour Contour) geometry.RotatedRect {
	if len(contour) == 0 {
		return geometry.RotatedRect{}
	}

	var meanX, meanY float64
	for _, p := range contour {
		meanX += float64(p.X)
		meanY += float64(p.Y)
	}
	n := float64(len(contour))
	meanX /= n
	meanY /= n

	var covXX, covXY, covYY float64
	for _, p := range contour {
		dx := float64(p.X) - meanX
		dy := float64(p.Y) - meanY
		covXX += dx * dx
		covXY += dx * dy
		covYY += dy * dy
	}

	// lambda = ((a+c) +/- sqrt((a-c)^2 + 4b^2)) / 2 for [[a,b],[b,c]].
	disc := math.Sqrt((covXX-covYY)*(covXX-covYY) + 4*covXY*covXY)
	lambda1 := (covXX + covYY + disc) / 2

	vx, vy := principalAxis(covXX, covXY, covYY, lambda1)

	var minU, maxU = math.Inf(1), math.Inf(-1)
	var minV, maxV = math.Inf(1), math.Inf(-1)
	for _, p := range contour {
		dx := float64(p.X) - meanX
		dy := float64(p.Y) - meanY
		u := dx*vx + dy*vy
		v := -dx*vy + dy*vx
		minU = math.Min(minU, u)
		maxU = math.Max(maxU, u)
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}

	centerU := (minU + maxU) / 2
	centerV := (minV + maxV) / 2

	return geometry.RotatedRect{
		Center: geometry.Point{
			X: meanX + centerU*vx - centerV*vy,
			Y: meanY + centerU*vy + centerV*vx,
		},
		Size: geometry.Size{
			Width:  maxU - minU,
			Height: maxV - minV,
		},
		Angle: math.Atan2(vy, vx) * 180 / math.Pi,
	}
}

// principalAxis returns the unit eigenvector for the larger eigenvalue.
// Axis-aligned point clouds (covXY ~ 0) pick the axis of larger variance.
func principalAxis(covXX, covXY, covYY, lambda1 float64) (float64, float64) {
	var vx, vy float64
	if math.Abs(covXY) > 1e-6 {
		vx = lambda1 - covYY
		vy = covXY
	} else if covXX >= covYY {
		return 1, 0
	} else {
		return 0, 1
	}
	norm := math.Hypot(vx, vy)
	return vx / norm, vy / norm
}
