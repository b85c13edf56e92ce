package geometry

import "math"

// degenerateEps is the determinant magnitude below which a 3-point
// correspondence or a linear part is treated as singular.
const degenerateEps = 1e-6

// AffineTransform maps (x, y) to (A*x + B*y + C, D*x + E*y + F).
type AffineTransform struct {
	A, B, C float64
	D, E, F float64
}

// IdentityTransform returns the identity affine transform.
func IdentityTransform() AffineTransform {
	return AffineTransform{A: 1, E: 1}
}

// Apply maps a point through the transform.
func (m AffineTransform) Apply(p Point) Point {
	return Point{
		X: m.A*p.X + m.B*p.Y + m.C,
		Y: m.D*p.X + m.E*p.Y + m.F,
	}
}

// IsIdentity reports whether the transform is exactly the identity.
func (m AffineTransform) IsIdentity() bool {
	return m == IdentityTransform()
}

// SolveAffine solves the unique affine map taking three source points to
// three destination points by Cramer's-rule expansion of the 3x3 system.
// A near-singular correspondence yields the identity transform instead of
// propagating NaN/Inf downstream.
func SolveAffine(src, dst [3]Point) AffineTransform {
	x1, y1 := src[0].X, src[0].Y
	x2, y2 := src[1].X, src[1].Y
	x3, y3 := src[2].X, src[2].Y
	u1, v1 := dst[0].X, dst[0].Y
	u2, v2 := dst[1].X, dst[1].Y
	u3, v3 := dst[2].X, dst[2].Y

	det := x1*(y2-y3) - y1*(x2-x3) + x2*y3 - x3*y2
	if math.Abs(det) < degenerateEps {
		return IdentityTransform()
	}

	return AffineTransform{
		A: (u1*(y2-y3) - y1*(u2-u3) + u2*y3 - u3*y2) / det,
		B: (x1*(u2-u3) - u1*(x2-x3) + x2*u3 - x3*u2) / det,
		C: (x1*(y2*u3-y3*u2) - y1*(x2*u3-x3*u2) + u1*(x2*y3-x3*y2)) / det,
		D: (v1*(y2-y3) - y1*(v2-v3) + v2*y3 - v3*y2) / det,
		E: (x1*(v2-v3) - v1*(x2-x3) + x2*v3 - x3*v2) / det,
		F: (x1*(y2*v3-y3*v2) - y1*(x2*v3-x3*v2) + v1*(x2*y3-x3*y2)) / det,
	}
}

// Invert returns the algebraic inverse of the transform. The 2x2 linear part
// is inverted directly and the translation recomputed. ok is false when the
// linear part is near-singular.
func (m AffineTransform) Invert() (AffineTransform, bool) {
	det := m.A*m.E - m.B*m.D
	if math.Abs(det) < degenerateEps {
		return IdentityTransform(), false
	}
	inv := 1.0 / det
	return AffineTransform{
		A: m.E * inv,
		B: -m.B * inv,
		C: (m.B*m.F - m.C*m.E) * inv,
		D: -m.D * inv,
		E: m.A * inv,
		F: (m.C*m.D - m.A*m.F) * inv,
	}, true
}
