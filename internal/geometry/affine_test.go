package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolveAffineMapsCorrespondence(t *testing.T) {
	src := [3]Point{{X: 10, Y: 20}, {X: 110, Y: 25}, {X: 8, Y: 70}}
	dst := [3]Point{{X: 0, Y: 0}, {X: 96, Y: 0}, {X: 0, Y: 48}}

	m := SolveAffine(src, dst)
	for i := range src {
		got := m.Apply(src[i])
		assert.InDelta(t, dst[i].X, got.X, 1e-9)
		assert.InDelta(t, dst[i].Y, got.Y, 1e-9)
	}
}

func TestSolveAffineTranslation(t *testing.T) {
	src := [3]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}
	dst := [3]Point{{X: 5, Y: 7}, {X: 6, Y: 7}, {X: 5, Y: 8}}

	m := SolveAffine(src, dst)
	assert.InDelta(t, 1, m.A, 1e-12)
	assert.InDelta(t, 0, m.B, 1e-12)
	assert.InDelta(t, 5, m.C, 1e-12)
	assert.InDelta(t, 0, m.D, 1e-12)
	assert.InDelta(t, 1, m.E, 1e-12)
	assert.InDelta(t, 7, m.F, 1e-12)
}

func TestSolveAffineCollinearFallsBackToIdentity(t *testing.T) {
	src := [3]Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 2}}
	dst := [3]Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 0, Y: 10}}

	m := SolveAffine(src, dst)
	assert.True(t, m.IsIdentity())
}

func TestSolveAffineCoincidentPointsFallsBackToIdentity(t *testing.T) {
	p := Point{X: 3, Y: 4}
	m := SolveAffine([3]Point{p, p, p}, [3]Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}})
	assert.True(t, m.IsIdentity())
}

func TestInvertRoundTrip(t *testing.T) {
	m := SolveAffine(
		[3]Point{{X: 2, Y: 3}, {X: 40, Y: 9}, {X: 5, Y: 31}},
		[3]Point{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 0, Y: 48}},
	)
	inv, ok := m.Invert()
	require.True(t, ok)

	for _, p := range []Point{{X: 0, Y: 0}, {X: 17, Y: 23}, {X: -4, Y: 100}} {
		back := inv.Apply(m.Apply(p))
		assert.InDelta(t, p.X, back.X, 1e-8)
		assert.InDelta(t, p.Y, back.Y, 1e-8)
	}
}

func TestInvertSingular(t *testing.T) {
	m := AffineTransform{A: 1, B: 2, D: 2, E: 4} // rank 1 linear part
	inv, ok := m.Invert()
	assert.False(t, ok)
	assert.True(t, inv.IsIdentity())
}
