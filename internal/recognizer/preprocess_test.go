package recognizer

import (
	"testing"

	"github.com/MeKo-Tech/textspot/internal/geometry"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeStrip(t *testing.T) {
	strip := geometry.NewPlanar(2, 1, 1)
	strip.Data[0] = 0
	strip.Data[1] = 255

	NormalizeStrip(strip)
	assert.InDelta(t, -1, strip.Data[0], 1e-6)
	assert.InDelta(t, 1, strip.Data[1], 1e-6)
}

func TestNormalizeStripMidGray(t *testing.T) {
	strip := geometry.NewPlanar(1, 1, 1)
	strip.Data[0] = 127.5
	NormalizeStrip(strip)
	assert.InDelta(t, 0, strip.Data[0], 1e-6)
}
