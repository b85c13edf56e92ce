package detector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// grid builds a probability map from rows of 0/1 runes, scaled to value.
func grid(rows []string, value float32) ([]float32, int, int) {
	h := len(rows)
	w := len(rows[0])
	prob := make([]float32, w*h)
	for y, row := range rows {
		for x, ch := range row {
			if ch == '1' {
				prob[y*w+x] = value
			}
		}
	}
	return prob, w, h
}

func TestFindComponentsSeparatesBlobs(t *testing.T) {
	prob, w, h := grid([]string{
		"1100011",
		"1100011",
		"0000011",
	}, 255)

	contours := findComponents(prob, w, h, 76.5, 1)
	require.Len(t, contours, 2)

	// Scan order: the left blob's seed (0,0) comes before the right's (5,0).
	assert.Equal(t, MapPoint{X: 0, Y: 0}, contours[0][0])
	assert.Equal(t, MapPoint{X: 5, Y: 0}, contours[1][0])
	assert.Len(t, contours[0], 4)
	assert.Len(t, contours[1], 6)
}

func TestFindComponentsDiagonalNotConnected(t *testing.T) {
	prob, w, h := grid([]string{
		"10",
		"01",
	}, 255)

	contours := findComponents(prob, w, h, 76.5, 1)
	assert.Len(t, contours, 2)
}

func TestFindComponentsMinPixels(t *testing.T) {
	prob, w, h := grid([]string{
		"11100000",
		"11100000",
		"00000010",
	}, 255)

	contours := findComponents(prob, w, h, 76.5, 6)
	require.Len(t, contours, 1)
	assert.Len(t, contours[0], 6)
}

func TestFindComponentsThresholdIsExclusive(t *testing.T) {
	prob := []float32{80, 76.5, 70, 80}
	contours := findComponents(prob, 2, 2, 76.5, 1)

	// Pixels at exactly the threshold do not pass.
	var total int
	for _, c := range contours {
		total += len(c)
	}
	assert.Equal(t, 2, total)
}

func TestFindComponentsEmptyMap(t *testing.T) {
	prob := make([]float32, 16)
	assert.Empty(t, findComponents(prob, 4, 4, 76.5, 1))
}
