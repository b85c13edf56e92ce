package recognizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// matrixFor builds a score matrix whose per-timestep argmax follows path.
// The winning class gets winScore, all others share the remainder.
func matrixFor(path []int, classes int, winScore float32) []float32 {
	scores := make([]float32, len(path)*classes)
	rest := (1 - winScore) / float32(classes-1)
	for t, cls := range path {
		for j := 0; j < classes; j++ {
			if j == cls {
				scores[t*classes+j] = winScore
			} else {
				scores[t*classes+j] = rest
			}
		}
	}
	return scores
}

func TestDecodeGreedyCollapseAndBlankRemoval(t *testing.T) {
	path := []int{0, 0, 3, 3, 3, 0, 5, 5, 0, 0}
	scores := matrixFor(path, 8, 0.9)

	glyphs := DecodeGreedy(scores, len(path), 8)
	require.Len(t, glyphs, 2)
	assert.Equal(t, 2, glyphs[0].ID)
	assert.Equal(t, 4, glyphs[1].ID)
	assert.InDelta(t, 0.9, glyphs[0].Confidence, 1e-6)
}

func TestDecodeGreedyRepeatWithoutBlankCollapses(t *testing.T) {
	// Two runs of 7 separated only by more 7s stay one glyph.
	scores := matrixFor([]int{7, 7, 7, 7}, 10, 0.8)
	glyphs := DecodeGreedy(scores, 4, 10)
	require.Len(t, glyphs, 1)
	assert.Equal(t, 6, glyphs[0].ID)
}

func TestDecodeGreedyBlankSeparatesRepeats(t *testing.T) {
	scores := matrixFor([]int{2, 0, 2}, 4, 0.7)
	glyphs := DecodeGreedy(scores, 3, 4)
	require.Len(t, glyphs, 2)
	assert.Equal(t, 1, glyphs[0].ID)
	assert.Equal(t, 1, glyphs[1].ID)
}

func TestDecodeGreedyAllBlanks(t *testing.T) {
	scores := matrixFor([]int{0, 0, 0}, 5, 0.95)
	assert.Empty(t, DecodeGreedy(scores, 3, 5))
}

func TestDecodeGreedyLeadingNonBlank(t *testing.T) {
	// The decoder starts as if the previous argmax were blank, so a glyph at
	// t=0 is emitted.
	scores := matrixFor([]int{4, 4}, 6, 0.85)
	glyphs := DecodeGreedy(scores, 2, 6)
	require.Len(t, glyphs, 1)
	assert.Equal(t, 3, glyphs[0].ID)
}

func TestDecodeGreedyInvalidInput(t *testing.T) {
	assert.Nil(t, DecodeGreedy(nil, 3, 4))
	assert.Nil(t, DecodeGreedy(make([]float32, 5), 3, 4))
	assert.Nil(t, DecodeGreedy(make([]float32, 12), 0, 4))
	assert.Nil(t, DecodeGreedy(make([]float32, 12), 3, 0))
}

func TestMeanConfidence(t *testing.T) {
	glyphs := []Glyph{{ID: 1, Confidence: 0.6}, {ID: 2, Confidence: 1.0}}
	assert.InDelta(t, 0.8, MeanConfidence(glyphs), 1e-9)
	assert.Zero(t, MeanConfidence(nil))
}
