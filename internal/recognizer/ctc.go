package recognizer

// Glyph is one decoded character: an index into an external character
// dictionary plus the decoder's confidence for it.
type Glyph struct {
	ID         int
	Confidence float64
}

// DecodeGreedy decodes a per-timestep class-probability matrix (steps rows
// by classes columns, row-major, class 0 the blank sentinel) with greedy
// CTC decoding: per timestep take the argmax, collapse consecutive repeats,
// drop blanks, and shift surviving class indices down by one so glyph IDs
// index the dictionary without the blank. Only the previous argmax is
// carried between steps; one pass, O(steps*classes).
func DecodeGreedy(scores []float32, steps, classes int) []Glyph {
	if steps <= 0 || classes <= 0 || len(scores) < steps*classes {
		return nil
	}

	glyphs := make([]Glyph, 0, steps)
	last := 0
	for t := range steps {
		row := scores[t*classes : (t+1)*classes]
		index := 0
		best := row[0]
		for j := 1; j < classes; j++ {
			if row[j] > best {
				best = row[j]
				index = j
			}
		}

		if index == last {
			continue
		}
		last = index
		if index <= 0 {
			continue
		}
		glyphs = append(glyphs, Glyph{ID: index - 1, Confidence: float64(best)})
	}
	return glyphs
}

// MeanConfidence averages glyph confidences; 0 for an empty sequence.
func MeanConfidence(glyphs []Glyph) float64 {
	if len(glyphs) == 0 {
		return 0
	}
	var sum float64
	for _, g := range glyphs {
		sum += g.Confidence
	}
	return sum / float64(len(glyphs))
}
