package testutil

import (
	"context"

	"github.com/MeKo-Tech/textspot/internal/geometry"
	"github.com/MeKo-Tech/textspot/internal/pipeline"
)

// StubDetectionModel returns a fixed probability map regardless of input.
// It records the last input dimensions for assertions.
type StubDetectionModel struct {
	Map    pipeline.ProbabilityMap
	Err    error
	Calls  int
	LastW  int
	LastH  int
	closed bool
}

func (m *StubDetectionModel) Infer(ctx context.Context, input geometry.Planar) (pipeline.ProbabilityMap, error) {
	m.Calls++
	m.LastW, m.LastH = input.Width, input.Height
	if m.Err != nil {
		return pipeline.ProbabilityMap{}, m.Err
	}
	return m.Map, nil
}

func (m *StubDetectionModel) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *StubDetectionModel) Closed() bool { return m.closed }

// StubRecognitionModel returns a fixed score matrix for every strip.
type StubRecognitionModel struct {
	Matrix pipeline.ScoreMatrix
	Err    error
	Calls  int
	closed bool
}

func (m *StubRecognitionModel) Infer(ctx context.Context, strip geometry.Planar) (pipeline.ScoreMatrix, error) {
	m.Calls++
	if m.Err != nil {
		return pipeline.ScoreMatrix{}, m.Err
	}
	return m.Matrix, nil
}

func (m *StubRecognitionModel) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *StubRecognitionModel) Closed() bool { return m.closed }

// OneHotMatrix builds a score matrix that decodes to the given class ids,
// one per timestep, each with the given confidence. Class 0 stays the
// blank; remaining probability spreads over it.
func OneHotMatrix(classIDs []int, classes int, confidence float32) pipeline.ScoreMatrix {
	steps := len(classIDs)
	data := make([]float32, steps*classes)
	rest := (1 - confidence) / float32(classes-1)
	for t, id := range classIDs {
		for c := 0; c < classes; c++ {
			if c == id {
				data[t*classes+c] = confidence
			} else {
				data[t*classes+c] = rest
			}
		}
	}
	return pipeline.ScoreMatrix{Data: data, Steps: steps, Classes: classes}
}
