package pipeline

import (
	"testing"

	"github.com/MeKo-Tech/textspot/internal/recognizer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopDetModel struct{ DetectionModel }

type nopRecModel struct{ RecognitionModel }

func testCharset() *recognizer.Charset {
	return recognizer.NewCharset([]string{"a", "b", "c", "d", "e", "f", "g"})
}

func TestBuilderRequiresModels(t *testing.T) {
	_, err := NewBuilder().Build()
	assert.Error(t, err)

	_, err = NewBuilder().WithDetectionModel(nopDetModel{}).Build()
	assert.Error(t, err)

	_, err = NewBuilder().
		WithDetectionModel(nopDetModel{}).
		WithRecognitionModel(nopRecModel{}).
		Build()
	assert.Error(t, err) // missing charset

	pl, err := NewBuilder().
		WithDetectionModel(nopDetModel{}).
		WithRecognitionModel(nopRecModel{}).
		WithCharset(testCharset()).
		Build()
	require.NoError(t, err)
	assert.NotNil(t, pl)
}

func TestBuilderThresholdValidation(t *testing.T) {
	b := NewBuilder().
		WithDetectionModel(nopDetModel{}).
		WithRecognitionModel(nopRecModel{}).
		WithCharset(testCharset())

	// Out-of-range values are ignored by the setter, so Build still works.
	pl, err := b.WithScoreThreshold(1.5).Build()
	require.NoError(t, err)
	assert.InDelta(t, DefaultConfig().ScoreThreshold, pl.ScoreThreshold(), 1e-9)
}

func TestSetScoreThreshold(t *testing.T) {
	pl, err := NewBuilder().
		WithDetectionModel(nopDetModel{}).
		WithRecognitionModel(nopRecModel{}).
		WithCharset(testCharset()).
		Build()
	require.NoError(t, err)

	require.NoError(t, pl.SetScoreThreshold(0.75))
	assert.InDelta(t, 0.75, pl.ScoreThreshold(), 1e-9)

	assert.Error(t, pl.SetScoreThreshold(-0.1))
	assert.Error(t, pl.SetScoreThreshold(1.1))
	assert.InDelta(t, 0.75, pl.ScoreThreshold(), 1e-9)
}

func TestWithWorkersIgnoresNonPositive(t *testing.T) {
	b := NewBuilder().WithWorkers(0)
	assert.Equal(t, DefaultConfig().Workers, b.cfg.Workers)

	b = NewBuilder().WithWorkers(4)
	assert.Equal(t, 4, b.cfg.Workers)
}
