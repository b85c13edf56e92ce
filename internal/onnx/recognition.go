package onnx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MeKo-Tech/textspot/internal/geometry"
	"github.com/MeKo-Tech/textspot/internal/pipeline"
	"github.com/MeKo-Tech/textspot/internal/recognizer"
)

// RecognitionSession runs the text recognition network through ONNX
// Runtime. The model takes a normalized [1,3,48,W] strip and returns a
// [1,T,C] score matrix with class 0 the CTC blank.
type RecognitionSession struct {
	sess *session
}

// NewRecognitionSession opens the recognition model at cfg.ModelPath.
func NewRecognitionSession(cfg SessionConfig) (*RecognitionSession, error) {
	sess, err := newSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("recognition session: %w", err)
	}
	slog.Debug("recognition session ready", "model", cfg.ModelPath)
	return &RecognitionSession{sess: sess}, nil
}

// Infer runs the network on one canonical strip.
func (r *RecognitionSession) Infer(ctx context.Context, strip geometry.Planar) (pipeline.ScoreMatrix, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.ScoreMatrix{}, err
	}
	tensor, err := TensorFromPlanar(strip)
	if err != nil {
		return pipeline.ScoreMatrix{}, fmt.Errorf("recognition input: %w", err)
	}

	start := time.Now()
	data, shape, err := r.sess.run(tensor)
	if err != nil {
		return pipeline.ScoreMatrix{}, err
	}
	if len(shape) != 3 || shape[0] != 1 || shape[1] <= 0 || shape[2] <= 0 {
		return pipeline.ScoreMatrix{}, fmt.Errorf("recognition output: unexpected shape %v", shape)
	}
	steps, classes := int(shape[1]), int(shape[2])
	slog.Debug("recognition inference", "steps", steps, "classes", classes,
		"duration_ms", time.Since(start).Milliseconds())

	return pipeline.ScoreMatrix{Data: data, Steps: steps, Classes: classes}, nil
}

// Warmup runs one inference on a blank strip sized like a typical short
// word so the first real call is fast.
func (r *RecognitionSession) Warmup(ctx context.Context) error {
	blank := geometry.NewPlanar(160, 48, 3)
	recognizer.NormalizeStrip(blank)
	_, err := r.Infer(ctx, blank)
	if err != nil {
		return fmt.Errorf("recognition warmup: %w", err)
	}
	return nil
}

// Close releases the underlying session.
func (r *RecognitionSession) Close() error {
	return r.sess.close()
}
