package onnx

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MeKo-Tech/textspot/internal/geometry"
	"github.com/MeKo-Tech/textspot/internal/pipeline"
)

// DetectionSession runs the text detection network through ONNX Runtime.
// The model takes a normalized [1,3,H,W] image and returns a [1,1,h,w]
// probability surface.
type DetectionSession struct {
	sess *session
}

// NewDetectionSession opens the detection model at cfg.ModelPath.
func NewDetectionSession(cfg SessionConfig) (*DetectionSession, error) {
	sess, err := newSession(cfg)
	if err != nil {
		return nil, fmt.Errorf("detection session: %w", err)
	}
	slog.Debug("detection session ready", "model", cfg.ModelPath)
	return &DetectionSession{sess: sess}, nil
}

// Infer runs the network on one preprocessed planar image.
func (d *DetectionSession) Infer(ctx context.Context, input geometry.Planar) (pipeline.ProbabilityMap, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.ProbabilityMap{}, err
	}
	tensor, err := TensorFromPlanar(input)
	if err != nil {
		return pipeline.ProbabilityMap{}, fmt.Errorf("detection input: %w", err)
	}

	start := time.Now()
	data, shape, err := d.sess.run(tensor)
	if err != nil {
		return pipeline.ProbabilityMap{}, err
	}
	if err := ValidateNCHW(shape); err != nil {
		return pipeline.ProbabilityMap{}, fmt.Errorf("detection output: %w", err)
	}
	h, w := int(shape[2]), int(shape[3])
	slog.Debug("detection inference", "w", w, "h", h,
		"duration_ms", time.Since(start).Milliseconds())

	return pipeline.ProbabilityMap{Data: data, Width: w, Height: h}, nil
}

// Warmup runs one inference on a blank input so the first real call does
// not pay graph optimization and allocation cost.
func (d *DetectionSession) Warmup(ctx context.Context) error {
	const side = 320
	blank := geometry.NewPlanar(side, side, 3)
	_, err := d.Infer(ctx, blank)
	if err != nil {
		return fmt.Errorf("detection warmup: %w", err)
	}
	return nil
}

// Close releases the underlying session.
func (d *DetectionSession) Close() error {
	return d.sess.close()
}
