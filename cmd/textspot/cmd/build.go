package cmd

import (
	"context"
	"fmt"

	"github.com/MeKo-Tech/textspot/internal/config"
	"github.com/MeKo-Tech/textspot/internal/onnx"
	"github.com/MeKo-Tech/textspot/internal/pipeline"
	"github.com/MeKo-Tech/textspot/internal/recognizer"
)

// buildPipeline opens both model sessions, loads the dictionary and wires
// the pipeline. The caller owns the returned pipeline and must Close it.
func buildPipeline(ctx context.Context, cfg *config.Config) (*pipeline.Pipeline, error) {
	det, err := onnx.NewDetectionSession(onnx.SessionConfig{
		ModelPath:  cfg.Models.DetectionPath,
		NumThreads: cfg.Models.NumThreads,
	})
	if err != nil {
		return nil, err
	}

	rec, err := onnx.NewRecognitionSession(onnx.SessionConfig{
		ModelPath:  cfg.Models.RecognitionPath,
		NumThreads: cfg.Models.NumThreads,
	})
	if err != nil {
		_ = det.Close()
		return nil, err
	}

	charset, err := recognizer.LoadCharset(cfg.Models.DictionaryPath)
	if err != nil {
		_ = det.Close()
		_ = rec.Close()
		return nil, fmt.Errorf("loading dictionary: %w", err)
	}

	pl, err := pipeline.NewBuilder().
		WithConfig(cfg.PipelineConfig()).
		WithDetectionModel(det).
		WithRecognitionModel(rec).
		WithCharset(charset).
		Build()
	if err != nil {
		_ = det.Close()
		_ = rec.Close()
		return nil, err
	}

	if cfg.Models.Warmup {
		if err := det.Warmup(ctx); err != nil {
			_ = pl.Close()
			return nil, err
		}
		if err := rec.Warmup(ctx); err != nil {
			_ = pl.Close()
			return nil, err
		}
	}
	return pl, nil
}
