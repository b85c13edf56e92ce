package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MeKo-Tech/textspot/internal/detector"
	"github.com/MeKo-Tech/textspot/internal/geometry"
	"github.com/MeKo-Tech/textspot/internal/recognizer"
	"github.com/MeKo-Tech/textspot/internal/rectify"
)

// ErrModelOutput marks a network returning output inconsistent with its
// declared shape. This is a contract violation of the external collaborator,
// surfaced as a hard failure so callers can tell it apart from "no text
// found".
var ErrModelOutput = errors.New("model output shape mismatch")

// ProbabilityMap is the detection network's per-pixel text-likelihood
// surface.
type ProbabilityMap struct {
	Data   []float32
	Width  int
	Height int
}

// ScoreMatrix is the recognition network's per-timestep class-probability
// output: Steps rows of Classes columns, row-major, class 0 the blank.
type ScoreMatrix struct {
	Data    []float32
	Steps   int
	Classes int
}

// DetectionModel is the black-box detection network boundary: a
// preprocessed NCHW planar image in, a probability surface out.
type DetectionModel interface {
	Infer(ctx context.Context, input geometry.Planar) (ProbabilityMap, error)
	Close() error
}

// RecognitionModel is the black-box recognition network boundary: a
// normalized canonical strip in, a score matrix out.
type RecognitionModel interface {
	Infer(ctx context.Context, strip geometry.Planar) (ScoreMatrix, error)
	Close() error
}

// Config holds configuration for the spotting pipeline and its components.
type Config struct {
	Detector detector.Params
	Rectify  rectify.Config

	// ScoreThreshold is the runtime-settable acceptance threshold applied
	// to the final region confidence.
	ScoreThreshold float64

	// TargetLongSide bounds the longer image side before detection.
	TargetLongSide int
	// PadStride is the multiple the detection input is padded to.
	PadStride int
	// PadFill is the gray fill value for padded borders.
	PadFill uint8

	// Workers sets per-region parallelism; values <= 1 run sequentially.
	// Output order is discovery order either way.
	Workers int

	Clean recognizer.CleanOptions
}

// DefaultConfig returns the reference pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Detector:       detector.DefaultParams(),
		Rectify:        rectify.DefaultConfig(),
		ScoreThreshold: 0.5,
		TargetLongSide: 960,
		PadStride:      32,
		PadFill:        114,
		Workers:        1,
		Clean:          recognizer.DefaultCleanOptions(),
	}
}

// Pipeline wires the detection network, region extractor, rectifier,
// recognition network and decoder into one detect call.
type Pipeline struct {
	cfg     Config
	det     DetectionModel
	rec     RecognitionModel
	charset *recognizer.Charset

	mu        sync.RWMutex
	threshold float64
}

// Builder constructs a Pipeline with fluent configuration.
type Builder struct {
	cfg     Config
	det     DetectionModel
	rec     RecognitionModel
	charset *recognizer.Charset
}

// NewBuilder creates a pipeline builder with defaults.
func NewBuilder() *Builder { return &Builder{cfg: DefaultConfig()} }

// WithConfig replaces the whole configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.cfg = cfg
	return b
}

// WithDetectionModel sets the detection network implementation.
func (b *Builder) WithDetectionModel(m DetectionModel) *Builder {
	b.det = m
	return b
}

// WithRecognitionModel sets the recognition network implementation.
func (b *Builder) WithRecognitionModel(m RecognitionModel) *Builder {
	b.rec = m
	return b
}

// WithCharset sets the character dictionary used at text assembly.
func (b *Builder) WithCharset(cs *recognizer.Charset) *Builder {
	b.charset = cs
	return b
}

// WithScoreThreshold sets the initial acceptance threshold.
func (b *Builder) WithScoreThreshold(t float64) *Builder {
	if t >= 0 && t <= 1 {
		b.cfg.ScoreThreshold = t
	}
	return b
}

// WithWorkers sets per-region parallelism.
func (b *Builder) WithWorkers(n int) *Builder {
	if n > 0 {
		b.cfg.Workers = n
	}
	return b
}

// Build validates the wiring and returns the pipeline.
func (b *Builder) Build() (*Pipeline, error) {
	if b.det == nil {
		return nil, errors.New("detection model is required")
	}
	if b.rec == nil {
		return nil, errors.New("recognition model is required")
	}
	if b.charset == nil || b.charset.Size() == 0 {
		return nil, errors.New("character dictionary is required")
	}
	if b.cfg.ScoreThreshold < 0 || b.cfg.ScoreThreshold > 1 {
		return nil, errors.New("score threshold must be in [0,1]")
	}
	return &Pipeline{
		cfg:       b.cfg,
		det:       b.det,
		rec:       b.rec,
		charset:   b.charset,
		threshold: b.cfg.ScoreThreshold,
	}, nil
}

// SetScoreThreshold updates the acceptance threshold at runtime. Regions
// already being processed are unaffected; the threshold applies at the
// final filter of each Detect call.
func (p *Pipeline) SetScoreThreshold(t float64) error {
	if t < 0 || t > 1 {
		return fmt.Errorf("score threshold must be in [0,1], got %v", t)
	}
	p.mu.Lock()
	p.threshold = t
	p.mu.Unlock()
	return nil
}

// ScoreThreshold returns the current acceptance threshold.
func (p *Pipeline) ScoreThreshold() float64 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.threshold
}

// Config returns the pipeline configuration.
func (p *Pipeline) Config() Config { return p.cfg }

// Close releases both model sessions.
func (p *Pipeline) Close() error {
	var firstErr error
	if p.rec != nil {
		if err := p.rec.Close(); err != nil {
			firstErr = err
		}
		p.rec = nil
	}
	if p.det != nil {
		if err := p.det.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		p.det = nil
	}
	return firstErr
}
