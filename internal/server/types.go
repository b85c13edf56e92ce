package server

import (
	"context"
	"image"

	"github.com/MeKo-Tech/textspot/internal/pipeline"
)

// spotter is the pipeline surface the server needs.
type spotter interface {
	Detect(ctx context.Context, img image.Image) (*pipeline.Result, error)
	SetScoreThreshold(t float64) error
	ScoreThreshold() float64
	Close() error
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int
}

// Server holds the HTTP server state and dependencies. cfg is normalized by
// NewServer; handlers read it directly.
type Server struct {
	pipeline spotter
	cfg      Config
}

// HealthResponse is the /health payload.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// SpotResponse wraps a pipeline result for the JSON API.
type SpotResponse struct {
	Success bool             `json:"success"`
	Result  *pipeline.Result `json:"result,omitempty"`
	Error   string           `json:"error,omitempty"`
}

// ThresholdRequest carries a runtime threshold update.
type ThresholdRequest struct {
	Threshold float64 `json:"threshold"`
}

// ThresholdResponse reports the threshold now in effect.
type ThresholdResponse struct {
	Threshold float64 `json:"threshold"`
}

// NewServer creates a server around an already-built pipeline. The caller
// keeps ownership of the pipeline until Close.
func NewServer(pl spotter, cfg Config) *Server {
	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}
	if cfg.Port <= 0 {
		cfg.Port = 8080
	}
	if cfg.CORSOrigin == "" {
		cfg.CORSOrigin = "*"
	}
	if cfg.MaxUploadMB <= 0 {
		cfg.MaxUploadMB = 32
	}
	if cfg.TimeoutSec <= 0 {
		cfg.TimeoutSec = 60
	}
	return &Server{pipeline: pl, cfg: cfg}
}

// Close releases the pipeline.
func (s *Server) Close() error {
	if s.pipeline == nil {
		return nil
	}
	return s.pipeline.Close()
}
