package config

import (
	"fmt"
	"runtime"

	"github.com/MeKo-Tech/textspot/internal/detector"
	"github.com/MeKo-Tech/textspot/internal/models"
	"github.com/MeKo-Tech/textspot/internal/pipeline"
	"github.com/MeKo-Tech/textspot/internal/rectify"
)

// Config is the complete configuration for the textspot application,
// loadable from a YAML file, environment variables and command-line flags.
type Config struct {
	LogLevel string `mapstructure:"log_level" yaml:"log_level" json:"log_level"`
	Verbose  bool   `mapstructure:"verbose" yaml:"verbose" json:"verbose"`

	Models    ModelsConfig   `mapstructure:"models" yaml:"models" json:"models"`
	Detection DetectionCfg   `mapstructure:"detection" yaml:"detection" json:"detection"`
	Strip     StripConfig    `mapstructure:"strip" yaml:"strip" json:"strip"`
	Spotting  SpottingConfig `mapstructure:"spotting" yaml:"spotting" json:"spotting"`
	Server    ServerConfig   `mapstructure:"server" yaml:"server" json:"server"`
}

// ModelsConfig locates the network files and the character dictionary.
type ModelsConfig struct {
	DetectionPath   string `mapstructure:"detection_path" yaml:"detection_path" json:"detection_path"`
	RecognitionPath string `mapstructure:"recognition_path" yaml:"recognition_path" json:"recognition_path"`
	DictionaryPath  string `mapstructure:"dictionary_path" yaml:"dictionary_path" json:"dictionary_path"`
	NumThreads      int    `mapstructure:"num_threads" yaml:"num_threads" json:"num_threads"`
	Warmup          bool   `mapstructure:"warmup" yaml:"warmup" json:"warmup"`
}

// DetectionCfg tunes the probability-map postprocessing.
type DetectionCfg struct {
	Threshold      float64 `mapstructure:"threshold" yaml:"threshold" json:"threshold"`
	BoxThreshold   float64 `mapstructure:"box_threshold" yaml:"box_threshold" json:"box_threshold"`
	MinPixels      int     `mapstructure:"min_pixels" yaml:"min_pixels" json:"min_pixels"`
	EnlargeRatio   float64 `mapstructure:"enlarge_ratio" yaml:"enlarge_ratio" json:"enlarge_ratio"`
	TargetLongSide int     `mapstructure:"target_long_side" yaml:"target_long_side" json:"target_long_side"`
}

// StripConfig tunes rectified strip geometry.
type StripConfig struct {
	TargetHeight int `mapstructure:"target_height" yaml:"target_height" json:"target_height"`
	MaxWidth     int `mapstructure:"max_width" yaml:"max_width" json:"max_width"`
	MinWidth     int `mapstructure:"min_width" yaml:"min_width" json:"min_width"`
	Margin       int `mapstructure:"margin" yaml:"margin" json:"margin"`
}

// SpottingConfig tunes end-to-end pipeline behavior.
type SpottingConfig struct {
	ScoreThreshold float64 `mapstructure:"score_threshold" yaml:"score_threshold" json:"score_threshold"`
	Workers        int     `mapstructure:"workers" yaml:"workers" json:"workers"`
	NormalizeText  bool    `mapstructure:"normalize_text" yaml:"normalize_text" json:"normalize_text"`
}

// ServerConfig holds HTTP server settings for the serve command.
type ServerConfig struct {
	Host           string `mapstructure:"host" yaml:"host" json:"host"`
	Port           int    `mapstructure:"port" yaml:"port" json:"port"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds" json:"timeout_seconds"`
	MaxUploadMB    int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb" json:"max_upload_mb"`
	EnableMetrics  bool   `mapstructure:"enable_metrics" yaml:"enable_metrics" json:"enable_metrics"`
}

// DefaultConfig returns the configuration with reference defaults applied.
func DefaultConfig() Config {
	det := detector.DefaultParams()
	strip := rectify.DefaultConfig()
	pipe := pipeline.DefaultConfig()
	return Config{
		LogLevel: "info",
		Models: ModelsConfig{
			DetectionPath:   models.DetectionPath(""),
			RecognitionPath: models.RecognitionPath(""),
			DictionaryPath:  models.DictionaryPath(""),
			NumThreads:      0,
			Warmup:          true,
		},
		Detection: DetectionCfg{
			Threshold:      det.Threshold,
			BoxThreshold:   det.BoxThreshold,
			MinPixels:      det.MinPixels,
			EnlargeRatio:   det.EnlargeRatio,
			TargetLongSide: pipe.TargetLongSide,
		},
		Strip: StripConfig{
			TargetHeight: strip.TargetHeight,
			MaxWidth:     strip.MaxWidth,
			MinWidth:     strip.MinWidth,
			Margin:       strip.Margin,
		},
		Spotting: SpottingConfig{
			ScoreThreshold: pipe.ScoreThreshold,
			Workers:        runtime.NumCPU(),
			NormalizeText:  true,
		},
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			TimeoutSeconds: 60,
			MaxUploadMB:    32,
			EnableMetrics:  true,
		},
	}
}

// Validate reports the first invalid setting found.
func (c *Config) Validate() error {
	if c.Detection.Threshold <= 0 || c.Detection.Threshold >= 1 {
		return fmt.Errorf("detection.threshold must be in (0,1), got %v", c.Detection.Threshold)
	}
	if c.Detection.BoxThreshold < 0 || c.Detection.BoxThreshold > 1 {
		return fmt.Errorf("detection.box_threshold must be in [0,1], got %v", c.Detection.BoxThreshold)
	}
	if c.Detection.MinPixels < 1 {
		return fmt.Errorf("detection.min_pixels must be >= 1, got %d", c.Detection.MinPixels)
	}
	if c.Detection.EnlargeRatio < 1 {
		return fmt.Errorf("detection.enlarge_ratio must be >= 1, got %v", c.Detection.EnlargeRatio)
	}
	if c.Strip.TargetHeight < 8 {
		return fmt.Errorf("strip.target_height must be >= 8, got %d", c.Strip.TargetHeight)
	}
	if c.Strip.MinWidth < 1 || c.Strip.MaxWidth < c.Strip.MinWidth {
		return fmt.Errorf("strip width bounds invalid: min=%d max=%d", c.Strip.MinWidth, c.Strip.MaxWidth)
	}
	if c.Spotting.ScoreThreshold < 0 || c.Spotting.ScoreThreshold > 1 {
		return fmt.Errorf("spotting.score_threshold must be in [0,1], got %v", c.Spotting.ScoreThreshold)
	}
	if c.Spotting.Workers < 0 {
		return fmt.Errorf("spotting.workers must be >= 0, got %d", c.Spotting.Workers)
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1,65535], got %d", c.Server.Port)
	}
	if c.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be >= 1, got %d", c.Server.MaxUploadMB)
	}
	return nil
}

// PipelineConfig translates the flat application settings into the
// pipeline's component configuration.
func (c *Config) PipelineConfig() pipeline.Config {
	pc := pipeline.DefaultConfig()
	pc.Detector.Threshold = c.Detection.Threshold
	pc.Detector.BoxThreshold = c.Detection.BoxThreshold
	pc.Detector.MinPixels = c.Detection.MinPixels
	pc.Detector.EnlargeRatio = c.Detection.EnlargeRatio
	pc.TargetLongSide = c.Detection.TargetLongSide
	pc.Rectify.TargetHeight = c.Strip.TargetHeight
	pc.Rectify.MaxWidth = c.Strip.MaxWidth
	pc.Rectify.MinWidth = c.Strip.MinWidth
	pc.Rectify.Margin = c.Strip.Margin
	pc.ScoreThreshold = c.Spotting.ScoreThreshold
	pc.Workers = c.Spotting.Workers
	if !c.Spotting.NormalizeText {
		pc.Clean.NormalizeForm = ""
	}
	return pc
}
