package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const (
	// ConfigFileName is the base name for configuration files (without extension).
	ConfigFileName = "textspot"

	// EnvPrefix is the prefix for environment variables.
	EnvPrefix = "TEXTSPOT"
)

// Loader loads configuration from files, environment and defaults.
type Loader struct {
	v *viper.Viper
}

// NewLoader creates a loader on the global viper instance so cobra flag
// bindings are visible.
func NewLoader() *Loader {
	return &Loader{v: viper.GetViper()}
}

// Load reads configuration from the standard search paths, environment
// variables and defaults, then validates.
func (l *Loader) Load() (*Config, error) {
	l.v.SetConfigName(ConfigFileName)
	l.v.SetConfigType("yaml")
	l.addConfigPaths()
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// No config file is fine, defaults and env vars apply.
	}
	return l.unmarshal()
}

// LoadWithFile reads configuration from an explicit file path. An empty
// path falls back to the standard search.
func (l *Loader) LoadWithFile(configFile string) (*Config, error) {
	if configFile == "" {
		return l.Load()
	}
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exist: %s", configFile)
	}
	l.v.SetConfigFile(configFile)
	l.setupEnvironment()
	l.setDefaults()

	if err := l.v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", configFile, err)
	}
	return l.unmarshal()
}

func (l *Loader) unmarshal() (*Config, error) {
	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path of the config file actually read.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) addConfigPaths() {
	l.v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(home)
	}
	l.v.AddConfigPath("/etc/textspot")
	if configDir, exists := os.LookupEnv("XDG_CONFIG_HOME"); exists {
		l.v.AddConfigPath(filepath.Join(configDir, "textspot"))
	} else if home, err := os.UserHomeDir(); err == nil {
		l.v.AddConfigPath(filepath.Join(home, ".config", "textspot"))
	}
}

func (l *Loader) setupEnvironment() {
	l.v.SetEnvPrefix(EnvPrefix)
	l.v.AutomaticEnv()
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
}

func (l *Loader) setDefaults() {
	d := DefaultConfig()

	l.v.SetDefault("log_level", d.LogLevel)
	l.v.SetDefault("verbose", d.Verbose)

	l.v.SetDefault("models.detection_path", d.Models.DetectionPath)
	l.v.SetDefault("models.recognition_path", d.Models.RecognitionPath)
	l.v.SetDefault("models.dictionary_path", d.Models.DictionaryPath)
	l.v.SetDefault("models.num_threads", d.Models.NumThreads)
	l.v.SetDefault("models.warmup", d.Models.Warmup)

	l.v.SetDefault("detection.threshold", d.Detection.Threshold)
	l.v.SetDefault("detection.box_threshold", d.Detection.BoxThreshold)
	l.v.SetDefault("detection.min_pixels", d.Detection.MinPixels)
	l.v.SetDefault("detection.enlarge_ratio", d.Detection.EnlargeRatio)
	l.v.SetDefault("detection.target_long_side", d.Detection.TargetLongSide)

	l.v.SetDefault("strip.target_height", d.Strip.TargetHeight)
	l.v.SetDefault("strip.max_width", d.Strip.MaxWidth)
	l.v.SetDefault("strip.min_width", d.Strip.MinWidth)
	l.v.SetDefault("strip.margin", d.Strip.Margin)

	l.v.SetDefault("spotting.score_threshold", d.Spotting.ScoreThreshold)
	l.v.SetDefault("spotting.workers", d.Spotting.Workers)
	l.v.SetDefault("spotting.normalize_text", d.Spotting.NormalizeText)

	l.v.SetDefault("server.host", d.Server.Host)
	l.v.SetDefault("server.port", d.Server.Port)
	l.v.SetDefault("server.timeout_seconds", d.Server.TimeoutSeconds)
	l.v.SetDefault("server.max_upload_mb", d.Server.MaxUploadMB)
	l.v.SetDefault("server.enable_metrics", d.Server.EnableMetrics)
}

// WriteDefault writes the default configuration as YAML to the given path,
// refusing to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("refusing to overwrite existing file %s", path)
	}
	d := DefaultConfig()
	data, err := yaml.Marshal(&d)
	if err != nil {
		return fmt.Errorf("marshaling default config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
