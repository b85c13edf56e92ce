package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadWithFileMergesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	content := "spotting:\n  score_threshold: 0.7\nserver:\n  port: 9090\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := NewLoader().LoadWithFile(path)
	require.NoError(t, err)

	assert.InDelta(t, 0.7, cfg.Spotting.ScoreThreshold, 1e-9)
	assert.Equal(t, 9090, cfg.Server.Port)
	// Untouched keys keep their defaults.
	assert.Equal(t, DefaultConfig().Strip.TargetHeight, cfg.Strip.TargetHeight)
	assert.Equal(t, DefaultConfig().Detection.Threshold, cfg.Detection.Threshold)
}

func TestLoadWithFileMissing(t *testing.T) {
	_, err := NewLoader().LoadWithFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadWithFileInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	content := "server:\n  port: 99999\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	_, err := NewLoader().LoadWithFile(path)
	assert.ErrorContains(t, err, "validation failed")
}
