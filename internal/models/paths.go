// Package models resolves the on-disk locations of the network files and
// the character dictionary.
package models

import (
	"os"
	"path/filepath"
)

// Default file names inside the models directory.
const (
	DetectionFile   = "detection.onnx"
	RecognitionFile = "recognition.onnx"
	DictionaryFile  = "dictionary.txt"
)

// DefaultDir is the models directory relative to the project root.
const DefaultDir = "models"

// EnvDir overrides the models directory when set.
const EnvDir = "TEXTSPOT_MODELS_DIR"

// Dir resolves the models directory. Priority: explicit argument, EnvDir,
// project root joined with DefaultDir, then DefaultDir as a relative path.
func Dir(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(EnvDir); env != "" {
		return env
	}
	if root, err := projectRoot(); err == nil {
		return filepath.Join(root, DefaultDir)
	}
	return DefaultDir
}

// DetectionPath returns the detection model path under the resolved directory.
func DetectionPath(dir string) string {
	return filepath.Join(Dir(dir), DetectionFile)
}

// RecognitionPath returns the recognition model path under the resolved
// directory.
func RecognitionPath(dir string) string {
	return filepath.Join(Dir(dir), RecognitionFile)
}

// DictionaryPath returns the dictionary path under the resolved directory.
func DictionaryPath(dir string) string {
	return filepath.Join(Dir(dir), DictionaryFile)
}

// projectRoot walks up from the working directory until it finds go.mod.
func projectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
