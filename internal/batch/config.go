// Package batch runs text spotting over many image files at once.
package batch

import (
	"fmt"
	"runtime"
)

// Config controls file discovery and processing of a batch run.
type Config struct {
	// Recursive descends into subdirectories of directory arguments.
	Recursive bool
	// IncludePatterns keeps only files whose base name matches at least one
	// glob pattern. Empty means include everything.
	IncludePatterns []string
	// ExcludePatterns drops files whose base name matches any glob pattern.
	ExcludePatterns []string
	// Workers is the number of files processed concurrently.
	Workers int
	// ContinueOnError records per-file failures instead of aborting the run.
	ContinueOnError bool
}

// DefaultConfig returns batch settings suited to interactive CLI use.
func DefaultConfig() Config {
	return Config{
		Workers:         runtime.NumCPU(),
		ContinueOnError: true,
	}
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be >= 1, got %d", c.Workers)
	}
	return nil
}
