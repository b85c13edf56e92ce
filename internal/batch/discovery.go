package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/MeKo-Tech/textspot/internal/utils"
)

// Discover expands the given paths into a sorted list of image files.
// Directory arguments are scanned, descending into subdirectories when
// cfg.Recursive is set. Explicit file arguments must be supported images.
func Discover(args []string, cfg Config) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", arg, err)
		}
		if info.IsDir() {
			found, err := scanDirectory(arg, cfg)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
			continue
		}
		if !utils.IsSupportedImage(arg) {
			return nil, fmt.Errorf("unsupported image file: %s", arg)
		}
		if includeFile(arg, cfg) {
			files = append(files, arg)
		}
	}
	sort.Strings(files)
	return files, nil
}

func scanDirectory(dir string, cfg Config) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if !cfg.Recursive && path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if utils.IsSupportedImage(path) && includeFile(path, cfg) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return files, nil
}

// includeFile applies exclude patterns first, then include patterns. Patterns
// match against the base name with filepath.Match semantics.
func includeFile(path string, cfg Config) bool {
	base := filepath.Base(path)
	if matchesAny(base, cfg.ExcludePatterns) {
		return false
	}
	if len(cfg.IncludePatterns) == 0 {
		return true
	}
	return matchesAny(base, cfg.IncludePatterns)
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, err := filepath.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}
