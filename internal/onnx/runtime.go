package onnx

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	onnxrt "github.com/yalue/onnxruntime_go"
)

// EnsureInitialized locates the ONNX Runtime shared library and initializes
// the environment exactly once. Safe to call from every session constructor.
func EnsureInitialized() error {
	if onnxrt.IsInitialized() {
		return nil
	}
	if err := setLibraryPath(); err != nil {
		return err
	}
	if err := onnxrt.InitializeEnvironment(); err != nil {
		return fmt.Errorf("initializing onnxruntime: %w", err)
	}
	return nil
}

// setLibraryPath prefers an explicit override, then system install
// locations, then a project-local onnxruntime/lib directory.
func setLibraryPath() error {
	if path := os.Getenv("ONNXRUNTIME_LIB_PATH"); path != "" {
		onnxrt.SetSharedLibraryPath(path)
		return nil
	}
	if path := findSystemLibrary(); path != "" {
		onnxrt.SetSharedLibraryPath(path)
		return nil
	}
	path, err := findProjectLibrary()
	if err != nil {
		return err
	}
	onnxrt.SetSharedLibraryPath(path)
	return nil
}

func findSystemLibrary() string {
	if runtime.GOOS != "linux" {
		return ""
	}
	systemPaths := []string{
		"/usr/local/lib/libonnxruntime.so",
		"/usr/lib/libonnxruntime.so",
		"/opt/onnxruntime/cpu/lib/libonnxruntime.so",
	}
	for _, path := range systemPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func findProjectLibrary() (string, error) {
	root, err := findProjectRoot()
	if err != nil {
		return "", err
	}
	libName, err := libraryName()
	if err != nil {
		return "", err
	}
	libPath := filepath.Join(root, "onnxruntime", "lib", libName)
	if _, err := os.Stat(libPath); err != nil {
		return "", fmt.Errorf("ONNX Runtime library not found at %s", libPath)
	}
	return libPath, nil
}

func findProjectRoot() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	root := cwd
	for {
		if _, err := os.Stat(filepath.Join(root, "go.mod")); err == nil {
			return root, nil
		}
		parent := filepath.Dir(root)
		if parent == root {
			return "", errors.New("could not find project root")
		}
		root = parent
	}
}

func libraryName() (string, error) {
	switch runtime.GOOS {
	case "linux":
		return "libonnxruntime.so", nil
	case "darwin":
		return "libonnxruntime.dylib", nil
	case "windows":
		return "onnxruntime.dll", nil
	default:
		return "", fmt.Errorf("unsupported OS: %s", runtime.GOOS)
	}
}
