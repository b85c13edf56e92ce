package onnx

import (
	"errors"
	"fmt"
	"os"
	"sync"

	onnxrt "github.com/yalue/onnxruntime_go"
)

// SessionConfig holds the options shared by detection and recognition
// sessions.
type SessionConfig struct {
	ModelPath  string
	NumThreads int // 0 leaves the runtime default
}

// session wraps a dynamic-shape ONNX session with its declared IO.
type session struct {
	inner      *onnxrt.DynamicAdvancedSession
	inputName  string
	outputName string
	mu         sync.Mutex
}

// newSession validates the model file, initializes the runtime and builds a
// single-input single-output dynamic session.
func newSession(cfg SessionConfig) (*session, error) {
	if cfg.ModelPath == "" {
		return nil, errors.New("model path is empty")
	}
	if info, err := os.Stat(cfg.ModelPath); err != nil {
		return nil, fmt.Errorf("model file: %w", err)
	} else if info.IsDir() {
		return nil, fmt.Errorf("model path %s is a directory", cfg.ModelPath)
	}

	if err := EnsureInitialized(); err != nil {
		return nil, err
	}

	inputs, outputs, err := onnxrt.GetInputOutputInfo(cfg.ModelPath)
	if err != nil {
		return nil, fmt.Errorf("reading model io info: %w", err)
	}
	if len(inputs) != 1 || len(outputs) != 1 {
		return nil, fmt.Errorf("unexpected model io (in:%d out:%d)", len(inputs), len(outputs))
	}

	opts, err := onnxrt.NewSessionOptions()
	if err != nil {
		return nil, fmt.Errorf("session options: %w", err)
	}
	defer func() { _ = opts.Destroy() }()

	if cfg.NumThreads > 0 {
		if err := opts.SetIntraOpNumThreads(cfg.NumThreads); err != nil {
			return nil, fmt.Errorf("setting thread count: %w", err)
		}
	}

	inner, err := onnxrt.NewDynamicAdvancedSession(cfg.ModelPath,
		[]string{inputs[0].Name}, []string{outputs[0].Name}, opts)
	if err != nil {
		return nil, fmt.Errorf("creating session: %w", err)
	}

	return &session{inner: inner, inputName: inputs[0].Name, outputName: outputs[0].Name}, nil
}

// run executes the session for one float32 tensor and returns the output
// tensor's data and shape. The session is single-flight; concurrent callers
// serialize here.
func (s *session) run(t Tensor) ([]float32, []int64, error) {
	input, err := onnxrt.NewTensor(onnxrt.NewShape(t.Shape...), t.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("creating input tensor: %w", err)
	}
	defer func() { _ = input.Destroy() }()

	s.mu.Lock()
	outputs := []onnxrt.Value{nil}
	err = s.inner.Run([]onnxrt.Value{input}, outputs)
	s.mu.Unlock()
	if err != nil {
		return nil, nil, fmt.Errorf("running session: %w", err)
	}
	defer func() { _ = outputs[0].Destroy() }()

	out, ok := outputs[0].(*onnxrt.Tensor[float32])
	if !ok {
		return nil, nil, errors.New("model output is not a float32 tensor")
	}
	data := make([]float32, len(out.GetData()))
	copy(data, out.GetData())
	shape := append([]int64(nil), out.GetShape()...)
	return data, shape, nil
}

// close destroys the underlying session. Idempotent.
func (s *session) close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inner == nil {
		return nil
	}
	err := s.inner.Destroy()
	s.inner = nil
	return err
}
