// Package common holds small utilities shared across packages.
package common

import (
	"fmt"
	"log/slog"
	"time"
)

// Timer measures the elapsed time of a named stage.
type Timer struct {
	name    string
	start   time.Time
	elapsed time.Duration
}

// StartTimer begins timing a stage.
func StartTimer(name string) *Timer {
	return &Timer{name: name, start: time.Now()}
}

// Stop records and returns the elapsed duration. Subsequent calls return the
// recorded value without updating it.
func (t *Timer) Stop() time.Duration {
	if t.elapsed == 0 {
		t.elapsed = time.Since(t.start)
	}
	return t.elapsed
}

// Elapsed returns the recorded duration, or the running duration if the timer
// has not been stopped.
func (t *Timer) Elapsed() time.Duration {
	if t.elapsed != 0 {
		return t.elapsed
	}
	return time.Since(t.start)
}

// Name returns the stage name.
func (t *Timer) Name() string {
	return t.name
}

func (t *Timer) String() string {
	return fmt.Sprintf("%s: %v", t.name, t.Elapsed())
}

// LogStage times a stage and logs its duration at debug level when the
// returned func runs. Meant for deferred use.
func LogStage(name string, attrs ...any) func() {
	t := StartTimer(name)
	return func() {
		args := append([]any{"stage", name, "duration", t.Stop()}, attrs...)
		slog.Debug("stage complete", args...)
	}
}
