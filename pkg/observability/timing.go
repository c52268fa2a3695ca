package observability

import (
	"log/slog"
	"time"
)

// Timer tracks the duration of an operation and logs it on stop.
type Timer struct {
	operation string
	start     time.Time
	logger    *slog.Logger
}

// StartTimer creates a new timer for the given operation.
func StartTimer(operation string) *Timer {
	return &Timer{
		operation: operation,
		start:     time.Now(),
	}
}

// WithLogger adds a logger to the timer for automatic logging on stop.
func (t *Timer) WithLogger(logger *slog.Logger) *Timer {
	t.logger = logger
	return t
}

// Stop ends the timer and returns the elapsed duration.
func (t *Timer) Stop() time.Duration {
	elapsed := time.Since(t.start)
	if t.logger != nil {
		t.logger.Debug("operation completed",
			"operation", t.operation,
			"duration_ms", elapsed.Milliseconds(),
		)
	}
	return elapsed
}
