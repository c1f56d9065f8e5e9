// File: timer.go
// Title: Performance Timer
// Description: Measures the duration of an operation and logs it on Stop.
//              The duration is carried on the entry itself so every
//              formatter can render it.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with performance timing
// - 2026-10-18 v0.2.0: Duration on the entry, single stop

package log

import (
	"time"
)

// Timer represents a performance timer for measuring operation duration
type Timer struct {
	logger    *Logger
	operation string
	startTime time.Time
	fields    Fields
	level     Level
	stopped   bool
}

// NewTimer creates a new timer for the given operation
func NewTimer(logger *Logger, operation string) *Timer {
	return &Timer{
		logger:    logger,
		operation: operation,
		startTime: time.Now(),
		fields:    make(Fields),
		level:     LevelDebug,
	}
}

// WithLevel sets the log level for the completion message
func (t *Timer) WithLevel(level Level) *Timer {
	t.level = level
	return t
}

// WithField adds a field to be logged when the timer completes
func (t *Timer) WithField(key string, value interface{}) *Timer {
	t.fields[key] = value
	return t
}

// WithFields adds multiple fields to be logged when the timer completes
func (t *Timer) WithFields(fields Fields) *Timer {
	for k, v := range fields {
		t.fields[k] = v
	}
	return t
}

// Elapsed returns the elapsed time since the timer was started
func (t *Timer) Elapsed() time.Duration {
	return time.Since(t.startTime)
}

// Stop stops the timer and logs the elapsed time. Only the first call logs.
func (t *Timer) Stop() time.Duration {
	return t.stop(nil)
}

// StopWithError stops the timer and logs the failure at error level
func (t *Timer) StopWithError(err error) time.Duration {
	return t.stop(err)
}

func (t *Timer) stop(err error) time.Duration {
	if t.stopped {
		return 0
	}
	t.stopped = true

	elapsed := t.Elapsed()
	fields := t.fields.Clone()
	fields["operation"] = t.operation

	if err != nil {
		t.logger.write(LevelError, t.operation+" failed", err, elapsed, fields)
		return elapsed
	}

	t.logger.write(t.level, t.operation+" completed", nil, elapsed, fields)
	return elapsed
}
