// File: logger.go
// Title: Core Logger Implementation
// Description: Implements the Logger type: immutable With* builders, level
//              filtering, formatter and writer selection, and integration with
//              the Ember error type for severity-aware error logging.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging
// - 2026-10-18 v0.2.0: Synchronous writes only, run IDs, Discard logger

package log

import (
	"io"
	"os"
	"sync"
	"time"

	mdwerror "github.com/msto63/ember/foundation/core/error"
)

// Logger represents a structured logger with contextual information
type Logger struct {
	level     Level
	formatter Formatter
	output    io.Writer
	name      string

	contextFields Fields
	runID         string

	// guards output; clones share it with their parent
	writeMu *sync.Mutex
}

// Config represents logger configuration
type Config struct {
	Level  Level
	Format Format
	Output io.Writer
	Name   string
}

// New creates a new logger writing JSON to stderr at the default level
func New() *Logger {
	return &Logger{
		level:         DefaultLevel(),
		formatter:     NewJSONFormatter(),
		output:        os.Stderr,
		contextFields: make(Fields),
		writeMu:       &sync.Mutex{},
	}
}

// NewWithConfig creates a new logger with the specified configuration
func NewWithConfig(config Config) *Logger {
	logger := &Logger{
		level:         config.Level,
		formatter:     GetFormatter(config.Format),
		output:        config.Output,
		name:          config.Name,
		contextFields: make(Fields),
		writeMu:       &sync.Mutex{},
	}

	if logger.output == nil {
		logger.output = os.Stderr
	}

	return logger
}

// Discard returns a logger that drops every entry
func Discard() *Logger {
	return NewWithConfig(Config{Level: LevelFatal + 1, Output: io.Discard})
}

// WithLevel returns a copy with the given minimum level
func (l *Logger) WithLevel(level Level) *Logger {
	clone := l.clone()
	clone.level = level
	return clone
}

// WithFormat returns a copy with the given output format
func (l *Logger) WithFormat(format Format) *Logger {
	clone := l.clone()
	clone.formatter = GetFormatter(format)
	return clone
}

// WithOutput returns a copy writing to output
func (l *Logger) WithOutput(output io.Writer) *Logger {
	clone := l.clone()
	clone.output = output
	clone.writeMu = &sync.Mutex{}
	return clone
}

// WithName returns a copy with the given logger name
func (l *Logger) WithName(name string) *Logger {
	clone := l.clone()
	clone.name = name
	return clone
}

// WithField returns a copy that adds a persistent field to all entries
func (l *Logger) WithField(key string, value interface{}) *Logger {
	clone := l.clone()
	clone.contextFields[key] = value
	return clone
}

// WithFields returns a copy that adds persistent fields to all entries
func (l *Logger) WithFields(fields Fields) *Logger {
	clone := l.clone()
	for k, v := range fields {
		clone.contextFields[k] = v
	}
	return clone
}

// WithRunID returns a copy tagging entries with a run ID
func (l *Logger) WithRunID(runID string) *Logger {
	clone := l.clone()
	clone.runID = runID
	return clone
}

// RunID returns the run ID of this logger, if any
func (l *Logger) RunID() string {
	return l.runID
}

// Trace logs a trace level message
func (l *Logger) Trace(message string, fields ...Fields) {
	l.log(LevelTrace, message, nil, fields...)
}

// Debug logs a debug level message
func (l *Logger) Debug(message string, fields ...Fields) {
	l.log(LevelDebug, message, nil, fields...)
}

// Info logs an info level message
func (l *Logger) Info(message string, fields ...Fields) {
	l.log(LevelInfo, message, nil, fields...)
}

// Warn logs a warning level message
func (l *Logger) Warn(message string, fields ...Fields) {
	l.log(LevelWarn, message, nil, fields...)
}

// Error logs an error level message
func (l *Logger) Error(message string, fields ...Fields) {
	l.log(LevelError, message, nil, fields...)
}

// Fatal logs a fatal level message and exits the program
func (l *Logger) Fatal(message string, fields ...Fields) {
	l.log(LevelFatal, message, nil, fields...)
	os.Exit(1)
}

// ErrorWithErr logs an error with an error object
func (l *Logger) ErrorWithErr(message string, err error, fields ...Fields) {
	l.log(LevelError, message, err, fields...)
}

// WarnWithErr logs a warning with an error object
func (l *Logger) WarnWithErr(message string, err error, fields ...Fields) {
	l.log(LevelWarn, message, err, fields...)
}

// LogError logs err at a level derived from its severity
func (l *Logger) LogError(err error) {
	if err == nil {
		return
	}

	mdwErr, ok := mdwerror.As(err)
	if !ok {
		l.log(LevelError, err.Error(), err)
		return
	}

	fields := Fields{
		"error_code":     mdwErr.Code(),
		"error_severity": mdwErr.Severity().String(),
	}
	if op := mdwErr.Operation(); op != "" {
		fields["error_operation"] = op
	}
	for k, v := range mdwErr.Details() {
		fields["error_"+k] = v
	}

	switch mdwErr.Severity() {
	case mdwerror.SeverityLow:
		l.log(LevelInfo, mdwErr.Message(), err, fields)
	case mdwerror.SeverityMedium:
		l.log(LevelWarn, mdwErr.Message(), err, fields)
	default:
		l.log(LevelError, mdwErr.Message(), err, fields)
	}
}

// StartTimer creates and starts a new performance timer
func (l *Logger) StartTimer(operation string) *Timer {
	return NewTimer(l, operation)
}

// IsLevelEnabled returns true if the given level is enabled
func (l *Logger) IsLevelEnabled(level Level) bool {
	return level.ShouldLog(l.level)
}

// GetLevel returns the current log level
func (l *Logger) GetLevel() Level {
	return l.level
}

func (l *Logger) log(level Level, message string, err error, fields ...Fields) {
	l.write(level, message, err, 0, fields...)
}

func (l *Logger) write(level Level, message string, err error, duration time.Duration, fields ...Fields) {
	if !level.ShouldLog(l.level) {
		return
	}

	entry := NewEntry(level, message)
	entry.Logger = l.name
	entry.RunID = l.runID
	entry.Error = err
	entry.Duration = duration

	for k, v := range l.contextFields {
		entry.Fields[k] = v
	}
	for _, fieldSet := range fields {
		for k, v := range fieldSet {
			entry.Fields[k] = v
		}
	}

	formatted, formatErr := l.formatter.Format(entry)
	if formatErr != nil {
		return
	}

	l.writeMu.Lock()
	l.output.Write(formatted)
	l.writeMu.Unlock()
}

func (l *Logger) clone() *Logger {
	clone := &Logger{
		level:         l.level,
		formatter:     l.formatter,
		output:        l.output,
		name:          l.name,
		runID:         l.runID,
		contextFields: make(Fields, len(l.contextFields)),
		writeMu:       l.writeMu,
	}

	for k, v := range l.contextFields {
		clone.contextFields[k] = v
	}

	return clone
}

var (
	defaultLogger   = New()
	defaultLoggerMu sync.RWMutex
)

// GetDefault returns the default logger instance
func GetDefault() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// SetDefault sets the default logger instance
func SetDefault(logger *Logger) {
	defaultLoggerMu.Lock()
	defer defaultLoggerMu.Unlock()
	defaultLogger = logger
}

// Debug logs a debug message using the default logger
func Debug(message string, fields ...Fields) {
	GetDefault().Debug(message, fields...)
}

// Info logs an info message using the default logger
func Info(message string, fields ...Fields) {
	GetDefault().Info(message, fields...)
}

// Warn logs a warning message using the default logger
func Warn(message string, fields ...Fields) {
	GetDefault().Warn(message, fields...)
}

// Error logs an error message using the default logger
func Error(message string, fields ...Fields) {
	GetDefault().Error(message, fields...)
}
