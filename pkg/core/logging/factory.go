// ============================================================================
// Ember - language front end
// ============================================================================
//
// Package:     logging
// Description: Factory functions for creating loggers from configuration
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package logging

import (
	"io"
	"os"

	"github.com/google/uuid"

	mdwlog "github.com/msto63/ember/foundation/core/log"
	"github.com/msto63/ember/pkg/core/config"
)

// LoggerConfig holds configuration for creating loggers
type LoggerConfig struct {
	// Logger name
	Name string

	// Log level (trace, debug, info, warn, error)
	Level string

	// Output format (json, text, console, logfmt; default: console)
	Format string

	// Output writer (default: stderr)
	Output io.Writer

	// Additional outputs besides Output
	AdditionalOutputs []io.Writer
}

// DefaultLoggerConfig returns a default configuration
func DefaultLoggerConfig(name string) LoggerConfig {
	return LoggerConfig{
		Name:   name,
		Level:  "info",
		Format: "console",
	}
}

// NewLogger creates a new Foundation logger. Unknown levels fall back to
// info, unknown formats to console.
func NewLogger(cfg LoggerConfig) *mdwlog.Logger {
	level := parseLevel(cfg.Level)

	var output io.Writer = os.Stderr
	if cfg.Output != nil {
		output = cfg.Output
	}

	if len(cfg.AdditionalOutputs) > 0 {
		writers := append([]io.Writer{output}, cfg.AdditionalOutputs...)
		output = io.MultiWriter(writers...)
	}

	format, err := mdwlog.ParseFormat(cfg.Format)
	if err != nil {
		format = mdwlog.FormatConsole
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   cfg.Name,
	})
}

// FromConfig creates the logger described by the [general] section.
// Non-empty overrides replace the configured level and format.
func FromConfig(general config.GeneralConfig, levelOverride, formatOverride string, output io.Writer) *mdwlog.Logger {
	cfg := DefaultLoggerConfig("ember")
	cfg.Output = output

	if general.LogLevel != "" {
		cfg.Level = general.LogLevel
	}
	if general.LogFormat != "" {
		cfg.Format = general.LogFormat
	}
	if levelOverride != "" {
		cfg.Level = levelOverride
	}
	if formatOverride != "" {
		cfg.Format = formatOverride
	}

	return NewLogger(cfg)
}

// NewRunID returns a fresh identifier for one command invocation
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID tags logger with a fresh run ID and returns the ID with it
func WithRunID(logger *mdwlog.Logger) (*mdwlog.Logger, string) {
	id := NewRunID()
	return logger.WithRunID(id), id
}

// parseLevel converts a string level to mdwlog.Level
func parseLevel(level string) mdwlog.Level {
	parsed, err := mdwlog.ParseLevel(level)
	if err != nil {
		return mdwlog.LevelInfo
	}
	return parsed
}
