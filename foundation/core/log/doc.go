// Package log provides structured logging for the Ember front end.
//
// Package: log
// Title: Ember Structured Logging
// Description: Structured logger with levels, persistent context fields,
//              run IDs and JSON, text, console and logfmt output. The engine,
//              journal, watcher and CLI all log through this package.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with structured logging and error integration
// - 2026-10-18 v0.2.0: Trimmed to synchronous output, run IDs, parse timers
//
// Usage:
//   import mdwlog "github.com/msto63/ember/foundation/core/log"
//
//   logger := mdwlog.New().
//     WithLevel(mdwlog.LevelDebug).
//     WithFormat(mdwlog.FormatConsole).
//     WithField("component", "ember-parser")
//
//   logger.Info("parsed file", mdwlog.Fields{"file": "main.em", "nodes": 12})
//
//   timer := logger.StartTimer("parse")
//   // ... parse
//   timer.Stop()
package log
