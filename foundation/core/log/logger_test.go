// File: logger_test.go
// Title: Logger Tests
// Description: Tests for level filtering, builders, formatters, error
//              logging and timers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Run ID, sorted fields and timer duration tests

package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	mdwerror "github.com/msto63/ember/foundation/core/error"
)

func newBufferLogger(level Level, format Format) (*Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return NewWithConfig(Config{Level: level, Format: format, Output: buf}), buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var result []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var m map[string]interface{}
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("invalid JSON line %q: %v", line, err)
		}
		result = append(result, m)
	}
	return result
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(LevelWarn, FormatJSON)

	logger.Debug("hidden")
	logger.Info("hidden")
	logger.Warn("shown")
	logger.Error("shown too")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if lines[0]["level"] != "warn" {
		t.Errorf("Expected warn, got %v", lines[0]["level"])
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"trace", LevelTrace, false},
		{"DEBUG", LevelDebug, false},
		{" info ", LevelInfo, false},
		{"warning", LevelWarn, false},
		{"err", LevelError, false},
		{"fatal", LevelFatal, false},
		{"loud", LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	for _, name := range []string{"json", "text", "console", "logfmt"} {
		f, err := ParseFormat(name)
		if err != nil {
			t.Errorf("ParseFormat(%q) error = %v", name, err)
		}
		if f.String() != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, f.String())
		}
	}

	if _, err := ParseFormat("xml"); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestBuildersDoNotMutateParent(t *testing.T) {
	parent, buf := newBufferLogger(LevelInfo, FormatJSON)
	child := parent.WithField("file", "a.em").WithRunID("run-1").WithName("lang")

	parent.Info("from parent")
	child.Info("from child")

	lines := decodeLines(t, buf)
	if len(lines) != 2 {
		t.Fatalf("Expected 2 lines, got %d", len(lines))
	}
	if _, ok := lines[0]["file"]; ok {
		t.Error("parent should not carry the child's field")
	}
	if lines[1]["file"] != "a.em" {
		t.Errorf("Expected file=a.em, got %v", lines[1]["file"])
	}
	if lines[1]["run_id"] != "run-1" {
		t.Errorf("Expected run_id=run-1, got %v", lines[1]["run_id"])
	}
	if lines[1]["logger"] != "lang" {
		t.Errorf("Expected logger=lang, got %v", lines[1]["logger"])
	}
	if child.RunID() != "run-1" || parent.RunID() != "" {
		t.Error("RunID() should only be set on the child")
	}
}

func TestTextFormatterSortsFields(t *testing.T) {
	f := &TextFormatter{DisableTimestamp: true}
	entry := NewEntry(LevelInfo, "parsed")
	entry.Fields = Fields{"b": 2, "a": 1, "c": "x"}

	out, err := f.Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "[INF] parsed [a=1 b=2 c=x]\n"
	if string(out) != want {
		t.Errorf("Format() = %q, want %q", out, want)
	}
}

func TestLogfmtFormatter(t *testing.T) {
	entry := NewEntry(LevelWarn, "parse failed")
	entry.Fields = Fields{"source": "a.em", "line": 3}
	entry.Error = errors.New("boom")

	out, err := NewLogfmtFormatter().Format(entry)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	s := string(out)
	for _, want := range []string{`level=warn`, `message="parse failed"`, `line=3 source="a.em"`, `error="boom"`} {
		if !strings.Contains(s, want) {
			t.Errorf("Expected %q in %q", want, s)
		}
	}
}

func TestConsoleFormatterColors(t *testing.T) {
	entry := NewEntry(LevelError, "x")

	colored, _ := NewConsoleFormatter().Format(entry)
	if !strings.HasPrefix(string(colored), "\033[") {
		t.Errorf("Expected ANSI prefix, got %q", colored)
	}

	plain := NewConsoleFormatter()
	plain.DisableColors = true
	out, _ := plain.Format(entry)
	if strings.Contains(string(out), "\033[") {
		t.Errorf("Expected no ANSI codes, got %q", out)
	}
}

func TestLogErrorUsesSeverity(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level string
	}{
		{"syntax", mdwerror.New("unexpected token").WithCode(mdwerror.CodeSyntax), "info"},
		{"unknown", mdwerror.New("odd"), "warn"},
		{"storage", mdwerror.New("disk").WithCode(mdwerror.CodeStorageError), "error"},
		{"plain", errors.New("plain"), "error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, buf := newBufferLogger(LevelTrace, FormatJSON)
			logger.LogError(tt.err)

			lines := decodeLines(t, buf)
			if len(lines) != 1 {
				t.Fatalf("Expected 1 line, got %d", len(lines))
			}
			if lines[0]["level"] != tt.level {
				t.Errorf("Expected level %s, got %v", tt.level, lines[0]["level"])
			}
		})
	}
}

func TestLogErrorIncludesDetails(t *testing.T) {
	logger, buf := newBufferLogger(LevelTrace, FormatJSON)
	logger.LogError(mdwerror.New("bad").WithCode(mdwerror.CodeSyntax).WithDetail("line", 4))

	lines := decodeLines(t, buf)
	if lines[0]["error_code"] != "SYNTAX" {
		t.Errorf("Expected error_code SYNTAX, got %v", lines[0]["error_code"])
	}
	if lines[0]["error_line"] != float64(4) {
		t.Errorf("Expected error_line 4, got %v", lines[0]["error_line"])
	}
	if _, ok := lines[0]["error_details"]; !ok {
		t.Error("Expected error_details from MarshalJSON")
	}
}

func TestTimer(t *testing.T) {
	logger, buf := newBufferLogger(LevelDebug, FormatJSON)

	timer := logger.StartTimer("parse").WithField("source", "a.em")
	time.Sleep(time.Millisecond)
	elapsed := timer.Stop()

	if elapsed <= 0 {
		t.Errorf("Expected positive duration, got %v", elapsed)
	}
	if timer.Stop() != 0 {
		t.Error("second Stop() should return 0")
	}

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0]["message"] != "parse completed" {
		t.Errorf("Expected 'parse completed', got %v", lines[0]["message"])
	}
	if _, ok := lines[0]["duration_ms"]; !ok {
		t.Error("Expected duration_ms field")
	}
	if lines[0]["operation"] != "parse" {
		t.Errorf("Expected operation=parse, got %v", lines[0]["operation"])
	}
}

func TestTimerStopWithError(t *testing.T) {
	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	logger.StartTimer("parse").StopWithError(errors.New("boom"))

	lines := decodeLines(t, buf)
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d", len(lines))
	}
	if lines[0]["level"] != "error" || lines[0]["error"] != "boom" {
		t.Errorf("unexpected entry: %v", lines[0])
	}
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	if logger.IsLevelEnabled(LevelFatal) {
		t.Error("Discard() logger should not enable any level")
	}
}

func TestDefaultLogger(t *testing.T) {
	original := GetDefault()
	defer SetDefault(original)

	logger, buf := newBufferLogger(LevelInfo, FormatJSON)
	SetDefault(logger)
	Info("via default")

	if !strings.Contains(buf.String(), "via default") {
		t.Errorf("Expected message from package-level Info, got %q", buf.String())
	}
}
