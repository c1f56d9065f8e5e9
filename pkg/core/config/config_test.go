package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwlog "github.com/msto63/ember/foundation/core/log"
	"github.com/msto63/ember/foundation/lang/parser"
)

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"complex", "1h30m", 90 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "invalid", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))

			if (err != nil) != tt.wantErr {
				t.Errorf("UnmarshalText() error = %v, wantErr %v", err, tt.wantErr)
				return
			}

			if !tt.wantErr && d.Duration != tt.expected {
				t.Errorf("UnmarshalText() = %v, want %v", d.Duration, tt.expected)
			}
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	d := Duration{300 * time.Millisecond}
	result, err := d.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() error = %v", err)
	}
	if string(result) != "300ms" {
		t.Errorf("MarshalText() = %v, want 300ms", string(result))
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.General.LogLevel != "info" {
		t.Errorf("General.LogLevel = %v, want info", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "console" {
		t.Errorf("General.LogFormat = %v, want console", cfg.General.LogFormat)
	}
	if cfg.Parser.MaxInputLength != 1<<20 {
		t.Errorf("Parser.MaxInputLength = %v, want %v", cfg.Parser.MaxInputLength, 1<<20)
	}
	if cfg.Parser.VarKeyword != "var" || cfg.Parser.FunctionKeyword != "function" {
		t.Errorf("Parser keywords = %v/%v, want var/function", cfg.Parser.VarKeyword, cfg.Parser.FunctionKeyword)
	}
	if cfg.Parser.ParamMode != "compat" {
		t.Errorf("Parser.ParamMode = %v, want compat", cfg.Parser.ParamMode)
	}
	if !cfg.Parser.RequireEOF {
		t.Error("Parser.RequireEOF = false, want true")
	}
	if cfg.Journal.Enabled {
		t.Error("Journal.Enabled = true, want false")
	}
	if cfg.Journal.Path != "./data/ember.db" {
		t.Errorf("Journal.Path = %v, want ./data/ember.db", cfg.Journal.Path)
	}
	if cfg.Journal.RetentionDays != 30 {
		t.Errorf("Journal.RetentionDays = %v, want 30", cfg.Journal.RetentionDays)
	}
	if cfg.Watch.Debounce.Duration != 300*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 300ms", cfg.Watch.Debounce.Duration)
	}
	if len(cfg.Watch.Extensions) != 1 || cfg.Watch.Extensions[0] != ".em" {
		t.Errorf("Watch.Extensions = %v, want [.em]", cfg.Watch.Extensions)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/path/ember.toml")
	if err == nil {
		t.Fatal("Load() expected error for non-existent file")
	}
	if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
		t.Errorf("Load() code = %v, want %v", mdwerror.GetCode(err), mdwerror.CodeNotFound)
	}
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoad_TOML(t *testing.T) {
	path := writeConfig(t, "ember.toml", `
[general]
log_level = "debug"
log_format = "json"

[parser]
max_input_length = 4096
var_keyword = "let"
function_keyword = "fn"
param_mode = "strict"
require_eof = false

[journal]
enabled = true
path = "/tmp/journal.db"
retention_days = 0

[watch]
debounce = "1s"
extensions = [".em", ".ember"]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "debug" {
		t.Errorf("General.LogLevel = %v, want debug", cfg.General.LogLevel)
	}
	if cfg.Parser.MaxInputLength != 4096 {
		t.Errorf("Parser.MaxInputLength = %v, want 4096", cfg.Parser.MaxInputLength)
	}
	if cfg.Parser.RequireEOF {
		t.Error("Parser.RequireEOF = true, want false")
	}
	if !cfg.Journal.Enabled || cfg.Journal.Path != "/tmp/journal.db" {
		t.Errorf("Journal = %+v, want enabled at /tmp/journal.db", cfg.Journal)
	}
	if cfg.Journal.RetentionDays != 0 || cfg.Retention() != 0 {
		t.Errorf("Journal.RetentionDays = %v, want 0", cfg.Journal.RetentionDays)
	}
	if cfg.Watch.Debounce.Duration != time.Second {
		t.Errorf("Watch.Debounce = %v, want 1s", cfg.Watch.Debounce.Duration)
	}
	if len(cfg.Watch.Extensions) != 2 {
		t.Errorf("Watch.Extensions = %v, want 2 entries", cfg.Watch.Extensions)
	}

	opts := cfg.EngineOptions(mdwlog.Discard())
	if opts.MaxInputLength != 4096 {
		t.Errorf("EngineOptions().MaxInputLength = %v, want 4096", opts.MaxInputLength)
	}
	if opts.Keywords.Var != "let" || opts.Keywords.Function != "fn" {
		t.Errorf("EngineOptions().Keywords = %+v, want let/fn", opts.Keywords)
	}
	if opts.Params != parser.ParamStrict {
		t.Errorf("EngineOptions().Params = %v, want strict", opts.Params)
	}
	if !opts.AllowTrailing {
		t.Error("EngineOptions().AllowTrailing = false, want true")
	}
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, "ember.yaml", `
general:
  log_level: warn
parser:
  param_mode: strict
watch:
  debounce: 50ms
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.General.LogLevel != "warn" {
		t.Errorf("General.LogLevel = %v, want warn", cfg.General.LogLevel)
	}
	if cfg.General.LogFormat != "console" {
		t.Errorf("General.LogFormat = %v, want console", cfg.General.LogFormat)
	}
	if cfg.Parser.ParamMode != "strict" {
		t.Errorf("Parser.ParamMode = %v, want strict", cfg.Parser.ParamMode)
	}
	if !cfg.Parser.RequireEOF {
		t.Error("Parser.RequireEOF = false, want default true")
	}
	if cfg.Watch.Debounce.Duration != 50*time.Millisecond {
		t.Errorf("Watch.Debounce = %v, want 50ms", cfg.Watch.Debounce.Duration)
	}
}

func TestLoad_EmptyYAML(t *testing.T) {
	cfg, err := Load(writeConfig(t, "empty.yml", ""))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Parser.MaxInputLength != 1<<20 {
		t.Errorf("Parser.MaxInputLength = %v, want default", cfg.Parser.MaxInputLength)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("EMBER_TEST_DATA", dir)

	cfg, err := Load(writeConfig(t, "ember.toml", "[journal]\npath = \"$EMBER_TEST_DATA/j.db\"\n"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Journal.Path != filepath.Join(dir, "j.db") {
		t.Errorf("Journal.Path = %v, want %v", cfg.Journal.Path, filepath.Join(dir, "j.db"))
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
		code    mdwerror.Code
	}{
		{"syntax", "a.toml", "[parser\n", mdwerror.CodeConfigError},
		{"unknown key", "b.toml", "[parser]\nkeyword = \"x\"\n", mdwerror.CodeInvalidConfig},
		{"unknown yaml key", "c.yaml", "parser:\n  keyword: x\n", mdwerror.CodeConfigError},
		{"log level", "d.toml", "[general]\nlog_level = \"loud\"\n", mdwerror.CodeInvalidConfig},
		{"log format", "e.toml", "[general]\nlog_format = \"xml\"\n", mdwerror.CodeInvalidConfig},
		{"param mode", "f.toml", "[parser]\nparam_mode = \"loose\"\n", mdwerror.CodeInvalidConfig},
		{"max input", "g.toml", "[parser]\nmax_input_length = -1\n", mdwerror.CodeInvalidConfig},
		{"same keywords", "h.toml", "[parser]\nvar_keyword = \"def\"\nfunction_keyword = \"def\"\n", mdwerror.CodeInvalidConfig},
		{"keyword not identifier", "i.toml", "[parser]\nvar_keyword = \"let it\"\n", mdwerror.CodeInvalidConfig},
		{"retention", "j.toml", "[journal]\nretention_days = -2\n", mdwerror.CodeInvalidConfig},
		{"debounce", "k.toml", "[watch]\ndebounce = \"soon\"\n", mdwerror.CodeConfigError},
		{"extension", "l.toml", "[watch]\nextensions = [\"em\"]\n", mdwerror.CodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.content))
			if err == nil {
				t.Fatal("Load() expected error")
			}
			if !mdwerror.HasCode(err, tt.code) {
				t.Errorf("Load() code = %v, want %v (%v)", mdwerror.GetCode(err), tt.code, err)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "custom.toml", "[general]\nlog_level = \"error\"\n")
	t.Setenv(EnvConfigPath, path)

	cfg, used, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if used != path {
		t.Errorf("LoadFromEnv() path = %v, want %v", used, path)
	}
	if cfg.General.LogLevel != "error" {
		t.Errorf("General.LogLevel = %v, want error", cfg.General.LogLevel)
	}
}

func TestResolve_ExplicitPathWins(t *testing.T) {
	t.Setenv(EnvConfigPath, "/nonexistent/ember.toml")
	path := writeConfig(t, "explicit.toml", "[parser]\nparam_mode = \"strict\"\n")

	cfg, used, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if used != path || cfg.Parser.ParamMode != "strict" {
		t.Errorf("Resolve() = %v from %v, want strict from %v", cfg.Parser.ParamMode, used, path)
	}
}
