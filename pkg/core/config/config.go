package config

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwlog "github.com/msto63/ember/foundation/core/log"
	"github.com/msto63/ember/foundation/lang"
	"github.com/msto63/ember/foundation/lang/lexer"
	"github.com/msto63/ember/foundation/lang/parser"
	"github.com/msto63/ember/foundation/lang/token"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "EMBER_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Journal JournalConfig `toml:"journal" yaml:"journal"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	LogLevel  string `toml:"log_level" yaml:"log_level"`
	LogFormat string `toml:"log_format" yaml:"log_format"`
}

// ParserConfig holds parser settings
type ParserConfig struct {
	MaxInputLength  int    `toml:"max_input_length" yaml:"max_input_length"`
	VarKeyword      string `toml:"var_keyword" yaml:"var_keyword"`
	FunctionKeyword string `toml:"function_keyword" yaml:"function_keyword"`
	ParamMode       string `toml:"param_mode" yaml:"param_mode"`
	RequireEOF      bool   `toml:"require_eof" yaml:"require_eof"`
}

// JournalConfig holds parse journal settings
type JournalConfig struct {
	Enabled       bool   `toml:"enabled" yaml:"enabled"`
	Path          string `toml:"path" yaml:"path"`
	RetentionDays int    `toml:"retention_days" yaml:"retention_days"`
}

// WatchConfig holds file watcher settings
type WatchConfig struct {
	Debounce   Duration `toml:"debounce" yaml:"debounce"`
	Extensions []string `toml:"extensions" yaml:"extensions"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// UnmarshalYAML parses a duration scalar
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	return d.UnmarshalText([]byte(value.Value))
}

// MarshalYAML formats the duration as a string
func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{
		Parser:  ParserConfig{RequireEOF: true},
		Journal: JournalConfig{RetentionDays: 30},
	}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file, or YAML for .yaml and .yml.
// Keys missing from the file keep their default values.
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		code := mdwerror.CodeConfigError
		if os.IsNotExist(err) {
			code = mdwerror.CodeNotFound
		}
		return nil, mdwerror.Wrap(err, "config file not readable").
			WithCode(code).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, parseError(err, path)
		}
	default:
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, parseError(err, path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, mdwerror.Newf("unknown config key %q", undecoded[0].String()).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Load").
				WithDetail("path", path)
		}
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, mdwerror.Wrap(err, path)
	}

	return cfg, nil
}

// LoadFromEnv loads configuration from the EMBER_CONFIG environment
// variable, then from the default locations. Without any file the
// defaults are returned.
func LoadFromEnv() (*Config, string, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./ember.toml",
			"./configs/ember.toml",
		}
		if home, err := os.UserHomeDir(); err == nil {
			defaultPaths = append(defaultPaths, filepath.Join(home, ".config", "ember", "config.toml"))
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return Default(), "", nil
	}

	cfg, err := Load(path)
	return cfg, path, err
}

// Resolve loads the file at path, or falls back to LoadFromEnv when path
// is empty
func Resolve(path string) (*Config, string, error) {
	if path != "" {
		cfg, err := Load(path)
		return cfg, path, err
	}
	return LoadFromEnv()
}

// Validate checks value ranges and enumerations
func (c *Config) Validate() error {
	if _, err := mdwlog.ParseLevel(c.General.LogLevel); err != nil {
		return invalid("general.log_level", err)
	}
	if _, err := mdwlog.ParseFormat(c.General.LogFormat); err != nil {
		return invalid("general.log_format", err)
	}

	if c.Parser.MaxInputLength <= 0 {
		return invalid("parser.max_input_length", mdwerror.Newf("must be positive, got %d", c.Parser.MaxInputLength))
	}
	if _, err := parser.ParseParamMode(c.Parser.ParamMode); err != nil {
		return invalid("parser.param_mode", err)
	}
	for key, kw := range map[string]string{
		"parser.var_keyword":      c.Parser.VarKeyword,
		"parser.function_keyword": c.Parser.FunctionKeyword,
	} {
		if !lexer.IsIdentifier(kw) {
			return invalid(key, mdwerror.Newf("%q is not an identifier", kw))
		}
	}
	if err := c.Keywords().Validate(); err != nil {
		return invalid("parser", err)
	}

	if c.Journal.RetentionDays < 0 {
		return invalid("journal.retention_days", mdwerror.Newf("must not be negative, got %d", c.Journal.RetentionDays))
	}
	if c.Watch.Debounce.Duration < 0 {
		return invalid("watch.debounce", mdwerror.Newf("must not be negative, got %s", c.Watch.Debounce.Duration))
	}
	for _, ext := range c.Watch.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return invalid("watch.extensions", mdwerror.Newf("%q must start with a dot", ext))
		}
	}

	return nil
}

// Keywords returns the configured keyword set
func (c *Config) Keywords() token.Keywords {
	return token.Keywords{Var: c.Parser.VarKeyword, Function: c.Parser.FunctionKeyword}
}

// EngineOptions maps the parser section onto engine options
func (c *Config) EngineOptions(logger *mdwlog.Logger) lang.Options {
	mode, _ := parser.ParseParamMode(c.Parser.ParamMode)
	return lang.Options{
		Logger:         logger,
		MaxInputLength: c.Parser.MaxInputLength,
		Keywords:       c.Keywords(),
		Params:         mode,
		AllowTrailing:  !c.Parser.RequireEOF,
	}
}

// Retention returns the journal retention period, or 0 to keep entries
func (c *Config) Retention() time.Duration {
	return time.Duration(c.Journal.RetentionDays) * 24 * time.Hour
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "console"
	}

	// Parser
	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = lang.DefaultMaxInputLength
	}
	if c.Parser.VarKeyword == "" {
		c.Parser.VarKeyword = token.DefaultKeywords().Var
	}
	if c.Parser.FunctionKeyword == "" {
		c.Parser.FunctionKeyword = token.DefaultKeywords().Function
	}
	if c.Parser.ParamMode == "" {
		c.Parser.ParamMode = parser.ParamCompat.String()
	}

	// Journal
	if c.Journal.Path == "" {
		c.Journal.Path = "./data/ember.db"
	}

	// Watch
	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = 300 * time.Millisecond
	}
	if len(c.Watch.Extensions) == 0 {
		c.Watch.Extensions = []string{".em"}
	}
}

// expandEnvVars expands environment variables in configuration values
func (c *Config) expandEnvVars() {
	c.Journal.Path = os.ExpandEnv(c.Journal.Path)
}

func parseError(err error, path string) *mdwerror.Error {
	return mdwerror.Wrap(err, "failed to parse config").
		WithCode(mdwerror.CodeConfigError).
		WithOperation("config.Load").
		WithDetail("path", path)
}

func invalid(key string, err error) *mdwerror.Error {
	return mdwerror.Wrap(err, key).
		WithCode(mdwerror.CodeInvalidConfig).
		WithOperation("config.Validate").
		WithDetail("key", key)
}
