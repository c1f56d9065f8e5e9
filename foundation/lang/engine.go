// File: engine.go
// Title: Ember Engine
// Description: High-level entry point that turns source text into an AST.
//              Wires lexer and parser, enforces input limits, logs each run
//              and converts failures into coded errors carrying the source
//              name and position.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial high-level engine implementation
// - 2026-10-18 v0.2.0: Parse-only engine for Ember sources

package lang

import (
	"context"
	"errors"
	"fmt"
	"os"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwlog "github.com/msto63/ember/foundation/core/log"
	mdwast "github.com/msto63/ember/foundation/lang/ast"
	mdwlexer "github.com/msto63/ember/foundation/lang/lexer"
	mdwparser "github.com/msto63/ember/foundation/lang/parser"
	"github.com/msto63/ember/foundation/lang/scope"
	"github.com/msto63/ember/foundation/lang/token"
	mdwstringx "github.com/msto63/ember/foundation/utils/stringx"
)

// DefaultMaxInputLength is the input limit used when none is configured
const DefaultMaxInputLength = 1 << 20

// Engine parses Ember sources. It holds no per-call state and is safe for
// concurrent use.
type Engine struct {
	logger  *mdwlog.Logger
	options Options
	printer *mdwast.Printer
}

// Options configures the engine
type Options struct {
	Logger         *mdwlog.Logger
	MaxInputLength int
	Keywords       token.Keywords
	Params         mdwparser.ParamMode

	// AllowTrailing accepts input that continues after the top-level
	// statement sequence
	AllowTrailing bool
}

// New creates a new engine
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxInputLength < 0 {
		return nil, mdwerror.Newf("max input length must not be negative, got %d", opts.MaxInputLength).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("lang.New")
	}

	opts.Keywords = opts.Keywords.WithDefaults()
	if err := opts.Keywords.Validate(); err != nil {
		return nil, mdwerror.Wrap(err, "invalid keywords").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("lang.New")
	}
	for _, kw := range []string{opts.Keywords.Var, opts.Keywords.Function} {
		if !mdwlexer.IsIdentifier(kw) {
			return nil, mdwerror.Newf("keyword %q is not an identifier", kw).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("lang.New")
		}
	}

	logger := opts.Logger.WithField("component", "ember-engine")
	logger.Debug("Ember engine initialized", mdwlog.Fields{
		"max_input_length": opts.MaxInputLength,
		"var_keyword":      opts.Keywords.Var,
		"function_keyword": opts.Keywords.Function,
		"param_mode":       opts.Params.String(),
		"allow_trailing":   opts.AllowTrailing,
	})

	return &Engine{
		logger:  logger,
		options: opts,
		printer: mdwast.NewPrinter(opts.Keywords),
	}, nil
}

// Options returns the effective options
func (e *Engine) Options() Options {
	return e.options
}

// Parse parses source, reported under name, into a tree whose nodes all
// reference s. A nil scope is replaced by a fresh global scope.
func (e *Engine) Parse(ctx context.Context, name, source string, s *scope.Scope) (*mdwast.Compound, error) {
	if err := e.checkInput(ctx, name, source, "lang.Parse"); err != nil {
		return nil, err
	}
	if s == nil {
		s = scope.NewGlobal()
	}

	timer := e.logger.StartTimer("parse").WithFields(mdwlog.Fields{
		"source": name,
		"length": len(source),
	})

	p := mdwparser.New(mdwlexer.New(source), mdwparser.Options{
		Logger:     e.logger,
		Keywords:   e.options.Keywords,
		Params:     e.options.Params,
		RequireEOF: !e.options.AllowTrailing,
	})

	root, err := p.Parse(s)
	if err != nil {
		timer.WithField("success", false).Stop()
		syntaxErr := syntaxError(name, err, "lang.Parse")
		e.logger.Debug("Parse failed", mdwlog.Fields{
			"source": name,
			"error":  err.Error(),
		})
		return nil, syntaxErr
	}

	if err := root.Validate(); err != nil {
		timer.WithField("success", false).Stop()
		return nil, mdwerror.Wrap(err, fmt.Sprintf("%s: parser produced an invalid tree", name)).
			WithCode(mdwerror.CodeInvalidTree).
			WithOperation("lang.Parse").
			WithDetail("source", name)
	}

	timer.WithFields(mdwlog.Fields{
		"success":    true,
		"statements": len(root.Statements),
	}).Stop()

	return root, nil
}

// ParseFile reads path and parses its content under the path name
func (e *Engine) ParseFile(ctx context.Context, path string, s *scope.Scope) (*mdwast.Compound, string, error) {
	source, err := e.ReadSource(path)
	if err != nil {
		return nil, "", err
	}

	root, err := e.Parse(ctx, path, source, s)
	return root, source, err
}

// ReadSource reads a source file, enforcing the input limit
func (e *Engine) ReadSource(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		code := mdwerror.CodeInternal
		if errors.Is(err, os.ErrNotExist) {
			code = mdwerror.CodeNotFound
		}
		return "", mdwerror.Wrap(err, "cannot read source").
			WithCode(code).
			WithOperation("lang.ReadSource").
			WithDetail("source", path)
	}
	if info.IsDir() {
		return "", mdwerror.Newf("%s is a directory", path).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("lang.ReadSource").
			WithDetail("source", path)
	}
	if info.Size() > int64(e.options.MaxInputLength) {
		return "", e.tooLarge(path, int(info.Size()), "lang.ReadSource")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", mdwerror.Wrap(err, "cannot read source").
			WithCode(mdwerror.CodeInternal).
			WithOperation("lang.ReadSource").
			WithDetail("source", path)
	}
	return string(data), nil
}

// Tokenize returns the token stream of source including the final EOF
func (e *Engine) Tokenize(name, source string) ([]token.Token, error) {
	if len(source) > e.options.MaxInputLength {
		return nil, e.tooLarge(name, len(source), "lang.Tokenize")
	}

	tokens, err := mdwlexer.New(source).Tokenize()
	if err != nil {
		return tokens, syntaxError(name, err, "lang.Tokenize")
	}
	return tokens, nil
}

// Check parses source and reports only whether it is valid
func (e *Engine) Check(ctx context.Context, name, source string) error {
	_, err := e.Parse(ctx, name, source, nil)
	return err
}

// Print renders node as canonical source using the engine's keywords
func (e *Engine) Print(node mdwast.Node) string {
	return e.printer.Print(node)
}

func (e *Engine) checkInput(ctx context.Context, name, source, operation string) error {
	if err := ctx.Err(); err != nil {
		return mdwerror.Wrap(err, "parse cancelled").
			WithCode(mdwerror.CodeCancelled).
			WithOperation(operation).
			WithDetail("source", name)
	}
	if len(source) > e.options.MaxInputLength {
		return e.tooLarge(name, len(source), operation)
	}
	if mdwstringx.IsBlank(source) {
		return mdwerror.Newf("%s: source is empty", name).
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation(operation).
			WithDetail("source", name)
	}
	return nil
}

func (e *Engine) tooLarge(name string, size int, operation string) *mdwerror.Error {
	return mdwerror.Newf("%s: input exceeds maximum length: %d > %d", name, size, e.options.MaxInputLength).
		WithCode(mdwerror.CodeInputTooLarge).
		WithOperation(operation).
		WithDetails(map[string]interface{}{
			"source": name,
			"size":   size,
			"limit":  e.options.MaxInputLength,
		})
}

// syntaxError wraps a lexer or parser failure into a SYNTAX error whose
// message starts with name:line:column
func syntaxError(name string, err error, operation string) *mdwerror.Error {
	var tok token.Token

	var ute *mdwparser.UnexpectedTokenError
	var illegal *mdwlexer.IllegalError
	switch {
	case errors.As(err, &ute):
		tok = ute.Token
	case errors.As(err, &illegal):
		tok = illegal.Token
	default:
		return mdwerror.Wrap(err, name).
			WithCode(mdwerror.CodeInternal).
			WithOperation(operation).
			WithDetail("source", name)
	}

	return mdwerror.Wrap(err, fmt.Sprintf("%s:%d:%d", name, tok.Pos.Line, tok.Pos.Column)).
		WithCode(mdwerror.CodeSyntax).
		WithOperation(operation).
		WithDetails(map[string]interface{}{
			"source": name,
			"line":   tok.Pos.Line,
			"column": tok.Pos.Column,
			"token":  tok.Kind.String(),
			"text":   tok.Text,
		})
}
