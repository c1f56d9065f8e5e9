// File: options.go
// Title: Parser Options
// Description: Configuration of keyword texts, parameter-list grammar and
//              end-of-input enforcement.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Options with logger, input length and chaining
// - 2026-10-18 v0.2.0: Keywords, parameter modes and RequireEOF

package parser

import (
	"fmt"
	"strings"

	mdwlog "github.com/msto63/ember/foundation/core/log"
	"github.com/msto63/ember/foundation/lang/token"
)

// ParamMode selects how parameters after the first are parsed
type ParamMode int

const (
	// ParamCompat parses the first parameter as a variable definition and
	// every further one as a variable reference, call or `name = value`
	ParamCompat ParamMode = iota

	// ParamStrict parses every parameter as a variable definition
	ParamStrict
)

// String returns the string representation of the parameter mode
func (m ParamMode) String() string {
	switch m {
	case ParamCompat:
		return "compat"
	case ParamStrict:
		return "strict"
	default:
		return "unknown"
	}
}

// ParseParamMode parses "compat" or "strict"
func ParseParamMode(s string) (ParamMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "compat":
		return ParamCompat, nil
	case "strict":
		return ParamStrict, nil
	default:
		return ParamCompat, fmt.Errorf("invalid parameter mode %q (want compat or strict)", s)
	}
}

// Keywords is the keyword set used for identifier dispatch
type Keywords = token.Keywords

// Options configures parser behavior
type Options struct {
	Logger     *mdwlog.Logger
	Keywords   Keywords
	Params     ParamMode
	RequireEOF bool
}
