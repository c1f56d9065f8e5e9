// File: keywords.go
// Title: Ember Keywords
// Description: Keyword set and word classification. Keywords are lexed as
//              identifiers; the parser classifies them once per dispatch.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package token

import (
	"fmt"
)

// WordClass is the classification of an identifier's text
type WordClass int

const (
	WordName WordClass = iota
	WordVar
	WordFunction
)

// String returns the string representation of the word class
func (w WordClass) String() string {
	switch w {
	case WordVar:
		return "var"
	case WordFunction:
		return "function"
	default:
		return "name"
	}
}

// Keywords holds the keyword texts recognised by the parser
type Keywords struct {
	Var      string
	Function string
}

// DefaultKeywords returns the standard keyword set
func DefaultKeywords() Keywords {
	return Keywords{Var: "var", Function: "function"}
}

// WithDefaults fills empty keyword texts from DefaultKeywords
func (k Keywords) WithDefaults() Keywords {
	d := DefaultKeywords()
	if k.Var == "" {
		k.Var = d.Var
	}
	if k.Function == "" {
		k.Function = d.Function
	}
	return k
}

// Validate checks that both keywords are set and differ
func (k Keywords) Validate() error {
	if k.Var == "" || k.Function == "" {
		return fmt.Errorf("keywords must not be empty (var=%q, function=%q)", k.Var, k.Function)
	}
	if k.Var == k.Function {
		return fmt.Errorf("var and function keywords must differ, both are %q", k.Var)
	}
	return nil
}

// Classify maps identifier text to its word class
func (k Keywords) Classify(text string) WordClass {
	switch text {
	case k.Var:
		return WordVar
	case k.Function:
		return WordFunction
	default:
		return WordName
	}
}
