// File: token.go
// Title: Ember Token Model
// Description: Defines token kinds, source positions and the Source contract
//              through which the parser pulls tokens one at a time.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Token types as part of the command lexer
// - 2026-10-18 v0.2.0: Own package with Source interface and SliceSource

package token

import (
	"fmt"
)

// Kind represents the type of a lexical token
type Kind int

const (
	// Special tokens
	EOF Kind = iota
	Illegal

	// Identifiers and literals
	Identifier // greet, name, var, function
	String     // "text"

	// Delimiters
	LeftParen  // (
	RightParen // )
	Comma      // ,
	Equals     // =
	Semicolon  // ;
	LeftBrace  // {
	RightBrace // }
)

var kindNames = map[Kind]string{
	EOF:        "EOF",
	Illegal:    "ILLEGAL",
	Identifier: "IDENTIFIER",
	String:     "STRING",
	LeftParen:  "LEFT_PAREN",
	RightParen: "RIGHT_PAREN",
	Comma:      "COMMA",
	Equals:     "EQUALS",
	Semicolon:  "SEMICOLON",
	LeftBrace:  "LEFT_BRACE",
	RightBrace: "RIGHT_BRACE",
}

var kindSymbols = map[Kind]string{
	LeftParen:  "(",
	RightParen: ")",
	Comma:      ",",
	Equals:     "=",
	Semicolon:  ";",
	LeftBrace:  "{",
	RightBrace: "}",
}

// String returns a string representation of the token kind
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "UNKNOWN"
}

// Symbol returns the fixed source text of a delimiter kind, or "" for kinds
// whose text varies.
func (k Kind) Symbol() string {
	return kindSymbols[k]
}

// Describe returns a short human-readable form used in diagnostics
func (k Kind) Describe() string {
	if sym := k.Symbol(); sym != "" {
		return fmt.Sprintf("'%s'", sym)
	}
	switch k {
	case Identifier:
		return "identifier"
	case String:
		return "string"
	case EOF:
		return "end of input"
	default:
		return k.String()
	}
}

// Position describes where a token starts in the source
type Position struct {
	Line   int // 1-based
	Column int // 1-based, counted in runes
	Offset int // 0-based byte offset
}

// IsValid reports whether the position was set by a lexer
func (p Position) IsValid() bool {
	return p.Line > 0
}

// String returns "line:column", or "-" for an unset position
func (p Position) String() string {
	if !p.IsValid() {
		return "-"
	}
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Token is a single lexical token. For String tokens Text holds the decoded
// literal content without quotes.
type Token struct {
	Kind Kind
	Text string
	Pos  Position
}

// New creates a token without position
func New(kind Kind, text string) Token {
	return Token{Kind: kind, Text: text}
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return "EOF"
	case String:
		return fmt.Sprintf("STRING(%q)", t.Text)
	default:
		return fmt.Sprintf("%s(%s)", t.Kind, t.Text)
	}
}

// Source supplies tokens to the parser, strictly in order. Once a source has
// returned EOF every later call returns EOF as well.
type Source interface {
	Next() Token
}

// SliceSource replays a fixed token slice
type SliceSource struct {
	tokens []Token
	pos    int
	eof    Token
	done   bool
}

// NewSliceSource creates a source over tokens. Tokens after the first EOF
// are never returned; a missing EOF is supplied at the end.
func NewSliceSource(tokens []Token) *SliceSource {
	return &SliceSource{tokens: tokens, eof: Token{Kind: EOF}}
}

// Next returns the next token, repeating EOF once exhausted
func (s *SliceSource) Next() Token {
	if s.done || s.pos >= len(s.tokens) {
		s.done = true
		return s.eof
	}
	tok := s.tokens[s.pos]
	s.pos++
	if tok.Kind == EOF {
		s.done = true
		s.eof = tok
	}
	return tok
}

// Consumed returns how many tokens of the slice have been handed out
func (s *SliceSource) Consumed() int {
	return s.pos
}
