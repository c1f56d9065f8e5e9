// File: print.go
// Title: Ember Canonical Printer
// Description: Turns an AST back into its canonical token sequence and into
//              formatted source text. Parsing the tokens of a tree yields a
//              tree that is Equal to it.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package ast

import (
	"strings"

	"github.com/msto63/ember/foundation/lang/lexer"
	"github.com/msto63/ember/foundation/lang/token"
)

// Printer renders nodes using a keyword set
type Printer struct {
	Keywords token.Keywords
	Indent   string
}

// NewPrinter creates a printer for the given keywords
func NewPrinter(keywords token.Keywords) *Printer {
	return &Printer{Keywords: keywords.WithDefaults(), Indent: "  "}
}

// Print returns the canonical source form of node with default keywords
func Print(node Node) string {
	return NewPrinter(token.DefaultKeywords()).Print(node)
}

// Tokens returns the canonical token sequence of node, ending with EOF
func Tokens(node Node) []token.Token {
	return NewPrinter(token.DefaultKeywords()).Tokens(node)
}

// Tokens returns the canonical token sequence of node, ending with EOF
func (p *Printer) Tokens(node Node) []token.Token {
	e := &emitter{keywords: p.Keywords.WithDefaults()}
	e.node(node, false)
	return append(e.tokens, token.Token{Kind: token.EOF})
}

// Print returns the formatted source text of node
func (p *Printer) Print(node Node) string {
	return p.Format(p.Tokens(node))
}

// Format lays out a token sequence as source text. One statement per line,
// function bodies indented.
func (p *Printer) Format(tokens []token.Token) string {
	var b strings.Builder
	depth := 0
	newline := false
	var prev token.Kind = token.EOF

	for _, tok := range tokens {
		if tok.Kind == token.EOF {
			break
		}

		if tok.Kind == token.RightBrace {
			depth--
			newline = true
		}
		if newline {
			b.WriteString("\n")
			b.WriteString(strings.Repeat(p.Indent, depth))
			newline = false
		}

		switch tok.Kind {
		case token.Identifier:
			if prev == token.Identifier || prev == token.String {
				b.WriteString(" ")
			}
			b.WriteString(tok.Text)
		case token.String:
			if prev == token.Identifier || prev == token.String {
				b.WriteString(" ")
			}
			b.WriteString(lexer.Quote(tok.Text))
		case token.Equals:
			b.WriteString(" = ")
		case token.Comma:
			b.WriteString(", ")
		case token.Semicolon:
			b.WriteString(";")
			newline = true
		case token.LeftBrace:
			b.WriteString(" {")
			depth++
			newline = true
		case token.Illegal:
			b.WriteString(tok.Text)
		default:
			b.WriteString(tok.Kind.Symbol())
		}
		prev = tok.Kind
	}

	return b.String()
}

type emitter struct {
	keywords token.Keywords
	tokens   []token.Token
}

func (e *emitter) emit(kind token.Kind, text string) {
	e.tokens = append(e.tokens, token.Token{Kind: kind, Text: text})
}

func (e *emitter) delim(kind token.Kind) {
	e.emit(kind, kind.Symbol())
}

// node emits n. inParams drops the var keyword, which parameter lists do
// not require.
func (e *emitter) node(n Node, inParams bool) {
	switch n := n.(type) {
	case *VariableDefinition:
		if !inParams {
			e.emit(token.Identifier, e.keywords.Var)
		}
		e.emit(token.Identifier, n.Name)
		e.delim(token.Equals)
		e.node(n.Value, false)
	case *FunctionDefinition:
		e.emit(token.Identifier, e.keywords.Function)
		e.emit(token.Identifier, n.Name)
		e.delim(token.LeftParen)
		for i, param := range n.Params {
			if i > 0 {
				e.delim(token.Comma)
			}
			e.node(param, true)
		}
		e.delim(token.RightParen)
		e.delim(token.LeftBrace)
		if n.Body != nil {
			e.node(n.Body, false)
		}
		e.delim(token.RightBrace)
	case *Variable:
		e.emit(token.Identifier, n.Name)
	case *FunctionCall:
		e.emit(token.Identifier, n.Name)
		e.delim(token.LeftParen)
		for i, arg := range n.Args {
			if i > 0 {
				e.delim(token.Comma)
			}
			e.node(arg, false)
		}
		e.delim(token.RightParen)
	case *StringLiteral:
		e.emit(token.String, n.Value)
	case *Compound:
		for i, stmt := range n.Statements {
			if i > 0 {
				e.delim(token.Semicolon)
			}
			e.node(stmt, false)
		}
	}
}
