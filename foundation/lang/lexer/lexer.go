// File: lexer.go
// Title: Ember Lexical Analyzer
// Description: Converts Ember source text into tokens on demand. The lexer
//              implements token.Source so the parser pulls one token at a
//              time; Tokenize collects the whole stream for tooling.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial lexer implementation
// - 2026-10-18 v0.2.0: Rune based scanning, escapes, line comments,
//                      token.Source implementation

package lexer

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/msto63/ember/foundation/lang/token"
)

const eofRune = -1

// Lexer performs lexical analysis of Ember input
type Lexer struct {
	input   string
	offset  int  // byte offset of ch
	readPos int  // byte offset after ch
	ch      rune // current rune, eofRune at end
	line    int
	column  int
}

var _ token.Source = (*Lexer)(nil)

// New creates a new lexer for the given input
func New(input string) *Lexer {
	l := &Lexer{
		input: input,
		line:  1,
	}
	l.readChar()
	return l
}

// Next returns the next token. After EOF it keeps returning EOF.
func (l *Lexer) Next() token.Token {
	l.skipWhitespaceAndComments()

	pos := token.Position{Line: l.line, Column: l.column, Offset: l.offset}

	if l.ch == eofRune {
		return token.Token{Kind: token.EOF, Pos: pos}
	}

	if kind, ok := delimiters[l.ch]; ok {
		text := string(l.ch)
		l.readChar()
		return token.Token{Kind: kind, Text: text, Pos: pos}
	}

	switch {
	case l.ch == '"':
		text, ok := l.readString()
		if !ok {
			return token.Token{Kind: token.Illegal, Text: text, Pos: pos}
		}
		return token.Token{Kind: token.String, Text: text, Pos: pos}
	case isIdentStart(l.ch):
		return token.Token{Kind: token.Identifier, Text: l.readIdentifier(), Pos: pos}
	default:
		text := string(l.ch)
		l.readChar()
		return token.Token{Kind: token.Illegal, Text: text, Pos: pos}
	}
}

// Tokenize returns all tokens of the input including the final EOF. It stops
// at the first illegal token and reports it as an error.
func (l *Lexer) Tokenize() ([]token.Token, error) {
	var tokens []token.Token

	for {
		tok := l.Next()
		tokens = append(tokens, tok)

		switch tok.Kind {
		case token.EOF:
			return tokens, nil
		case token.Illegal:
			return tokens, &IllegalError{Token: tok}
		}
	}
}

// IllegalError reports input the lexer could not turn into a token
type IllegalError struct {
	Token token.Token
}

func (e *IllegalError) Error() string {
	return fmt.Sprintf("illegal input %q at line %d, column %d",
		e.Token.Text, e.Token.Pos.Line, e.Token.Pos.Column)
}

var delimiters = map[rune]token.Kind{
	'(': token.LeftParen,
	')': token.RightParen,
	',': token.Comma,
	'=': token.Equals,
	';': token.Semicolon,
	'{': token.LeftBrace,
	'}': token.RightBrace,
}

// readChar advances to the next rune and tracks line and column
func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.column = 0
	}

	l.offset = l.readPos
	if l.readPos >= len(l.input) {
		if l.ch != eofRune {
			l.column++
		}
		l.ch = eofRune
		return
	}

	r, width := utf8.DecodeRuneInString(l.input[l.readPos:])
	l.ch = r
	l.readPos += width
	l.column++
}

func (l *Lexer) peekChar() rune {
	if l.readPos >= len(l.input) {
		return eofRune
	}
	r, _ := utf8.DecodeRuneInString(l.input[l.readPos:])
	return r
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.ch != eofRune && unicode.IsSpace(l.ch):
			l.readChar()
		case l.ch == '/' && l.peekChar() == '/':
			for l.ch != '\n' && l.ch != eofRune {
				l.readChar()
			}
		default:
			return
		}
	}
}

// readIdentifier reads letters, digits and underscores
func (l *Lexer) readIdentifier() string {
	start := l.offset
	for isIdentStart(l.ch) || unicode.IsDigit(l.ch) {
		l.readChar()
	}
	return l.input[start:l.offset]
}

// readString reads a double-quoted literal and decodes its escapes. On an
// unterminated literal or unknown escape it returns the raw text read so far
// and false.
func (l *Lexer) readString() (string, bool) {
	start := l.offset
	var b strings.Builder

	l.readChar() // opening quote
	for {
		switch l.ch {
		case eofRune, '\n':
			return l.input[start:l.offset], false
		case '"':
			l.readChar()
			return b.String(), true
		case '\\':
			l.readChar()
			decoded, ok := escapes[l.ch]
			if !ok {
				if l.ch != eofRune {
					l.readChar()
				}
				return l.input[start:l.offset], false
			}
			b.WriteRune(decoded)
		default:
			b.WriteRune(l.ch)
		}
		l.readChar()
	}
}

var escapes = map[rune]rune{
	'"':  '"',
	'\\': '\\',
	'n':  '\n',
	't':  '\t',
	'r':  '\r',
}

// Quote returns the source form of a string literal, the inverse of the
// escape decoding done by the lexer
func Quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentifier reports whether s lexes as exactly one identifier token
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if i == 0 && !isIdentStart(r) {
			return false
		}
		if !isIdentStart(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
