// File: errors.go
// Title: Parser Errors
// Description: The single failure kind of the parser: a token that does not
//              fit the grammar at the current position.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: ParseError with position information
// - 2026-10-18 v0.2.0: UnexpectedTokenError with expected kinds

package parser

import (
	"errors"
	"fmt"
	"strings"

	"github.com/msto63/ember/foundation/lang/token"
)

// ErrUnexpectedToken matches every *UnexpectedTokenError with errors.Is
var ErrUnexpectedToken = errors.New("unexpected token")

// UnexpectedTokenError reports the offending token and what the grammar
// allowed in its place
type UnexpectedTokenError struct {
	Token    token.Token
	Expected []token.Kind
}

func (e *UnexpectedTokenError) Error() string {
	var b strings.Builder

	b.WriteString("unexpected ")
	if e.Token.Kind == token.EOF {
		b.WriteString("end of input")
	} else {
		b.WriteString(fmt.Sprintf("%s %q", e.Token.Kind, e.Token.Text))
	}

	if e.Token.Pos.IsValid() {
		b.WriteString(fmt.Sprintf(" at line %d, column %d", e.Token.Pos.Line, e.Token.Pos.Column))
	}

	if len(e.Expected) > 0 {
		b.WriteString(", expected ")
		b.WriteString(describeKinds(e.Expected))
	}

	return b.String()
}

// Is makes errors.Is(err, ErrUnexpectedToken) hold
func (e *UnexpectedTokenError) Is(target error) bool {
	return target == ErrUnexpectedToken
}

// Position returns the position of the offending token
func (e *UnexpectedTokenError) Position() token.Position {
	return e.Token.Pos
}

func describeKinds(kinds []token.Kind) string {
	parts := make([]string, len(kinds))
	for i, k := range kinds {
		parts[i] = k.Describe()
	}
	return strings.Join(parts, " or ")
}
