// File: diagnostic.go
// Title: Source Diagnostics
// Description: Turns coded syntax errors back into a located diagnostic with
//              the offending source line and a caret under the column.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package lang

import (
	"errors"

	mdwerror "github.com/msto63/ember/foundation/core/error"
	mdwlexer "github.com/msto63/ember/foundation/lang/lexer"
	mdwparser "github.com/msto63/ember/foundation/lang/parser"
	mdwstringx "github.com/msto63/ember/foundation/utils/stringx"
)

// Diagnostic is a located error ready for display
type Diagnostic struct {
	Source  string
	Line    int
	Column  int
	Message string
	Code    mdwerror.Code

	// Excerpt is the source line containing the error; Caret points at
	// Column within it. Both are empty when the line is unavailable.
	Excerpt string
	Caret   string
}

// Diagnose builds a diagnostic for err against the source text it came
// from. Errors without a position yield a diagnostic with Line 0.
func Diagnose(err error, source string) *Diagnostic {
	if err == nil {
		return nil
	}

	d := &Diagnostic{
		Message: err.Error(),
		Code:    mdwerror.GetCode(err),
	}

	if mdwErr, ok := mdwerror.As(err); ok {
		if name, ok := mdwErr.Detail("source"); ok {
			d.Source, _ = name.(string)
		}
	}

	var ute *mdwparser.UnexpectedTokenError
	var illegal *mdwlexer.IllegalError
	switch {
	case errors.As(err, &ute):
		d.Message = ute.Error()
		d.Line, d.Column = ute.Token.Pos.Line, ute.Token.Pos.Column
	case errors.As(err, &illegal):
		d.Message = illegal.Error()
		d.Line, d.Column = illegal.Token.Pos.Line, illegal.Token.Pos.Column
	default:
		return d
	}

	if line, ok := mdwstringx.LineAt(source, d.Line); ok {
		d.Excerpt = line
		d.Caret = mdwstringx.Caret(line, d.Column)
	}
	return d
}
