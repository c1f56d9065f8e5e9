// File: declare.go
// Title: Top-Level Declarations
// Description: Binds the top-level variable and function definitions of a
//              compound into a scope.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package ast

import (
	"fmt"

	"github.com/msto63/ember/foundation/lang/scope"
)

// Declare defines every top-level definition of root in s. All statements
// are processed; one error is returned per rejected definition.
func Declare(root *Compound, s *scope.Scope) []error {
	if root == nil || s == nil {
		return nil
	}

	var errs []error
	for _, stmt := range root.Statements {
		var sym scope.Symbol
		switch n := stmt.(type) {
		case *VariableDefinition:
			sym = scope.Symbol{Name: n.Name, Kind: scope.SymbolVariable, Value: n}
		case *FunctionDefinition:
			sym = scope.Symbol{Name: n.Name, Kind: scope.SymbolFunction, Value: n}
		default:
			continue
		}

		if err := s.Define(sym); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", stmt.Position(), err))
		}
	}
	return errs
}
