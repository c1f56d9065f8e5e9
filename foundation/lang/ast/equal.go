// File: equal.go
// Title: Structural Equality
// Description: Compares two trees by variant and payload, ignoring source
//              positions and scope references.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package ast

// Equal reports whether a and b have the same shape and payloads
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return isNilNode(a) && isNilNode(b)
	}

	switch x := a.(type) {
	case *VariableDefinition:
		y, ok := b.(*VariableDefinition)
		return ok && x.Name == y.Name && Equal(x.Value, y.Value)
	case *FunctionDefinition:
		y, ok := b.(*FunctionDefinition)
		if !ok || x.Name != y.Name || !equalLists(x.Params, y.Params) {
			return false
		}
		return Equal(compoundNode(x.Body), compoundNode(y.Body))
	case *Variable:
		y, ok := b.(*Variable)
		return ok && x.Name == y.Name
	case *FunctionCall:
		y, ok := b.(*FunctionCall)
		return ok && x.Name == y.Name && equalLists(x.Args, y.Args)
	case *StringLiteral:
		y, ok := b.(*StringLiteral)
		return ok && x.Value == y.Value
	case *Compound:
		y, ok := b.(*Compound)
		return ok && equalLists(x.Statements, y.Statements)
	default:
		return false
	}
}

func equalLists(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

// compoundNode avoids wrapping a nil *Compound in a non-nil interface
func compoundNode(c *Compound) Node {
	if c == nil {
		return nil
	}
	return c
}

func isNilNode(n Node) bool {
	if n == nil {
		return true
	}
	if c, ok := n.(*Compound); ok {
		return c == nil
	}
	return false
}
