// File: nodes.go
// Title: Ember AST Node Definitions
// Description: Defines the closed set of AST node variants produced by the
//              parser: variable and function definitions, variables, calls,
//              string literals and compounds. Every node records its source
//              position and the scope it was parsed in.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST node definitions
// - 2026-10-18 v0.2.0: Ember node set, closed sum type, scope references

package ast

import (
	"fmt"

	"github.com/msto63/ember/foundation/lang/lexer"
	"github.com/msto63/ember/foundation/lang/scope"
	"github.com/msto63/ember/foundation/lang/token"
)

// Node represents the base interface for all AST nodes. The set of
// implementations is closed; type switches over the six variants are
// exhaustive.
type Node interface {
	// String returns the canonical source form of the node
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Position returns the source position of the node
	Position() token.Position

	// ScopeRef returns the scope the node was parsed in. Nodes never own it.
	ScopeRef() *scope.Scope

	// Kind returns the variant tag
	Kind() NodeKind

	// Validate performs structural checks on the node and its children
	Validate() error

	node()
}

// NodeKind tags the node variants
type NodeKind int

const (
	KindVariableDefinition NodeKind = iota
	KindFunctionDefinition
	KindVariable
	KindFunctionCall
	KindStringLiteral
	KindCompound
)

var nodeKindNames = [...]string{
	KindVariableDefinition: "VariableDefinition",
	KindFunctionDefinition: "FunctionDefinition",
	KindVariable:           "Variable",
	KindFunctionCall:       "FunctionCall",
	KindStringLiteral:      "StringLiteral",
	KindCompound:           "Compound",
}

// String returns the string representation of the node kind
func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return "Unknown"
}

// AllKinds returns every node kind in declaration order
func AllKinds() []NodeKind {
	return []NodeKind{
		KindVariableDefinition, KindFunctionDefinition, KindVariable,
		KindFunctionCall, KindStringLiteral, KindCompound,
	}
}

// VariableDefinition binds Name to the value of an expression
type VariableDefinition struct {
	Name  string
	Value Node
	Pos   token.Position
	Scope *scope.Scope
}

// FunctionDefinition declares a function with at least one parameter and a
// non-empty body
type FunctionDefinition struct {
	Name   string
	Params []Node
	Body   *Compound
	Pos    token.Position
	Scope  *scope.Scope
}

// Variable is a reference to a name
type Variable struct {
	Name  string
	Pos   token.Position
	Scope *scope.Scope
}

// FunctionCall invokes Name with at least one argument
type FunctionCall struct {
	Name  string
	Args  []Node
	Pos   token.Position
	Scope *scope.Scope
}

// StringLiteral holds decoded literal text
type StringLiteral struct {
	Value string
	Pos   token.Position
	Scope *scope.Scope
}

// Compound is an ordered, non-empty statement sequence
type Compound struct {
	Statements []Node
	Pos        token.Position
	Scope      *scope.Scope
}

// Implementation of Node interface for VariableDefinition

func (v *VariableDefinition) String() string { return Print(v) }
func (v *VariableDefinition) Accept(vis Visitor) interface{} { return vis.VisitVariableDefinition(v) }
func (v *VariableDefinition) Position() token.Position { return v.Pos }
func (v *VariableDefinition) ScopeRef() *scope.Scope { return v.Scope }
func (v *VariableDefinition) Kind() NodeKind { return KindVariableDefinition }
func (v *VariableDefinition) node() {}

func (v *VariableDefinition) Validate() error {
	if err := validateName(v.Name); err != nil {
		return err
	}
	if v.Value == nil {
		return fmt.Errorf("variable %q has no value", v.Name)
	}
	if err := v.Value.Validate(); err != nil {
		return fmt.Errorf("variable %q: %w", v.Name, err)
	}
	return nil
}

// Implementation of Node interface for FunctionDefinition

func (f *FunctionDefinition) String() string { return Print(f) }
func (f *FunctionDefinition) Accept(vis Visitor) interface{} { return vis.VisitFunctionDefinition(f) }
func (f *FunctionDefinition) Position() token.Position { return f.Pos }
func (f *FunctionDefinition) ScopeRef() *scope.Scope { return f.Scope }
func (f *FunctionDefinition) Kind() NodeKind { return KindFunctionDefinition }
func (f *FunctionDefinition) node() {}

func (f *FunctionDefinition) Validate() error {
	if err := validateName(f.Name); err != nil {
		return err
	}
	if len(f.Params) == 0 {
		return fmt.Errorf("function %q has no parameters", f.Name)
	}
	for i, param := range f.Params {
		if param == nil {
			return fmt.Errorf("function %q: parameter %d is nil", f.Name, i)
		}
		switch param.(type) {
		case *VariableDefinition:
		case *Variable, *FunctionCall:
			if i == 0 {
				return fmt.Errorf("function %q: first parameter must be a variable definition, got %s",
					f.Name, param.Kind())
			}
		default:
			return fmt.Errorf("function %q: parameter %d cannot be a %s", f.Name, i, param.Kind())
		}
		if err := param.Validate(); err != nil {
			return fmt.Errorf("function %q: parameter %d: %w", f.Name, i, err)
		}
	}
	if f.Body == nil {
		return fmt.Errorf("function %q has no body", f.Name)
	}
	if err := f.Body.Validate(); err != nil {
		return fmt.Errorf("function %q: body: %w", f.Name, err)
	}
	return nil
}

// Implementation of Node interface for Variable

func (v *Variable) String() string { return v.Name }
func (v *Variable) Accept(vis Visitor) interface{} { return vis.VisitVariable(v) }
func (v *Variable) Position() token.Position { return v.Pos }
func (v *Variable) ScopeRef() *scope.Scope { return v.Scope }
func (v *Variable) Kind() NodeKind { return KindVariable }
func (v *Variable) node() {}

func (v *Variable) Validate() error {
	return validateName(v.Name)
}

// Implementation of Node interface for FunctionCall

func (c *FunctionCall) String() string { return Print(c) }
func (c *FunctionCall) Accept(vis Visitor) interface{} { return vis.VisitFunctionCall(c) }
func (c *FunctionCall) Position() token.Position { return c.Pos }
func (c *FunctionCall) ScopeRef() *scope.Scope { return c.Scope }
func (c *FunctionCall) Kind() NodeKind { return KindFunctionCall }
func (c *FunctionCall) node() {}

func (c *FunctionCall) Validate() error {
	if err := validateName(c.Name); err != nil {
		return err
	}
	if len(c.Args) == 0 {
		return fmt.Errorf("call of %q has no arguments", c.Name)
	}
	for i, arg := range c.Args {
		if arg == nil {
			return fmt.Errorf("call of %q: argument %d is nil", c.Name, i)
		}
		if err := arg.Validate(); err != nil {
			return fmt.Errorf("call of %q: argument %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Implementation of Node interface for StringLiteral

func (s *StringLiteral) String() string { return lexer.Quote(s.Value) }
func (s *StringLiteral) Accept(vis Visitor) interface{} { return vis.VisitStringLiteral(s) }
func (s *StringLiteral) Position() token.Position { return s.Pos }
func (s *StringLiteral) ScopeRef() *scope.Scope { return s.Scope }
func (s *StringLiteral) Kind() NodeKind { return KindStringLiteral }
func (s *StringLiteral) node() {}

// Validate always succeeds; any text is a valid literal
func (s *StringLiteral) Validate() error {
	return nil
}

// Implementation of Node interface for Compound

func (c *Compound) String() string { return Print(c) }
func (c *Compound) Accept(vis Visitor) interface{} { return vis.VisitCompound(c) }
func (c *Compound) Position() token.Position { return c.Pos }
func (c *Compound) ScopeRef() *scope.Scope { return c.Scope }
func (c *Compound) Kind() NodeKind { return KindCompound }
func (c *Compound) node() {}

func (c *Compound) Validate() error {
	if len(c.Statements) == 0 {
		return fmt.Errorf("compound has no statements")
	}
	for i, stmt := range c.Statements {
		if stmt == nil {
			return fmt.Errorf("statement %d is nil", i)
		}
		if err := stmt.Validate(); err != nil {
			return fmt.Errorf("statement %d: %w", i, err)
		}
	}
	return nil
}

func validateName(name string) error {
	if !lexer.IsIdentifier(name) {
		return fmt.Errorf("invalid name %q", name)
	}
	return nil
}
