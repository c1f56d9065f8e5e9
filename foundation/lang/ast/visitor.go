// File: visitor.go
// Title: Ember AST Visitor Pattern Implementation
// Description: Visitor interface over the six node variants, a BaseVisitor
//              that walks children, and the DumpVisitor that renders an
//              indented tree for inspection.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial visitor pattern implementation
// - 2026-10-18 v0.2.0: Ember node set, DumpVisitor replaces StringVisitor

package ast

import (
	"fmt"
	"strings"
)

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	VisitVariableDefinition(node *VariableDefinition) interface{}
	VisitFunctionDefinition(node *FunctionDefinition) interface{}
	VisitVariable(node *Variable) interface{}
	VisitFunctionCall(node *FunctionCall) interface{}
	VisitStringLiteral(node *StringLiteral) interface{}
	VisitCompound(node *Compound) interface{}
}

// BaseVisitor provides default implementations for all visitor methods.
// Embed it in concrete visitors to only override needed methods.
type BaseVisitor struct{}

func (bv *BaseVisitor) VisitVariableDefinition(node *VariableDefinition) interface{} {
	if node.Value != nil {
		node.Value.Accept(bv)
	}
	return nil
}

func (bv *BaseVisitor) VisitFunctionDefinition(node *FunctionDefinition) interface{} {
	for _, param := range node.Params {
		if param != nil {
			param.Accept(bv)
		}
	}
	if node.Body != nil {
		node.Body.Accept(bv)
	}
	return nil
}

func (bv *BaseVisitor) VisitVariable(node *Variable) interface{} {
	return nil // Terminal node
}

func (bv *BaseVisitor) VisitFunctionCall(node *FunctionCall) interface{} {
	for _, arg := range node.Args {
		if arg != nil {
			arg.Accept(bv)
		}
	}
	return nil
}

func (bv *BaseVisitor) VisitStringLiteral(node *StringLiteral) interface{} {
	return nil // Terminal node
}

func (bv *BaseVisitor) VisitCompound(node *Compound) interface{} {
	for _, stmt := range node.Statements {
		if stmt != nil {
			stmt.Accept(bv)
		}
	}
	return nil
}

// DumpVisitor creates an indented tree representation of the AST
type DumpVisitor struct {
	buffer        strings.Builder
	indent        int
	WithPositions bool
}

// NewDumpVisitor creates a new dump visitor
func NewDumpVisitor(withPositions bool) *DumpVisitor {
	return &DumpVisitor{WithPositions: withPositions}
}

// Dump returns the indented tree of node including positions
func Dump(node Node) string {
	dv := NewDumpVisitor(true)
	if node != nil {
		node.Accept(dv)
	}
	return dv.String()
}

// String returns the built tree
func (dv *DumpVisitor) String() string {
	return dv.buffer.String()
}

// Reset clears the internal buffer
func (dv *DumpVisitor) Reset() {
	dv.buffer.Reset()
	dv.indent = 0
}

func (dv *DumpVisitor) line(node Node, format string, args ...interface{}) {
	dv.buffer.WriteString(strings.Repeat("  ", dv.indent))
	dv.buffer.WriteString(fmt.Sprintf(format, args...))
	if dv.WithPositions && node.Position().IsValid() {
		dv.buffer.WriteString(" @" + node.Position().String())
	}
	dv.buffer.WriteString("\n")
}

func (dv *DumpVisitor) label(text string) {
	dv.buffer.WriteString(strings.Repeat("  ", dv.indent))
	dv.buffer.WriteString(text)
	dv.buffer.WriteString(":\n")
}

func (dv *DumpVisitor) children(nodes []Node) {
	dv.indent++
	for _, child := range nodes {
		if child == nil {
			dv.buffer.WriteString(strings.Repeat("  ", dv.indent) + "<nil>\n")
			continue
		}
		child.Accept(dv)
	}
	dv.indent--
}

func (dv *DumpVisitor) VisitVariableDefinition(node *VariableDefinition) interface{} {
	dv.line(node, "VariableDefinition %s", node.Name)
	dv.children([]Node{node.Value})
	return nil
}

func (dv *DumpVisitor) VisitFunctionDefinition(node *FunctionDefinition) interface{} {
	dv.line(node, "FunctionDefinition %s", node.Name)
	dv.indent++
	dv.label("Params")
	dv.children(node.Params)
	dv.label("Body")
	if node.Body != nil {
		dv.children([]Node{node.Body})
	}
	dv.indent--
	return nil
}

func (dv *DumpVisitor) VisitVariable(node *Variable) interface{} {
	dv.line(node, "Variable %s", node.Name)
	return nil
}

func (dv *DumpVisitor) VisitFunctionCall(node *FunctionCall) interface{} {
	dv.line(node, "FunctionCall %s", node.Name)
	dv.children(node.Args)
	return nil
}

func (dv *DumpVisitor) VisitStringLiteral(node *StringLiteral) interface{} {
	dv.line(node, "StringLiteral %q", node.Value)
	return nil
}

func (dv *DumpVisitor) VisitCompound(node *Compound) interface{} {
	dv.line(node, "Compound")
	dv.children(node.Statements)
	return nil
}
