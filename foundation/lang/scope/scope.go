// File: scope.go
// Title: Ember Scope
// Description: Chained symbol table handed to the parser and attached to
//              every node it builds. The parser never reads or writes it;
//              evaluators and tooling define and resolve names through it.
// Author: msto63
// Version: v0.2.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.2.0: Initial implementation

package scope

import (
	"fmt"
	"sort"
	"sync"
)

// SymbolKind tells what a name is bound to
type SymbolKind int

const (
	SymbolVariable SymbolKind = iota
	SymbolFunction
)

// String returns the string representation of the symbol kind
func (k SymbolKind) String() string {
	switch k {
	case SymbolVariable:
		return "variable"
	case SymbolFunction:
		return "function"
	default:
		return "unknown"
	}
}

// Symbol is one binding. Value is owned by whoever defined it, usually an
// AST node.
type Symbol struct {
	Name  string
	Kind  SymbolKind
	Value interface{}
}

// Scope is one level of a chain of symbol tables
type Scope struct {
	name  string
	outer *Scope

	mu      sync.RWMutex
	symbols map[string]Symbol
}

// New creates a scope nested in outer, which may be nil for a global scope
func New(outer *Scope, name string) *Scope {
	return &Scope{
		name:    name,
		outer:   outer,
		symbols: make(map[string]Symbol),
	}
}

// NewGlobal creates a root scope named "global"
func NewGlobal() *Scope {
	return New(nil, "global")
}

// Name returns the scope name
func (s *Scope) Name() string {
	return s.name
}

// Outer returns the enclosing scope, or nil
func (s *Scope) Outer() *Scope {
	return s.outer
}

// Define adds a symbol to this level only. Redefinition on the same level
// is an error; shadowing an outer name is not.
func (s *Scope) Define(sym Symbol) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.symbols[sym.Name]; ok {
		return fmt.Errorf("%s %q already defined in scope %q as %s",
			sym.Kind, sym.Name, s.name, existing.Kind)
	}
	s.symbols[sym.Name] = sym
	return nil
}

// Lookup resolves name from this scope outwards
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for current := s; current != nil; current = current.outer {
		if sym, ok := current.LookupLocal(name); ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// LookupLocal checks only this level
func (s *Scope) LookupLocal(name string) (Symbol, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sym, ok := s.symbols[name]
	return sym, ok
}

// Names returns the names defined on this level in sorted order
func (s *Scope) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.symbols))
	for name := range s.symbols {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Depth returns the number of enclosing scopes
func (s *Scope) Depth() int {
	depth := 0
	for current := s.outer; current != nil; current = current.outer {
		depth++
	}
	return depth
}
