// Package ast defines the abstract syntax tree produced by the Ember parser.
//
// Package: ast
// Title: Ember Abstract Syntax Tree
// Description: Six node variants form a closed sum type. Every node keeps
//              its source position and a non-owning reference to the scope
//              it was parsed in. Utilities print trees back to canonical
//              source or tokens, compare them structurally, dump and export
//              them, and collect statistics.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial AST package
// - 2026-10-18 v0.2.0: Ember node set and utilities
//
// Usage:
//
//	root, _ := parser.New(lexer.New(src), parser.Options{}).Parse(scope.NewGlobal())
//	fmt.Println(ast.Dump(root))
//	fmt.Println(ast.Print(root))
//
//	ast.Walk(root, func(n ast.Node) bool {
//		if call, ok := n.(*ast.FunctionCall); ok {
//			fmt.Println("call of", call.Name)
//		}
//		return true
//	})
package ast
