// Package lang is the entry point to the Ember language front end.
//
// Package: lang
// Title: Ember Language Engine
// Description: Wraps the lexer and the recursive-descent parser behind an
//              Engine that enforces input limits, logs every run and reports
//              failures as coded errors. Subpackages hold the building
//              blocks: token, lexer, scope, ast and parser.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-25
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-25 v0.1.0: Initial language package
// - 2026-10-18 v0.2.0: Ember engine
//
// Usage:
//
//	engine, err := lang.New(lang.Options{Logger: logger})
//	if err != nil {
//		return err
//	}
//
//	root, err := engine.Parse(ctx, "main.em", `print("hello")`, nil)
//	if err != nil {
//		d := lang.Diagnose(err, source)
//		fmt.Printf("%s:%d:%d %s\n%s\n%s\n", d.Source, d.Line, d.Column, d.Message, d.Excerpt, d.Caret)
//		return err
//	}
//	fmt.Println(ast.Dump(root))
package lang
