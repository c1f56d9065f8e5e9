// Package error provides structured, coded errors for the Ember front end.
//
// Package: error
// Title: Ember Error Handling
// Description: Structured errors with codes, severities, operation names and
//              key/value details. Parser failures are wrapped into these
//              errors at the host boundary so callers can branch on a code
//              while errors.As still reaches the underlying parse error.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with contextual errors and codes
// - 2026-10-18 v0.2.0: Codes reworked for the Ember lexer, parser and journal
//
// Usage:
//   import mdwerror "github.com/msto63/ember/foundation/core/error"
//
//   err := mdwerror.Wrap(parseErr, "parse failed").
//     WithCode(mdwerror.CodeSyntax).
//     WithOperation("lang.Parse").
//     WithDetail("line", 3)
//
//   if mdwerror.HasCode(err, mdwerror.CodeSyntax) {
//     // report a diagnostic instead of an internal failure
//   }
package error
