// Package stringx provides the small string helpers shared by the Ember
// engine and CLI.
//
// Package: stringx
// Title: String Utilities
// Description: Unicode-aware helpers for blank checks, truncation, padding
//              and source-line extraction used when rendering diagnostics.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-18 v0.2.0: Trimmed to diagnostic helpers, added LineAt and Caret
package stringx
