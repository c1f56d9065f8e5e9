// File: stringx.go
// Title: Core String Utility Functions
// Description: Blank checks, rune-safe truncation and padding, and helpers
//              that cut a single line out of a source text and point at a
//              column in it.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core utilities
// - 2026-10-18 v0.2.0: Diagnostic helpers, dropped unused utilities

package stringx

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsBlank returns true if the string is empty or contains only whitespace.
func IsBlank(s string) bool {
	for _, r := range s {
		if !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// IsNotBlank is the inverse of IsBlank.
func IsNotBlank(s string) bool {
	return !IsBlank(s)
}

// Truncate shortens s to maxLen runes, ending with ellipsis when cut.
// Multi-byte characters are never split.
func Truncate(s string, maxLen int, ellipsis string) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}

	ellipsisLen := utf8.RuneCountInString(ellipsis)
	if ellipsisLen >= maxLen {
		return string([]rune(s)[:maxLen])
	}

	return string([]rune(s)[:maxLen-ellipsisLen]) + ellipsis
}

// PadRight pads s with pad up to width runes. Longer strings are returned
// unchanged.
func PadRight(s string, width int, pad rune) string {
	n := utf8.RuneCountInString(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(string(pad), width-n)
}

// SplitLines splits s into lines, accepting \n, \r\n and \r endings.
func SplitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

// LineAt returns the 1-based line n of s, or false when s has fewer lines.
func LineAt(s string, n int) (string, bool) {
	if n < 1 {
		return "", false
	}
	lines := SplitLines(s)
	if n > len(lines) {
		return "", false
	}
	return lines[n-1], true
}

// Caret returns a marker line with '^' under the 1-based column of line.
// Tabs before the column are kept so the marker lines up in a terminal.
func Caret(line string, column int) string {
	if column < 1 {
		column = 1
	}

	var b strings.Builder
	i := 1
	for _, r := range line {
		if i >= column {
			break
		}
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteRune(' ')
		}
		i++
	}
	for ; i < column; i++ {
		b.WriteRune(' ')
	}
	b.WriteRune('^')
	return b.String()
}

// FirstNonBlank returns the first non-blank argument, or "".
func FirstNonBlank(values ...string) string {
	for _, s := range values {
		if IsNotBlank(s) {
			return s
		}
	}
	return ""
}
