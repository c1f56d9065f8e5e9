// File: stringx_test.go
// Title: String Utility Tests
// Description: Table tests for the string helpers.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation
// - 2026-10-18 v0.2.0: Tests for LineAt and Caret

package stringx

import "testing"

func TestIsBlank(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"", true},
		{"   ", true},
		{"\t\n\r ", true},
		{" ", true},
		{" a ", false},
	}

	for _, tt := range tests {
		if got := IsBlank(tt.input); got != tt.want {
			t.Errorf("IsBlank(%q) = %v, want %v", tt.input, got, tt.want)
		}
		if got := IsNotBlank(tt.input); got == tt.want {
			t.Errorf("IsNotBlank(%q) = %v, want %v", tt.input, got, !tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		ellipsis string
		want     string
	}{
		{"fits", "hello", 10, "...", "hello"},
		{"cut", "hello world", 8, "...", "hello..."},
		{"unicode", "grüße aus köln", 7, "…", "grüße …"},
		{"ellipsis too long", "abcdef", 2, "...", "ab"},
		{"zero", "abc", 0, "...", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Truncate(tt.input, tt.maxLen, tt.ellipsis); got != tt.want {
				t.Errorf("Truncate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPadRight(t *testing.T) {
	if got := PadRight("ab", 5, '.'); got != "ab..." {
		t.Errorf("PadRight() = %q, want %q", got, "ab...")
	}
	if got := PadRight("äb", 3, ' '); got != "äb " {
		t.Errorf("PadRight() = %q, want %q", got, "äb ")
	}
	if got := PadRight("abcdef", 3, ' '); got != "abcdef" {
		t.Errorf("PadRight() = %q, want unchanged", got)
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\r\nb\rc\nd")
	want := []string{"a", "b", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("SplitLines() = %q, want %q", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitLines()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLineAt(t *testing.T) {
	src := "var a = \"x\";\nfoo(a)\n"

	if line, ok := LineAt(src, 2); !ok || line != "foo(a)" {
		t.Errorf("LineAt(2) = %q, %v", line, ok)
	}
	if _, ok := LineAt(src, 0); ok {
		t.Error("LineAt(0) should fail")
	}
	if _, ok := LineAt(src, 4); ok {
		t.Error("LineAt(4) should fail")
	}
}

func TestCaret(t *testing.T) {
	tests := []struct {
		line   string
		column int
		want   string
	}{
		{"foo()", 5, "    ^"},
		{"foo()", 1, "^"},
		{"\tfoo()", 3, "\t ^"},
		{"ab", 5, "    ^"},
		{"ab", 0, "^"},
	}

	for _, tt := range tests {
		if got := Caret(tt.line, tt.column); got != tt.want {
			t.Errorf("Caret(%q, %d) = %q, want %q", tt.line, tt.column, got, tt.want)
		}
	}
}

func TestFirstNonBlank(t *testing.T) {
	if got := FirstNonBlank("", "  ", "ember.toml", "x"); got != "ember.toml" {
		t.Errorf("FirstNonBlank() = %q, want ember.toml", got)
	}
	if got := FirstNonBlank(" "); got != "" {
		t.Errorf("FirstNonBlank() = %q, want empty", got)
	}
}
