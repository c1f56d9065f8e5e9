// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used across the Ember front end and
//              maps them to a category, a default severity and a process
//              exit status for the CLI.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with core error codes
// - 2026-10-18 v0.2.0: Language front-end codes, exit status mapping

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeCancelled    Code = "CANCELLED"

	// Language front end
	CodeSyntax          Code = "SYNTAX"
	CodeUnexpectedToken Code = "UNEXPECTED_TOKEN"
	CodeInputTooLarge   Code = "INPUT_TOO_LARGE"
	CodeInvalidTree     Code = "INVALID_TREE"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Storage
	CodeStorageError Code = "STORAGE_ERROR"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeCancelled,
		CodeSyntax, CodeUnexpectedToken, CodeInputTooLarge, CodeInvalidTree,
		CodeConfigError, CodeInvalidConfig,
		CodeStorageError:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeSyntax, CodeUnexpectedToken, CodeInputTooLarge, CodeInvalidTree:
		return "language"
	case CodeConfigError, CodeInvalidConfig:
		return "configuration"
	case CodeStorageError:
		return "storage"
	default:
		return "generic"
	}
}

// ExitStatus returns the process exit status the CLI uses for this code.
// Source errors exit with 1, usage and configuration problems with 2,
// everything else with 3.
func (c Code) ExitStatus() int {
	switch c {
	case CodeSyntax, CodeUnexpectedToken, CodeInputTooLarge, CodeInvalidTree:
		return 1
	case CodeInvalidInput, CodeNotFound, CodeConfigError, CodeInvalidConfig:
		return 2
	default:
		return 3
	}
}
