// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors and the default severity
//              derived from an error code.
// Author: msto63
// Version: v0.2.0
// Created: 2025-01-24
// Modified: 2026-10-18
//
// Change History:
// - 2025-01-24 v0.1.0: Initial implementation with four severity levels
// - 2026-10-18 v0.2.0: Code mapping for the language front end

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow covers problems in user input, such as a syntax error in a
	// source file
	SeverityLow Severity = iota

	// SeverityMedium covers failures with a workaround
	SeverityMedium

	// SeverityHigh covers failures of a subsystem such as the journal database
	SeverityHigh

	// SeverityCritical covers failures that leave the process unusable
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// ShouldAlert returns true if this severity level should trigger alerts
func (s Severity) ShouldAlert() bool {
	return s >= SeverityHigh
}

// GetSeverityFromCode determines appropriate severity level based on error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeStorageError, CodeConfigError:
		return SeverityHigh
	case CodeSyntax, CodeUnexpectedToken, CodeInputTooLarge, CodeInvalidTree,
		CodeInvalidInput, CodeNotFound, CodeInvalidConfig, CodeCancelled:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
