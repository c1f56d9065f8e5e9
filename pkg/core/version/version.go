// ============================================================================
// Ember - language front end
// ============================================================================
//
// Package:     version
// Description: Central version management for the Ember tools
// Author:      msto63
// Created:     2025-12-06
// License:     MIT
// ============================================================================

package version

import "fmt"

// Version constants for the Ember components
const (
	// Release version of the ember command
	Release = "0.2.0"

	// Component versions
	Language = "0.2.0"
	Journal  = "0.1.0"
)

// Build metadata, set with -ldflags "-X github.com/msto63/ember/pkg/core/version.Commit=..."
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// ComponentVersion returns the version for a given component name
func ComponentVersion(name string) string {
	switch name {
	case "language", "lang":
		return Language
	case "journal":
		return Journal
	default:
		return Release
	}
}

// String returns the full version line printed by the version command
func String() string {
	return fmt.Sprintf("ember %s (language %s, journal schema %s, commit %s, built %s)",
		Release, Language, Journal, Commit, BuildDate)
}
