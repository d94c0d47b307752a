// Package detector provides environment detection for output mode selection.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode represents the rendering mode for route output.
type OutputMode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto OutputMode = iota
	// ModeTable renders human-readable route tables.
	ModeTable
	// ModeJSON renders machine-readable JSON for scripting and CI.
	ModeJSON
)

// DetectEnvironment returns the recommended output mode based on the
// environment. Interactive terminals get tables; pipes and CI get JSON.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModeJSON
	}
	return ModeTable
}

// ResolveMode applies the user override flag to auto-detection.
// userFlag should be one of: "auto", "table", "json", "ci", or empty.
func ResolveMode(autoDetected OutputMode, userFlag string) OutputMode {
	switch userFlag {
	case "table":
		return ModeTable
	case "json", "ci":
		return ModeJSON
	case "auto", "":
		return autoDetected
	default:
		return autoDetected
	}
}
