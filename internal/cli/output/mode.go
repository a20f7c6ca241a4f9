// Package output renders command results for terminals and scripts.
//
// In auto mode a terminal gets styled text and anything else (pipes, files,
// agents) gets JSON.
package output

import "strings"

// OutputMode selects how results are rendered.
type OutputMode string

// Output modes
const (
	ModeAuto OutputMode = "auto"
	ModeText OutputMode = "text"
	ModeJSON OutputMode = "json"
	ModeYAML OutputMode = "yaml"
)

// Mode converts a configured output string into an OutputMode.
// Unknown or empty values fall back to ModeAuto.
func Mode(s string) OutputMode {
	switch m := OutputMode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeText, ModeJSON, ModeYAML:
		return m
	default:
		return ModeAuto
	}
}
