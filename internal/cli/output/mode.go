// Package output renders command results for terminals, pipes and tools.
//
// A Renderer picks its format from an OutputMode. ModeAuto resolves to styled
// tables on a terminal and to markdown everywhere else, so piping a command
// into a file or another program yields plain text without escape codes.
package output

import "strings"

// OutputMode selects how results are written.
type OutputMode string

// Supported output modes.
const (
	ModeAuto     OutputMode = "auto"
	ModeText     OutputMode = "table"
	ModeJSON     OutputMode = "json"
	ModeCSV      OutputMode = "csv"
	ModeMarkdown OutputMode = "markdown"
	ModeYAML     OutputMode = "yaml"
)

// Modes lists every accepted mode name, for flag completion.
func Modes() []string {
	return []string{
		string(ModeAuto),
		string(ModeText),
		string(ModeJSON),
		string(ModeCSV),
		string(ModeMarkdown),
		string(ModeYAML),
	}
}

// Mode parses a configured output format. Unknown values fall back to ModeAuto.
func Mode(s string) OutputMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "table", "text":
		return ModeText
	case "json":
		return ModeJSON
	case "csv":
		return ModeCSV
	case "markdown", "md":
		return ModeMarkdown
	case "yaml", "yml":
		return ModeYAML
	default:
		return ModeAuto
	}
}
