// Package output renders command results for terminals, agents and scripts.
//
// A Renderer writes in one of three concrete modes. ModeAuto picks styled
// text on a terminal and Markdown everywhere else, so piped output stays
// readable without escape codes.
package output

import "strings"

// Mode selects how results are rendered.
type Mode string

// Output modes.
const (
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// Modes lists the accepted values of --output.
func Modes() []string {
	return []string{string(ModeAuto), string(ModeText), string(ModeMarkdown), string(ModeJSON)}
}

// normalize maps aliases and unknown values onto a known mode.
func (m Mode) normalize() Mode {
	switch strings.ToLower(strings.TrimSpace(string(m))) {
	case "text", "txt":
		return ModeText
	case "markdown", "md":
		return ModeMarkdown
	case "json":
		return ModeJSON
	default:
		return ModeAuto
	}
}
