package codegen

import (
	"errors"
	"fmt"
	"strings"
)

// Language supplies the syntax a Writer needs for one target language.
// An empty bracket means the language has no delimiter for that side of a block.
type Language interface {
	// OpeningBracket returns the text that opens a block, e.g. "{".
	OpeningBracket() string
	// ClosingBracket returns the text that closes a block, e.g. "}" or "end".
	ClosingBracket() string
	// FormatComment wraps a single line of comment text.
	FormatComment(line string) string
}

var (
	// ErrStackUnderflow is the panic cause when a branch or indentation level
	// is popped with none open.
	ErrStackUnderflow = errors.New("codegen: branch stack underflow")

	// ErrUnbalanced is returned by Writer.Result when levels are still open.
	ErrUnbalanced = errors.New("codegen: unbalanced branches")
)

// UnderflowError is the value PopBranch and PopIndentation panic with.
type UnderflowError struct {
	Op string
}

func (e *UnderflowError) Error() string {
	return fmt.Sprintf("%s: %s", ErrStackUnderflow, e.Op)
}

// Unwrap allows errors.Is(err, ErrStackUnderflow).
func (e *UnderflowError) Unwrap() error {
	return ErrStackUnderflow
}

// Syntax is a Language built from fixed strings.
type Syntax struct {
	Open          string
	Close         string
	CommentPrefix string
	CommentSuffix string
}

// OpeningBracket implements Language.
func (s Syntax) OpeningBracket() string { return s.Open }

// ClosingBracket implements Language.
func (s Syntax) ClosingBracket() string { return s.Close }

// FormatComment implements Language.
func (s Syntax) FormatComment(line string) string {
	if line == "" {
		return strings.TrimRight(s.CommentPrefix, " ") + s.CommentSuffix
	}
	return s.CommentPrefix + line + s.CommentSuffix
}

