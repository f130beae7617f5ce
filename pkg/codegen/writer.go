// Package codegen provides the text emission engine shared by every target
// language generator.
package codegen

import (
	"bytes"
	"fmt"
	"strings"
)

// DefaultIndent is the indent unit used when no WithIndent option is given.
const DefaultIndent = "\t"

// branch is one entry of the nesting stack. Indentation-only levels are
// recorded as multi-line branches.
type branch struct {
	oneLine bool
}

// Writer accumulates generated source text. It decides where line breaks and
// indentation go from the buffer contents and the branch stack, so callers
// only supply the text itself.
//
// A Writer is meant for a single generation pass and is not safe for
// concurrent use.
type Writer struct {
	lang     Language
	indent   string
	output   bytes.Buffer
	branches []branch
}

// Option configures a Writer.
type Option func(*Writer)

// WithIndent sets the indent unit repeated once per nesting level.
func WithIndent(unit string) Option {
	return func(w *Writer) {
		w.indent = unit
	}
}

// NewWriter creates a writer emitting brackets and comments for lang.
func NewWriter(lang Language, opts ...Option) *Writer {
	w := &Writer{
		lang:   lang,
		indent: DefaultIndent,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// String returns the text written so far.
func (w *Writer) String() string {
	return w.output.String()
}

// Result returns the generated text, or ErrUnbalanced if a branch or
// indentation level is still open.
func (w *Writer) Result() (string, error) {
	if d := w.Depth(); d != 0 {
		return w.String(), fmt.Errorf("%w: %d open level(s)", ErrUnbalanced, d)
	}
	return w.String(), nil
}

// Language returns the language the writer emits.
func (w *Writer) Language() Language {
	return w.lang
}

// Depth returns the current nesting depth.
func (w *Writer) Depth() int {
	return len(w.branches)
}

// WriteLine writes text on its own line at the current depth. Inside a
// one-line branch the text is appended to the current line instead.
func (w *Writer) WriteLine(text string) *Writer {
	if !w.inOneLineBranch() {
		w.breakLine()
		if text == "" {
			w.output.WriteByte('\n')
			return w
		}
	}
	w.writeIndentation()
	w.output.WriteString(text)
	return w
}

// WriteComment writes each line of comment through the language's comment
// format. An empty comment writes nothing.
func (w *Writer) WriteComment(comment string) *Writer {
	if comment == "" {
		return w
	}
	for _, line := range strings.Split(comment, "\n") {
		w.WriteLine(w.lang.FormatComment(strings.TrimSuffix(line, "\r")))
	}
	return w
}

// PushBranch opens a block. The block is still tracked when the language has
// no opening bracket, so indentation increases either way.
func (w *Writer) PushBranch(oneLine bool) *Writer {
	if open := w.lang.OpeningBracket(); open != "" {
		if !oneLine || w.lang.ClosingBracket() == "" {
			w.breakLine()
		}
		w.writeIndentation()
		w.output.WriteString(open)
	}
	w.push(branch{oneLine: oneLine})
	return w
}

// PopBranch closes the innermost block. It panics with ErrStackUnderflow when
// no block is open.
func (w *Writer) PopBranch() *Writer {
	b := w.pop("PopBranch")
	if closing := w.lang.ClosingBracket(); closing != "" {
		if !b.oneLine {
			w.breakLine()
		}
		w.writeIndentation()
		w.output.WriteString(closing)
	}
	return w
}

// PushIndentation adds a nesting level without writing a bracket.
func (w *Writer) PushIndentation() *Writer {
	w.push(branch{})
	return w
}

// PopIndentation removes a nesting level without writing a bracket. It panics
// with ErrStackUnderflow when no level is open.
func (w *Writer) PopIndentation() *Writer {
	w.pop("PopIndentation")
	return w
}

// Conditional calls fn when cond is true. It keeps optional output inside a
// call chain.
func (w *Writer) Conditional(cond bool, fn func(*Writer) *Writer) *Writer {
	if cond {
		return fn(w)
	}
	return w
}

// atLineStart reports whether the next byte starts a new physical line.
// An empty buffer counts as a line start.
func (w *Writer) atLineStart() bool {
	n := w.output.Len()
	return n == 0 || w.output.Bytes()[n-1] == '\n'
}

func (w *Writer) inOneLineBranch() bool {
	n := len(w.branches)
	return n > 0 && w.branches[n-1].oneLine
}

func (w *Writer) breakLine() {
	if !w.atLineStart() {
		w.output.WriteByte('\n')
	}
}

func (w *Writer) writeIndentation() {
	if !w.atLineStart() {
		return
	}
	for range w.branches {
		w.output.WriteString(w.indent)
	}
}

func (w *Writer) push(b branch) {
	w.branches = append(w.branches, b)
}

func (w *Writer) pop(op string) branch {
	n := len(w.branches)
	if n == 0 {
		panic(&UnderflowError{Op: op})
	}
	b := w.branches[n-1]
	w.branches = w.branches[:n-1]
	return b
}
