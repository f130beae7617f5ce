// Package generator defines the contract every target language generator
// implements, the registry generators add themselves to, and the helpers
// they share.
package generator

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nativedb/nativedb/pkg/codegen"
	"github.com/nativedb/nativedb/pkg/natives"
)

// ErrUnknownLanguage is returned when no generator is registered for a name.
var ErrUnknownLanguage = errors.New("unknown language")

// Generator emits source for natives in one target language.
type Generator interface {
	codegen.Language

	// Name is the registry key, e.g. "cpp".
	Name() string
	// Label is the human readable language name, e.g. "C++".
	Label() string
	// Extension is the file extension for exported files, including the dot.
	Extension() string

	// WriteNative emits the wrapper for a single native.
	WriteNative(w *codegen.Writer, n *natives.Native, opts Options)
	// WriteNamespace emits every native of a namespace as one file.
	WriteNamespace(w *codegen.Writer, ns *natives.Namespace, opts Options)
}

// Options controls what generators emit.
type Options struct {
	// Indent is the indent unit. Empty means codegen.DefaultIndent.
	Indent string `json:"indent"`
	// Comments emits the native's documentation comment.
	Comments bool `json:"comments"`
	// Hashes emits a comment with the native's hashes and build.
	Hashes bool `json:"hashes"`
	// OneLineFunctions renders function bodies on the declaration line.
	OneLineFunctions bool `json:"one_line_functions"`
	// Unnamed includes natives without a known name in namespace output.
	Unnamed bool `json:"unnamed"`
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Indent:   codegen.DefaultIndent,
		Comments: true,
		Unnamed:  true,
	}
}

func (o Options) indent() string {
	if o.Indent == "" {
		return codegen.DefaultIndent
	}
	return o.Indent
}

// NewWriter creates a writer for g configured from opts.
func NewWriter(g Generator, opts Options) *codegen.Writer {
	return codegen.NewWriter(g, codegen.WithIndent(opts.indent()))
}

// RenderNative returns the source for a single native.
func RenderNative(g Generator, n *natives.Native, opts Options) (string, error) {
	return render(g, opts, func(w *codegen.Writer) {
		g.WriteNative(w, n, opts)
	})
}

// RenderNamespace returns the source for a whole namespace.
func RenderNamespace(g Generator, ns *natives.Namespace, opts Options) (string, error) {
	return render(g, opts, func(w *codegen.Writer) {
		g.WriteNamespace(w, ns, opts)
	})
}

// render runs fn against a fresh writer. Unbalanced branches in a generator
// are reported as errors instead of crashing the caller.
func render(g Generator, opts Options, fn func(w *codegen.Writer)) (out string, err error) {
	w := NewWriter(g, opts)

	defer func() {
		if r := recover(); r != nil {
			perr, ok := r.(error)
			if !ok || !errors.Is(perr, codegen.ErrStackUnderflow) {
				panic(r)
			}
			out, err = "", fmt.Errorf("%s generator: %w", g.Name(), perr)
		}
	}()

	fn(w)

	result, err := w.Result()
	if err != nil {
		return "", fmt.Errorf("%s generator: %w", g.Name(), err)
	}
	return strings.TrimRight(result, "\n") + "\n", nil
}
