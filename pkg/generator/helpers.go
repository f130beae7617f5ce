package generator

import (
	"strings"

	"github.com/nativedb/nativedb/pkg/codegen"
	"github.com/nativedb/nativedb/pkg/natives"
)

// HashLine returns "<hash> <jhash> b<build>", skipping empty parts.
func HashLine(n *natives.Native) string {
	parts := []string{n.Hash}
	if n.JHash != "" {
		parts = append(parts, n.JHash)
	}
	if n.Build != "" {
		parts = append(parts, "b"+n.Build)
	}
	return strings.Join(parts, " ")
}

// WriteHeader writes the hash line and the documentation comment enabled by opts.
func WriteHeader(w *codegen.Writer, n *natives.Native, opts Options) *codegen.Writer {
	return w.
		Conditional(opts.Hashes, func(w *codegen.Writer) *codegen.Writer {
			return w.WriteComment(HashLine(n))
		}).
		Conditional(opts.Comments, func(w *codegen.Writer) *codegen.Writer {
			return w.WriteComment(n.Comment)
		})
}

// WriteFunction writes decl followed by a block holding body. With oneLine
// the block stays on the declaration line, spaced for the language's brackets.
func WriteFunction(w *codegen.Writer, decl, body string, oneLine bool) *codegen.Writer {
	if !oneLine {
		return w.WriteLine(decl).PushBranch(false).WriteLine(body).PopBranch()
	}

	lang := w.Language()
	if lang.OpeningBracket() != "" {
		decl += " "
	}
	body = " " + body
	if lang.ClosingBracket() != "" {
		body += " "
	}
	return w.WriteLine(decl).PushBranch(true).WriteLine(body).PopBranch()
}

// Natives returns the natives of ns that opts allows.
func Natives(ns *natives.Namespace, opts Options) []*natives.Native {
	if opts.Unnamed {
		return ns.Natives
	}
	out := make([]*natives.Native, 0, len(ns.Natives))
	for _, n := range ns.Natives {
		if n.IsNamed() {
			out = append(out, n)
		}
	}
	return out
}

// WriteEach writes every native of ns allowed by opts with write, separating
// multi-line functions by a blank line.
func WriteEach(w *codegen.Writer, ns *natives.Namespace, opts Options, write func(w *codegen.Writer, n *natives.Native)) *codegen.Writer {
	for i, n := range Natives(ns, opts) {
		if i > 0 && !opts.OneLineFunctions {
			w.WriteLine("")
		}
		write(w, n)
	}
	return w
}

// Args joins params rendered by fn with ", ".
func Args(params []natives.Param, fn func(i int, p natives.Param) string) string {
	parts := make([]string, 0, len(params))
	for i, p := range params {
		if s := fn(i, p); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, ", ")
}

// Call renders "fn(first, rest...)" leaving out empty arguments.
func Call(fn string, args ...string) string {
	kept := make([]string, 0, len(args))
	for _, a := range args {
		if a != "" {
			kept = append(kept, a)
		}
	}
	return fn + "(" + strings.Join(kept, ", ") + ")"
}
