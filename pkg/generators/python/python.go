// Package python provides the Python generator. Python blocks have no
// brackets at all, so nesting is carried by indentation alone.
package python

import (
	"fmt"

	"github.com/nativedb/nativedb/pkg/codegen"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
)

func init() {
	generator.Register(New(), "py")
}

var escaper = generator.NewEscaper(generator.Suffix("_"),
	"False", "None", "True", "and", "as", "assert", "async", "await", "break",
	"class", "continue", "def", "del", "elif", "else", "except", "finally",
	"for", "from", "global", "if", "import", "in", "is", "lambda", "nonlocal",
	"not", "or", "pass", "raise", "return", "try", "while", "with", "yield",
)

var types = map[string]string{
	"void":        "None",
	"BOOL":        "bool",
	"float":       "float",
	"Vector3":     "Vector3",
	"const char*": "str",
	"char*":       "str",
}

// Generator emits Python.
type Generator struct {
	codegen.Syntax
}

// New creates the Python generator.
func New() *Generator {
	return &Generator{Syntax: codegen.Syntax{CommentPrefix: "# "}}
}

// Name implements generator.Generator.
func (*Generator) Name() string { return "python" }

// Label implements generator.Generator.
func (*Generator) Label() string { return "Python" }

// Extension implements generator.Generator.
func (*Generator) Extension() string { return ".py" }

// Type maps a native type to a Python annotation.
func Type(t string) string {
	if mapped, ok := types[t]; ok {
		return mapped
	}
	return "int"
}

// WriteNative implements generator.Generator.
func (g *Generator) WriteNative(w *codegen.Writer, n *natives.Native, opts generator.Options) {
	generator.WriteHeader(w, n, opts)
	writeDef(w, n, opts)
}

// WriteNamespace implements generator.Generator. Natives become static
// methods of a class named after the namespace.
func (g *Generator) WriteNamespace(w *codegen.Writer, ns *natives.Namespace, opts generator.Options) {
	w.WriteLine("from natives.invoker import invoke, Vector3").
		WriteLine("").
		WriteLine("").
		WriteLine("class " + ns.Name + ":").
		PushBranch(false)
	if len(generator.Natives(ns, opts)) == 0 {
		// A class needs at least one statement.
		w.WriteLine("pass")
	}
	generator.WriteEach(w, ns, opts, func(w *codegen.Writer, n *natives.Native) {
		generator.WriteHeader(w, n, opts)
		w.WriteLine("@staticmethod")
		writeDef(w, n, opts)
	})
	w.PopBranch()
}

// writeDef writes the function definition without its comments.
func writeDef(w *codegen.Writer, n *natives.Native, opts generator.Options) {
	params := generator.Args(n.Params, func(_ int, p natives.Param) string {
		return paramName(p) + ": " + Type(p.Type)
	})
	decl := fmt.Sprintf("def %s(%s) -> %s:", generator.FunctionName(n, generator.Snake), params, Type(n.ReturnType))
	generator.WriteFunction(w, decl, body(n), opts.OneLineFunctions)
}

func paramName(p natives.Param) string {
	return escaper.Ident(generator.SnakeCase(p.Name))
}

func body(n *natives.Native) string {
	args := make([]string, 0, len(n.Params)+1)
	args = append(args, n.Hash)
	for _, p := range n.Params {
		args = append(args, paramName(p))
	}

	call := generator.Call("invoke", args...)
	if n.ReturnType == "void" {
		return call
	}
	return "return " + call
}
