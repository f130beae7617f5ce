// Package cpp provides the C++ generator. Natives become static inline
// wrappers around the script hook invoker inside one namespace per native
// namespace.
package cpp

import (
	"fmt"

	"github.com/nativedb/nativedb/pkg/codegen"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
)

func init() {
	generator.Register(New(), "c++", "cxx", "h")
}

var escaper = generator.NewEscaper(generator.Suffix("_"),
	"auto", "bool", "break", "case", "char", "class", "const", "default", "delete",
	"do", "double", "else", "enum", "explicit", "float", "for", "friend", "goto",
	"if", "int", "long", "namespace", "new", "operator", "private", "protected",
	"public", "register", "return", "short", "signed", "sizeof", "static",
	"struct", "switch", "template", "this", "throw", "typedef", "union",
	"unsigned", "using", "virtual", "void", "volatile", "while",
)

// Generator emits C++.
type Generator struct {
	codegen.Syntax
}

// New creates the C++ generator.
func New() *Generator {
	return &Generator{Syntax: codegen.Syntax{Open: "{", Close: "}", CommentPrefix: "// "}}
}

// Name implements generator.Generator.
func (*Generator) Name() string { return "cpp" }

// Label implements generator.Generator.
func (*Generator) Label() string { return "C++" }

// Extension implements generator.Generator.
func (*Generator) Extension() string { return ".hpp" }

// WriteNative implements generator.Generator.
func (g *Generator) WriteNative(w *codegen.Writer, n *natives.Native, opts generator.Options) {
	params := generator.Args(n.Params, func(_ int, p natives.Param) string {
		return p.Type + " " + escaper.Ident(p.Name)
	})
	decl := fmt.Sprintf("static %s %s(%s)", n.ReturnType, generator.FunctionName(n, generator.UpperSnake), params)

	generator.WriteHeader(w, n, opts)
	generator.WriteFunction(w, decl, body(n), opts.OneLineFunctions)
}

// WriteNamespace implements generator.Generator.
func (g *Generator) WriteNamespace(w *codegen.Writer, ns *natives.Namespace, opts generator.Options) {
	w.WriteLine("#pragma once").
		WriteLine("").
		WriteLine("namespace " + ns.Name).
		PushBranch(false)
	generator.WriteEach(w, ns, opts, func(w *codegen.Writer, n *natives.Native) {
		g.WriteNative(w, n, opts)
	})
	w.PopBranch()
}

func body(n *natives.Native) string {
	ret := n.ReturnType
	if ret == "void" {
		ret = "Void"
	}

	args := make([]string, 0, len(n.Params))
	for _, p := range n.Params {
		args = append(args, escaper.Ident(p.Name))
	}
	call := generator.Call(fmt.Sprintf("invoke<%s>", ret), append([]string{n.Hash}, args...)...) + ";"

	if n.ReturnType == "void" {
		return call
	}
	return "return " + call
}
