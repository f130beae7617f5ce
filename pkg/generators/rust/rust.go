// Package rust provides the Rust generator. Natives become unsafe functions
// calling the invoke! macro, grouped in one module per namespace.
package rust

import (
	"fmt"
	"strings"

	"github.com/nativedb/nativedb/pkg/codegen"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
)

func init() {
	generator.Register(New(), "rs")
}

var escaper = generator.NewEscaper(generator.Prefix("r#"),
	"as", "async", "await", "box", "break", "const", "continue", "dyn", "else",
	"enum", "extern", "false", "fn", "for", "if", "impl", "in", "let", "loop",
	"match", "mod", "move", "mut", "pub", "ref", "return", "static", "struct",
	"trait", "true", "type", "unsafe", "use", "where", "while", "yield",
)

var types = map[string]string{
	"void":        "()",
	"BOOL":        "bool",
	"int":         "i32",
	"float":       "f32",
	"Hash":        "u32",
	"Any":         "u32",
	"const char*": "*const c_char",
	"char*":       "*const c_char",
}

// Generator emits Rust.
type Generator struct {
	codegen.Syntax
}

// New creates the Rust generator.
func New() *Generator {
	return &Generator{Syntax: codegen.Syntax{Open: "{", Close: "}", CommentPrefix: "/// "}}
}

// Name implements generator.Generator.
func (*Generator) Name() string { return "rust" }

// Label implements generator.Generator.
func (*Generator) Label() string { return "Rust" }

// Extension implements generator.Generator.
func (*Generator) Extension() string { return ".rs" }

// Type maps a native type to Rust. Other script types keep their name and
// are expected to be type aliases in the consuming crate.
func Type(t string) string {
	if mapped, ok := types[t]; ok {
		return mapped
	}
	if natives.IsPointer(t) {
		return "*mut " + Type(natives.BaseType(t))
	}
	return strings.TrimSpace(t)
}

// WriteNative implements generator.Generator.
func (g *Generator) WriteNative(w *codegen.Writer, n *natives.Native, opts generator.Options) {
	params := generator.Args(n.Params, func(_ int, p natives.Param) string {
		return paramName(p) + ": " + Type(p.Type)
	})

	decl := fmt.Sprintf("pub unsafe fn %s(%s)", strings.ToLower(generator.FunctionName(n, generator.Snake)), params)
	if ret := Type(n.ReturnType); ret != "()" {
		decl += " -> " + ret
	}

	generator.WriteHeader(w, n, opts)
	generator.WriteFunction(w, decl, body(n), opts.OneLineFunctions)
}

// WriteNamespace implements generator.Generator.
func (g *Generator) WriteNamespace(w *codegen.Writer, ns *natives.Namespace, opts generator.Options) {
	w.WriteLine("pub mod " + strings.ToLower(ns.Name)).
		PushBranch(false).
		WriteLine("use super::*;").
		WriteLine("")
	generator.WriteEach(w, ns, opts, func(w *codegen.Writer, n *natives.Native) {
		g.WriteNative(w, n, opts)
	})
	w.PopBranch()
}

func paramName(p natives.Param) string {
	return escaper.Ident(generator.SnakeCase(p.Name))
}

func body(n *natives.Native) string {
	args := make([]string, 0, len(n.Params)+2)
	args = append(args, Type(n.ReturnType), n.Hash)
	for _, p := range n.Params {
		args = append(args, paramName(p))
	}
	return generator.Call("invoke!", args...)
}
