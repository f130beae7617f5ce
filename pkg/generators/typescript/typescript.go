// Package typescript provides the TypeScript generator.
package typescript

import (
	"fmt"

	"github.com/nativedb/nativedb/pkg/codegen"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
)

func init() {
	generator.Register(New(), "ts", "javascript", "js")
}

var escaper = generator.NewEscaper(generator.Suffix("_"),
	"break", "case", "catch", "class", "const", "continue", "debugger", "default",
	"delete", "do", "else", "enum", "export", "extends", "false", "finally",
	"for", "function", "if", "import", "in", "instanceof", "let", "new", "null",
	"return", "super", "switch", "this", "throw", "true", "try", "typeof", "var",
	"void", "while", "with", "yield",
)

var types = map[string]string{
	"void":        "void",
	"BOOL":        "boolean",
	"Vector3":     "Vector3",
	"const char*": "string",
	"char*":       "string",
}

// Generator emits TypeScript.
type Generator struct {
	codegen.Syntax
}

// New creates the TypeScript generator.
func New() *Generator {
	return &Generator{Syntax: codegen.Syntax{Open: "{", Close: "}", CommentPrefix: "// "}}
}

// Name implements generator.Generator.
func (*Generator) Name() string { return "typescript" }

// Label implements generator.Generator.
func (*Generator) Label() string { return "TypeScript" }

// Extension implements generator.Generator.
func (*Generator) Extension() string { return ".ts" }

// Type maps a native type to TypeScript. Numbers, handles and pointers are
// all numbers on the script side.
func Type(t string) string {
	if mapped, ok := types[t]; ok {
		return mapped
	}
	return "number"
}

// WriteNative implements generator.Generator.
func (g *Generator) WriteNative(w *codegen.Writer, n *natives.Native, opts generator.Options) {
	params := generator.Args(n.Params, func(_ int, p natives.Param) string {
		return escaper.Ident(p.Name) + ": " + Type(p.Type)
	})
	decl := fmt.Sprintf("export function %s(%s): %s", generator.FunctionName(n, generator.Camel), params, Type(n.ReturnType))

	generator.WriteHeader(w, n, opts)
	generator.WriteFunction(w, decl, body(n), opts.OneLineFunctions)
}

// WriteNamespace implements generator.Generator.
func (g *Generator) WriteNamespace(w *codegen.Writer, ns *natives.Namespace, opts generator.Options) {
	w.WriteLine("export namespace " + generator.PascalCase(ns.Name)).PushBranch(false)
	generator.WriteEach(w, ns, opts, func(w *codegen.Writer, n *natives.Native) {
		g.WriteNative(w, n, opts)
	})
	w.PopBranch()
}

func body(n *natives.Native) string {
	args := make([]string, 0, len(n.Params)+1)
	args = append(args, "'"+n.Hash+"'")
	for _, p := range n.Params {
		args = append(args, escaper.Ident(p.Name))
	}

	ret := Type(n.ReturnType)
	if ret == "void" {
		return generator.Call("Citizen.invokeNative", args...) + ";"
	}
	return "return " + generator.Call(fmt.Sprintf("Citizen.invokeNative<%s>", ret), args...) + ";"
}
