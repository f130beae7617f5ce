// Package csharp provides the C# generator targeting the
// Function.Call invoker. Each native namespace becomes a static class.
package csharp

import (
	"fmt"

	"github.com/nativedb/nativedb/pkg/codegen"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
)

func init() {
	generator.Register(New(), "c#", "cs")
}

var escaper = generator.NewEscaper(generator.Prefix("@"),
	"abstract", "as", "base", "bool", "break", "byte", "case", "catch", "char",
	"checked", "class", "const", "continue", "decimal", "default", "delegate",
	"do", "double", "else", "enum", "event", "explicit", "extern", "false",
	"finally", "fixed", "float", "for", "foreach", "goto", "if", "implicit",
	"in", "int", "interface", "internal", "is", "lock", "long", "namespace",
	"new", "null", "object", "operator", "out", "override", "params", "private",
	"protected", "public", "readonly", "ref", "return", "sbyte", "sealed",
	"short", "sizeof", "stackalloc", "static", "string", "struct", "switch",
	"this", "throw", "true", "try", "typeof", "uint", "ulong", "unchecked",
	"unsafe", "ushort", "using", "virtual", "void", "volatile", "while",
)

var types = map[string]string{
	"void":        "void",
	"BOOL":        "bool",
	"int":         "int",
	"float":       "float",
	"Hash":        "uint",
	"Vector3":     "Vector3",
	"const char*": "string",
	"char*":       "string",
}

// Generator emits C#.
type Generator struct {
	codegen.Syntax
}

// New creates the C# generator.
func New() *Generator {
	return &Generator{Syntax: codegen.Syntax{Open: "{", Close: "}", CommentPrefix: "/// "}}
}

// Name implements generator.Generator.
func (*Generator) Name() string { return "csharp" }

// Label implements generator.Generator.
func (*Generator) Label() string { return "C#" }

// Extension implements generator.Generator.
func (*Generator) Extension() string { return ".cs" }

// Type maps a native type to its C# equivalent. Pointers become
// OutputArgument and script handles become int.
func Type(t string) string {
	if mapped, ok := types[t]; ok {
		return mapped
	}
	if natives.IsPointer(t) {
		return "OutputArgument"
	}
	return "int"
}

// WriteNative implements generator.Generator.
func (g *Generator) WriteNative(w *codegen.Writer, n *natives.Native, opts generator.Options) {
	params := generator.Args(n.Params, func(_ int, p natives.Param) string {
		return Type(p.Type) + " " + escaper.Ident(p.Name)
	})
	decl := fmt.Sprintf("public static %s %s(%s)", Type(n.ReturnType), generator.FunctionName(n, generator.Pascal), params)

	w.Conditional(opts.Comments && n.Comment != "", func(w *codegen.Writer) *codegen.Writer {
		return w.WriteComment("<summary>\n" + n.Comment + "\n</summary>")
	})
	w.Conditional(opts.Hashes, func(w *codegen.Writer) *codegen.Writer {
		return w.WriteComment("<remarks>" + generator.HashLine(n) + "</remarks>")
	})
	generator.WriteFunction(w, decl, body(n), opts.OneLineFunctions)
}

// WriteNamespace implements generator.Generator.
func (g *Generator) WriteNamespace(w *codegen.Writer, ns *natives.Namespace, opts generator.Options) {
	w.WriteLine("using GTA;").
		WriteLine("using GTA.Math;").
		WriteLine("using GTA.Native;").
		WriteLine("").
		WriteLine("namespace Natives").
		PushBranch(false).
		WriteLine("public static class " + generator.PascalCase(ns.Name)).
		PushBranch(false)
	generator.WriteEach(w, ns, opts, func(w *codegen.Writer, n *natives.Native) {
		g.WriteNative(w, n, opts)
	})
	w.PopBranch().PopBranch()
}

func body(n *natives.Native) string {
	args := make([]string, 0, len(n.Params)+1)
	args = append(args, "(Hash)"+n.Hash)
	for _, p := range n.Params {
		args = append(args, escaper.Ident(p.Name))
	}

	ret := Type(n.ReturnType)
	if ret == "void" {
		return generator.Call("Function.Call", args...) + ";"
	}
	return "return " + generator.Call(fmt.Sprintf("Function.Call<%s>", ret), args...) + ";"
}
