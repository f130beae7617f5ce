// Package lua provides the Lua generator for the Citizen scripting runtime.
// Blocks have no opening bracket and close with "end".
package lua

import (
	"strings"

	"github.com/nativedb/nativedb/pkg/codegen"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
)

func init() {
	generator.Register(New())
}

var escaper = generator.NewEscaper(generator.Suffix("_"),
	"and", "break", "do", "else", "elseif", "end", "false", "for", "function",
	"goto", "if", "in", "local", "nil", "not", "or", "repeat", "return", "then",
	"true", "until", "while",
)

// results maps return types to the Citizen result converter.
var results = map[string]string{
	"float":       "Citizen.ResultAsFloat()",
	"Vector3":     "Citizen.ResultAsVector()",
	"const char*": "Citizen.ResultAsString()",
	"char*":       "Citizen.ResultAsString()",
	"Hash":        "Citizen.ResultAsInteger()",
	"int":         "Citizen.ResultAsInteger()",
}

// pointers maps pointer base types to the Citizen out-value helper.
var pointers = map[string]string{
	"float":   "Citizen.PointerValueFloat()",
	"Vector3": "Citizen.PointerValueVector()",
}

// Generator emits Lua.
type Generator struct {
	codegen.Syntax
}

// New creates the Lua generator.
func New() *Generator {
	return &Generator{Syntax: codegen.Syntax{Close: "end", CommentPrefix: "-- "}}
}

// Name implements generator.Generator.
func (*Generator) Name() string { return "lua" }

// Label implements generator.Generator.
func (*Generator) Label() string { return "Lua" }

// Extension implements generator.Generator.
func (*Generator) Extension() string { return ".lua" }

// WriteNative implements generator.Generator. Pointer parameters are
// passed as Citizen out-values and dropped from the Lua signature.
func (g *Generator) WriteNative(w *codegen.Writer, n *natives.Native, opts generator.Options) {
	params := generator.Args(n.Params, func(_ int, p natives.Param) string {
		if isOut(p) {
			return ""
		}
		return escaper.Ident(p.Name)
	})
	decl := "function " + generator.Call(generator.FunctionName(n, generator.Pascal), params)

	generator.WriteHeader(w, n, opts)
	generator.WriteFunction(w, decl, body(n), opts.OneLineFunctions)
}

// WriteNamespace implements generator.Generator.
func (g *Generator) WriteNamespace(w *codegen.Writer, ns *natives.Namespace, opts generator.Options) {
	w.WriteComment(ns.Name).WriteLine("")
	generator.WriteEach(w, ns, opts, func(w *codegen.Writer, n *natives.Native) {
		g.WriteNative(w, n, opts)
	})
}

func isOut(p natives.Param) bool {
	return natives.IsPointer(p.Type) && !strings.Contains(p.Type, "char")
}

func body(n *natives.Native) string {
	args := make([]string, 0, len(n.Params)+2)
	args = append(args, n.Hash)
	for _, p := range n.Params {
		if !isOut(p) {
			args = append(args, escaper.Ident(p.Name))
			continue
		}
		if helper, ok := pointers[natives.BaseType(p.Type)]; ok {
			args = append(args, helper)
		} else {
			args = append(args, "Citizen.PointerValueInt()")
		}
	}
	if result, ok := results[n.ReturnType]; ok {
		args = append(args, result)
	}

	call := generator.Call("Citizen.InvokeNative", args...)
	if n.ReturnType == "void" {
		return call
	}
	return "return " + call
}
