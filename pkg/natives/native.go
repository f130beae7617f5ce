// Package natives holds the native function database: the data model, the
// JSON/YAML loader and the lookups the tools run against it.
package natives

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a native, namespace or type does not exist.
var ErrNotFound = errors.New("not found")

// Param is a single native parameter.
type Param struct {
	Type string `json:"type" yaml:"type"`
	Name string `json:"name" yaml:"name"`
}

// Native is one entry of the database.
type Native struct {
	Namespace  string   `json:"namespace" yaml:"-"`
	Hash       string   `json:"hash" yaml:"-"`
	Name       string   `json:"name" yaml:"name"`
	JHash      string   `json:"jhash,omitempty" yaml:"jhash"`
	Comment    string   `json:"comment,omitempty" yaml:"comment"`
	Params     []Param  `json:"params" yaml:"params"`
	ReturnType string   `json:"return_type" yaml:"return_type"`
	Build      string   `json:"build,omitempty" yaml:"build"`
	OldNames   []string `json:"old_names,omitempty" yaml:"old_names"`
	Unused     bool     `json:"unused,omitempty" yaml:"unused"`
}

// IsNamed reports whether the native has a known name. Unknown natives are
// stored either without a name or with a placeholder starting with "_0x".
func (n *Native) IsNamed() bool {
	return n.Name != "" && !strings.HasPrefix(n.Name, "_0x")
}

// DisplayName returns the name used for generated identifiers.
func (n *Native) DisplayName() string {
	if n.IsNamed() {
		return n.Name
	}
	return "N_" + strings.ToLower(n.Hash)
}

// Signature returns the C-style declaration, e.g. "Ped GET_PLAYER_PED(Player player)".
func (n *Native) Signature() string {
	var sb strings.Builder
	sb.WriteString(n.ReturnType)
	sb.WriteByte(' ')
	sb.WriteString(n.DisplayName())
	sb.WriteByte('(')
	for i, p := range n.Params {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(p.Type)
		sb.WriteByte(' ')
		sb.WriteString(p.Name)
	}
	sb.WriteByte(')')
	return sb.String()
}

// Namespace groups natives, ordered by display name.
type Namespace struct {
	Name    string    `json:"name"`
	Natives []*Native `json:"natives"`
}

// NormalizeHash returns hash as "0x" followed by upper-case hex digits.
func NormalizeHash(hash string) string {
	h := strings.TrimSpace(hash)
	if len(h) >= 2 && (h[:2] == "0x" || h[:2] == "0X") {
		h = h[2:]
	}
	return "0x" + strings.ToUpper(h)
}

// BaseType strips qualifiers and pointers, e.g. "const char*" becomes "char".
func BaseType(t string) string {
	t = strings.TrimSpace(t)
	t = strings.TrimPrefix(t, "const ")
	t = strings.TrimRight(t, "*& ")
	return t
}

// IsPointer reports whether t is a pointer type.
func IsPointer(t string) bool {
	return strings.HasSuffix(strings.TrimSpace(t), "*")
}
