package natives

import (
	"fmt"
	"sort"
)

// TypeInfo describes a type used by natives.
type TypeInfo struct {
	Name string `json:"name"`
	// Uses counts parameters and return values referencing the type.
	Uses int `json:"uses"`
	// Natives counts distinct natives referencing the type.
	Natives int `json:"natives"`
}

// Types returns every base type referenced by the database, sorted by name.
func (db *Database) Types() []TypeInfo {
	uses := make(map[string]int)
	natives := make(map[string]int)

	for _, n := range db.All() {
		seen := make(map[string]bool)
		for _, t := range nativeTypes(n) {
			uses[t]++
			if !seen[t] {
				seen[t] = true
				natives[t]++
			}
		}
	}

	out := make([]TypeInfo, 0, len(uses))
	for name, count := range uses {
		out = append(out, TypeInfo{Name: name, Uses: count, Natives: natives[name]})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// UsingType returns natives that take or return the base type name.
func (db *Database) UsingType(name string) ([]*Native, error) {
	base := BaseType(name)
	var out []*Native
	for _, n := range db.All() {
		for _, t := range nativeTypes(n) {
			if t == base {
				out = append(out, n)
				break
			}
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("type %q: %w", name, ErrNotFound)
	}
	return out, nil
}

func nativeTypes(n *Native) []string {
	types := make([]string, 0, len(n.Params)+1)
	if n.ReturnType != "" {
		types = append(types, BaseType(n.ReturnType))
	}
	for _, p := range n.Params {
		types = append(types, BaseType(p.Type))
	}
	return types
}

// Stats summarises the database.
type Stats struct {
	Namespaces int `json:"namespaces"`
	Natives    int `json:"natives"`
	Named      int `json:"named"`
	Commented  int `json:"commented"`
	Types      int `json:"types"`
}

// Stats computes database statistics.
func (db *Database) Stats() Stats {
	s := Stats{
		Namespaces: len(db.namespaces),
		Natives:    db.count,
		Types:      len(db.Types()),
	}
	for _, n := range db.All() {
		if n.IsNamed() {
			s.Named++
		}
		if n.Comment != "" {
			s.Commented++
		}
	}
	return s
}
