package generator

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Generator registry
var (
	generatorsMu sync.RWMutex
	generators   = make(map[string]Generator)
	aliases      = make(map[string]string)
)

// Register adds a generator under its name and any aliases.
// Called by generator implementations in their init() functions.
func Register(g Generator, alias ...string) {
	generatorsMu.Lock()
	defer generatorsMu.Unlock()

	name := strings.ToLower(g.Name())
	generators[name] = g
	for _, a := range alias {
		aliases[strings.ToLower(a)] = name
	}
}

// Get returns a generator by name or alias.
func Get(name string) (Generator, bool) {
	generatorsMu.RLock()
	defer generatorsMu.RUnlock()

	key := strings.ToLower(strings.TrimSpace(name))
	if g, ok := generators[key]; ok {
		return g, true
	}
	if target, ok := aliases[key]; ok {
		g, ok := generators[target]
		return g, ok
	}
	return nil, false
}

// Lookup is Get with an error listing the available languages.
func Lookup(name string) (Generator, error) {
	if g, ok := Get(name); ok {
		return g, nil
	}
	return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownLanguage, name, strings.Join(List(), ", "))
}

// List returns all registered generator names (sorted).
func List() []string {
	generatorsMu.RLock()
	defer generatorsMu.RUnlock()

	names := make([]string, 0, len(generators))
	for name := range generators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered generators sorted by name.
func All() []Generator {
	names := List()

	generatorsMu.RLock()
	defer generatorsMu.RUnlock()

	out := make([]Generator, 0, len(names))
	for _, name := range names {
		out = append(out, generators[name])
	}
	return out
}

// Aliases returns the aliases registered for a generator name (sorted).
func Aliases(name string) []string {
	generatorsMu.RLock()
	defer generatorsMu.RUnlock()

	var out []string
	for alias, target := range aliases {
		if target == strings.ToLower(name) {
			out = append(out, alias)
		}
	}
	sort.Strings(out)
	return out
}
