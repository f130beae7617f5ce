package natives

import (
	"fmt"
	"sort"
	"strings"
)

// Database is an immutable, indexed set of natives.
type Database struct {
	namespaces []*Namespace
	byNS       map[string]*Namespace
	byHash     map[string]*Native
	byName     map[string]*Native
	byOldName  map[string]*Native
	count      int
}

// New builds a database from natives. Namespace and Hash must be set.
func New(list []*Native) *Database {
	db := &Database{
		byNS:      make(map[string]*Namespace),
		byHash:    make(map[string]*Native, len(list)),
		byName:    make(map[string]*Native, len(list)),
		byOldName: make(map[string]*Native),
	}

	for _, n := range list {
		ns, ok := db.byNS[n.Namespace]
		if !ok {
			ns = &Namespace{Name: n.Namespace}
			db.byNS[n.Namespace] = ns
			db.namespaces = append(db.namespaces, ns)
		}
		ns.Natives = append(ns.Natives, n)

		db.byHash[n.Hash] = n
		if n.IsNamed() {
			db.byName[strings.ToUpper(n.Name)] = n
		}
		for _, old := range n.OldNames {
			db.byOldName[strings.ToUpper(old)] = n
		}
		db.count++
	}

	sort.Slice(db.namespaces, func(i, j int) bool {
		return db.namespaces[i].Name < db.namespaces[j].Name
	})
	for _, ns := range db.namespaces {
		sort.SliceStable(ns.Natives, func(i, j int) bool {
			return ns.Natives[i].DisplayName() < ns.Natives[j].DisplayName()
		})
	}

	return db
}

// Len returns the number of natives.
func (db *Database) Len() int {
	return db.count
}

// Namespaces returns all namespaces sorted by name.
func (db *Database) Namespaces() []*Namespace {
	return db.namespaces
}

// Namespace returns a namespace by name (case insensitive).
func (db *Database) Namespace(name string) (*Namespace, error) {
	if ns, ok := db.byNS[strings.ToUpper(name)]; ok {
		return ns, nil
	}
	if ns, ok := db.byNS[name]; ok {
		return ns, nil
	}
	return nil, fmt.Errorf("namespace %q: %w", name, ErrNotFound)
}

// Lookup finds a native by hash, name or previous name.
// Hashes are matched case-insensitively with or without the 0x prefix.
func (db *Database) Lookup(key string) (*Native, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return nil, fmt.Errorf("empty native key: %w", ErrNotFound)
	}

	if n, ok := db.byHash[NormalizeHash(key)]; ok {
		return n, nil
	}

	upper := strings.ToUpper(key)
	if n, ok := db.byName[upper]; ok {
		return n, nil
	}
	if n, ok := db.byOldName[upper]; ok {
		return n, nil
	}

	// Unnamed natives are addressed by their generated identifier.
	if strings.HasPrefix(upper, "N_0X") {
		if n, ok := db.byHash[NormalizeHash(key[2:])]; ok {
			return n, nil
		}
	}

	return nil, fmt.Errorf("native %q: %w", key, ErrNotFound)
}

// All returns every native ordered by namespace, then name.
func (db *Database) All() []*Native {
	out := make([]*Native, 0, db.count)
	for _, ns := range db.namespaces {
		out = append(out, ns.Natives...)
	}
	return out
}
