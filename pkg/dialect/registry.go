package dialect

import (
	"slices"
	"strings"
	"sync"
)

// registry maps lowercased dialect names to dialects. Adapter dialect
// packages fill it from init, so lookups after program start are read-only.
var registry = struct {
	sync.RWMutex
	byName map[string]*Dialect
}{byName: make(map[string]*Dialect)}

// Get returns the dialect registered under name, ignoring case.
func Get(name string) (*Dialect, bool) {
	registry.RLock()
	defer registry.RUnlock()
	d, ok := registry.byName[strings.ToLower(name)]
	return d, ok
}

// Register makes a dialect available by name. A later registration under the
// same name replaces the earlier one. Register panics on a nil or unnamed dialect.
func Register(d *Dialect) {
	if d == nil || d.Name == "" {
		panic("dialect: Register called with a nil or unnamed dialect")
	}
	registry.Lock()
	defer registry.Unlock()
	registry.byName[strings.ToLower(d.Name)] = d
}

// List returns the registered dialect names in sorted order.
func List() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.byName))
	for name := range registry.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
