// Package registry holds the set of tables exposed for editing and resolves
// caller-supplied table names against it.
//
// Only names found here ever reach the schema loader, so a table that is
// not configured can never end up in SQL text.
package registry

import (
	"strings"
	"sync"

	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/leapstack-labs/leapcrud/pkg/dialect"
)

// TableRegistry maps table names to their configuration, in configuration order.
// It is safe for concurrent use; Replace swaps the whole set atomically.
type TableRegistry struct {
	mu sync.RWMutex

	// order keeps configuration order for listing
	order []string

	// byName maps the configured name to its config: "maint.equipment" → TableConfig
	byName map[string]core.TableConfig

	// byShortName maps unqualified names: "equipment" → "maint.equipment"
	// Note: if two schemas configure the same table name, the first one wins
	byShortName map[string]string

	// byFolded maps folded full and short names, when a dialect is set
	byFolded map[string]string
	dialect  *dialect.Dialect
}

// Option configures a TableRegistry.
type Option func(*TableRegistry)

// WithDialect makes Resolve also accept names spelled differently from the
// configuration, as long as d folds both to the same identifier.
func WithDialect(d *dialect.Dialect) Option {
	return func(r *TableRegistry) { r.dialect = d }
}

// NewTableRegistry creates a registry over tables.
func NewTableRegistry(tables []core.TableConfig, opts ...Option) *TableRegistry {
	r := &TableRegistry{}
	for _, opt := range opts {
		opt(r)
	}
	r.Replace(tables)
	return r
}

// Replace swaps the registered tables. Entries without a name or
// primary key are skipped; duplicates keep their first occurrence.
func (r *TableRegistry) Replace(tables []core.TableConfig) {
	order := make([]string, 0, len(tables))
	byName := make(map[string]core.TableConfig, len(tables))
	byShortName := make(map[string]string, len(tables))
	byFolded := make(map[string]string, len(tables))
	fold := func(name, full string) {
		if r.dialect == nil {
			return
		}
		if key := r.dialect.NormalizeName(name); byFolded[key] == "" {
			byFolded[key] = full
		}
	}

	for _, t := range tables {
		if t.Name == "" || t.PrimaryKey == "" {
			continue
		}
		if _, dup := byName[t.Name]; dup {
			continue
		}
		order = append(order, t.Name)
		byName[t.Name] = t
		fold(t.Name, t.Name)

		if _, short, ok := strings.Cut(t.Name, "."); ok {
			if _, taken := byShortName[short]; !taken {
				byShortName[short] = t.Name
			}
			fold(short, t.Name)
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.order = order
	r.byName = byName
	r.byShortName = byShortName
	r.byFolded = byFolded
}

// Resolve looks a table up by its configured name, then by its
// unqualified name, then by either one as the dialect folds it.
func (r *TableRegistry) Resolve(name string) (core.TableConfig, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if t, ok := r.byName[name]; ok {
		return t, true
	}
	if full, ok := r.byShortName[name]; ok {
		return r.byName[full], true
	}
	if r.dialect != nil {
		if full, ok := r.byFolded[r.dialect.NormalizeName(name)]; ok {
			return r.byName[full], true
		}
	}
	return core.TableConfig{}, false
}

// All returns the registered tables in configuration order.
func (r *TableRegistry) All() []core.TableConfig {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tables := make([]core.TableConfig, len(r.order))
	for i, name := range r.order {
		tables[i] = r.byName[name]
	}
	return tables
}

// Count returns the number of registered tables.
func (r *TableRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Title returns the display title of a table: the configured title, or the
// name with its first letter upper-cased and underscores turned into spaces.
func Title(t core.TableConfig) string {
	if t.Title != "" {
		return t.Title
	}
	name := t.Name
	if _, short, ok := strings.Cut(name, "."); ok {
		name = short
	}
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + strings.ReplaceAll(name[1:], "_", " ")
}
