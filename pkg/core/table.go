package core

import "fmt"

// Column describes one column of a table as reported by the catalog.
type Column struct {
	Name          string
	DataType      string // catalog type name, as reported
	Type          SQLType
	Nullable      bool
	Position      int
	PrimaryKey    bool
	AutoGenerated bool // primary key assigned by the database on insert
}

// TableDescriptor is the runtime shape of one editable table.
// Column order is fixed once introspected and is the bind order of every
// statement built from the descriptor.
type TableDescriptor struct {
	Schema     string
	Name       string
	PrimaryKey string
	Columns    []Column
}

// IsEmpty reports whether the catalog returned no columns for the table.
func (d *TableDescriptor) IsEmpty() bool {
	return d == nil || len(d.Columns) == 0
}

// Column returns the column with the given name.
func (d *TableDescriptor) Column(name string) (Column, bool) {
	for _, c := range d.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return Column{}, false
}

// Index returns the ordinal position of the named column, or -1.
func (d *TableDescriptor) Index(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// PrimaryKeyColumn returns the primary key column.
func (d *TableDescriptor) PrimaryKeyColumn() (Column, bool) {
	for _, c := range d.Columns {
		if c.PrimaryKey {
			return c, true
		}
	}
	return Column{}, false
}

// Validate checks that exactly one column is flagged as primary key and
// that it is the configured one. Column names must be unique.
func (d *TableDescriptor) Validate() error {
	if d == nil || d.Name == "" {
		return &SchemaError{Msg: "table name is required"}
	}
	seen := make(map[string]struct{}, len(d.Columns))
	pks := 0
	for _, c := range d.Columns {
		if c.Name == "" {
			return &SchemaError{Table: d.Name, Msg: "column with empty name"}
		}
		if _, dup := seen[c.Name]; dup {
			return &SchemaError{Table: d.Name, Msg: fmt.Sprintf("duplicate column %q", c.Name)}
		}
		seen[c.Name] = struct{}{}
		if c.PrimaryKey {
			pks++
			if c.Name != d.PrimaryKey {
				return &SchemaError{Table: d.Name, Msg: fmt.Sprintf("column %q flagged as primary key, expected %q", c.Name, d.PrimaryKey)}
			}
		}
	}
	if pks != 1 {
		return &SchemaError{Table: d.Name, Msg: fmt.Sprintf("expected exactly one primary key column %q, found %d", d.PrimaryKey, pks)}
	}
	return nil
}

// FieldSpec is one editable or read-only input slot of an add/edit form.
// Value is nil in add mode.
type FieldSpec struct {
	Column   Column
	Value    *string
	Editable bool
}

// Text returns the field value, or "" when absent.
func (f FieldSpec) Text() string {
	if f.Value == nil {
		return ""
	}
	return *f.Value
}

// Record is the user's committed input: column name to raw text.
// A nil value or a missing key both mean SQL NULL.
type Record map[string]*string

// Text returns a pointer to s, for building records inline.
func Text(s string) *string {
	return &s
}

// RowSet is an immutable snapshot of a table's contents.
type RowSet struct {
	Columns []string
	Rows    [][]any
}

// ColumnIndex returns the position of the named column, or -1.
func (r *RowSet) ColumnIndex(name string) int {
	for i, c := range r.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Len returns the number of rows.
func (r *RowSet) Len() int {
	if r == nil {
		return 0
	}
	return len(r.Rows)
}
