// Package query builds parameterized CRUD statements from table descriptors.
//
// Identifiers are never taken from caller text: the table and every column
// must come from a validated descriptor before the dialect quotes them.
// Values only travel as bound parameters.
package query

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/leapstack-labs/leapcrud/pkg/dialect"
)

// Statement is SQL text plus the columns whose values bind its placeholders,
// in placeholder order.
type Statement struct {
	SQL    string
	Params []core.Column
}

// Builder renders statements for one dialect.
type Builder struct {
	Dialect *dialect.Dialect
}

// NewBuilder creates a Builder for d.
func NewBuilder(d *dialect.Dialect) *Builder {
	return &Builder{Dialect: d}
}

// Insert builds an INSERT over every field present.
// With no fields the row takes all column defaults.
func (b *Builder) Insert(desc *core.TableDescriptor, fields []core.FieldSpec) (*Statement, error) {
	cols, err := b.resolve(desc, fields)
	if err != nil {
		return nil, err
	}

	table := b.table(desc)
	if len(cols) == 0 {
		return &Statement{SQL: fmt.Sprintf("INSERT INTO %s DEFAULT VALUES", table)}, nil
	}

	names := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		names[i] = b.Dialect.QuoteIdentifier(c.Name)
		marks[i] = b.Dialect.FormatPlaceholder(i + 1)
	}

	return &Statement{
		SQL: fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
			table, strings.Join(names, ", "), strings.Join(marks, ", ")),
		Params: cols,
	}, nil
}

// Update builds an UPDATE over every non-key field, with the primary key
// bound last in the WHERE clause.
func (b *Builder) Update(desc *core.TableDescriptor, fields []core.FieldSpec) (*Statement, error) {
	cols, err := b.resolve(desc, fields)
	if err != nil {
		return nil, err
	}
	pk, _ := desc.PrimaryKeyColumn()

	params := make([]core.Column, 0, len(cols)+1)
	sets := make([]string, 0, len(cols))
	for _, c := range cols {
		if c.PrimaryKey {
			continue
		}
		params = append(params, c)
		sets = append(sets, fmt.Sprintf("%s = %s",
			b.Dialect.QuoteIdentifier(c.Name), b.Dialect.FormatPlaceholder(len(params))))
	}
	if len(sets) == 0 {
		return nil, &core.ValidationError{Table: desc.Name, Msg: "nothing to update"}
	}
	params = append(params, pk)

	return &Statement{
		SQL: fmt.Sprintf("UPDATE %s SET %s WHERE %s = %s",
			b.table(desc), strings.Join(sets, ", "),
			b.Dialect.QuoteIdentifier(pk.Name), b.Dialect.FormatPlaceholder(len(params))),
		Params: params,
	}, nil
}

// Delete builds a DELETE of the row matching the primary key.
func (b *Builder) Delete(desc *core.TableDescriptor) (*Statement, error) {
	if err := checkDescriptor(desc); err != nil {
		return nil, err
	}
	pk, _ := desc.PrimaryKeyColumn()
	return &Statement{
		SQL: fmt.Sprintf("DELETE FROM %s WHERE %s = %s",
			b.table(desc), b.Dialect.QuoteIdentifier(pk.Name), b.Dialect.FormatPlaceholder(1)),
		Params: []core.Column{pk},
	}, nil
}

// Select builds a full scan ordered by primary key.
func (b *Builder) Select(desc *core.TableDescriptor) (*Statement, error) {
	if err := checkDescriptor(desc); err != nil {
		return nil, err
	}
	return &Statement{
		SQL: fmt.Sprintf("SELECT * FROM %s ORDER BY %s",
			b.table(desc), b.Dialect.QuoteIdentifier(desc.PrimaryKey)),
	}, nil
}

func (b *Builder) table(desc *core.TableDescriptor) string {
	return b.Dialect.QuoteQualified(desc.Schema, desc.Name)
}

// resolve maps fields onto descriptor columns and returns them in
// descriptor order.
func (b *Builder) resolve(desc *core.TableDescriptor, fields []core.FieldSpec) ([]core.Column, error) {
	if err := checkDescriptor(desc); err != nil {
		return nil, err
	}

	type slot struct {
		pos int
		col core.Column
	}
	slots := make([]slot, 0, len(fields))
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		pos := desc.Index(f.Column.Name)
		if pos < 0 {
			return nil, &core.ValidationError{Table: desc.Name, Column: f.Column.Name, Msg: "unknown column"}
		}
		if _, dup := seen[f.Column.Name]; dup {
			return nil, &core.ValidationError{Table: desc.Name, Column: f.Column.Name, Msg: "duplicate field"}
		}
		seen[f.Column.Name] = struct{}{}
		slots = append(slots, slot{pos: pos, col: desc.Columns[pos]})
	}
	sort.SliceStable(slots, func(i, j int) bool { return slots[i].pos < slots[j].pos })

	cols := make([]core.Column, len(slots))
	for i, s := range slots {
		cols[i] = s.col
	}
	return cols, nil
}

func checkDescriptor(desc *core.TableDescriptor) error {
	if desc.IsEmpty() {
		name := ""
		if desc != nil {
			name = desc.Name
		}
		return &core.SchemaError{Table: name, Msg: "table has no columns"}
	}
	return desc.Validate()
}
