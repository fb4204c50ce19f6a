// Package form turns table descriptors into add and edit field sets.
package form

import (
	"github.com/leapstack-labs/leapcrud/pkg/coerce"
	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// BuildFields returns the field set for an add form (existing == nil) or
// an edit form pre-filled from existing, in descriptor column order.
//
// Add mode drops an auto-generated primary key entirely. Edit mode keeps
// every column and locks the primary key.
func BuildFields(desc *core.TableDescriptor, existing []any) []core.FieldSpec {
	if desc.IsEmpty() {
		return nil
	}

	fields := make([]core.FieldSpec, 0, len(desc.Columns))
	for i, col := range desc.Columns {
		if existing == nil {
			if col.PrimaryKey && col.AutoGenerated {
				continue
			}
			fields = append(fields, core.FieldSpec{Column: col, Editable: true})
			continue
		}

		var text string
		if i < len(existing) {
			text = coerce.Format(existing[i], col.Type)
		}
		fields = append(fields, core.FieldSpec{
			Column:   col,
			Value:    core.Text(text),
			Editable: !col.PrimaryKey,
		})
	}
	return fields
}

// Apply overlays user input onto fields. A key that names no field, or a
// locked field, is a ValidationError and leaves fields untouched.
func Apply(table string, fields []core.FieldSpec, values core.Record) error {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		index[f.Column.Name] = i
	}

	for name := range values {
		i, ok := index[name]
		if !ok {
			return &core.ValidationError{Table: table, Column: name, Msg: "not a field of this form"}
		}
		if !fields[i].Editable {
			return &core.ValidationError{Table: table, Column: name, Msg: "field is read-only"}
		}
	}

	for name, v := range values {
		fields[index[name]].Value = v
	}
	return nil
}

// ToRecord collects the committed values of fields.
func ToRecord(fields []core.FieldSpec) core.Record {
	rec := make(core.Record, len(fields))
	for _, f := range fields {
		rec[f.Column.Name] = f.Value
	}
	return rec
}

// PrimaryKeyValue returns the text of the primary key field, if present.
func PrimaryKeyValue(fields []core.FieldSpec) (string, bool) {
	for _, f := range fields {
		if f.Column.PrimaryKey {
			return f.Text(), true
		}
	}
	return "", false
}
