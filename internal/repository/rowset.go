package repository

import (
	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// scanRows drains rows into a RowSet. Raw bytes become strings so the set
// renders and serializes the same on every driver.
func scanRows(rows *core.Rows) (*core.RowSet, error) {
	cols, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	set := &core.RowSet{Columns: cols, Rows: [][]any{}}
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		set.Rows = append(set.Rows, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return set, nil
}
