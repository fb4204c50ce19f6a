// Package coerce converts user-entered text into typed bind parameters and
// fetched values back into editable text.
package coerce

import (
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// DateLayout is the only accepted input format for DATE columns.
const DateLayout = "2006-01-02"

// Coercer turns raw text into the native value for a column type.
// The zero value is strict about booleans.
type Coercer struct {
	// LenientBooleans accepts any text for BOOLEAN columns, mapping everything
	// other than "true" (case-insensitive) to false instead of failing.
	LenientBooleans bool
}

// Coerce converts raw into a value suitable for binding to a column of type t.
// A nil or empty raw value is SQL NULL for every type; NOT NULL constraints are
// left to the database.
func (c Coercer) Coerce(raw *string, t core.SQLType) (any, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	s := *raw

	switch t {
	case core.TypeInteger, core.TypeSmallInt, core.TypeBigInt:
		return parseInteger(s)
	case core.TypeNumeric:
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return nil, &core.ParseError{Value: s, Msg: "invalid number for " + s}
		}
		return f, nil
	case core.TypeBoolean:
		return c.parseBool(s)
	case core.TypeDate:
		d, err := time.Parse(DateLayout, s)
		if err != nil {
			return nil, &core.ParseError{Value: s, Msg: "invalid date format, expected YYYY-MM-DD"}
		}
		return d, nil
	default:
		return s, nil
	}
}

// CoerceColumn is Coerce with the column name attached to any ParseError.
func (c Coercer) CoerceColumn(raw *string, col core.Column) (any, error) {
	v, err := c.Coerce(raw, col.Type)
	var perr *core.ParseError
	if errors.As(err, &perr) {
		perr.Column = col.Name
		return nil, perr
	}
	return v, err
}

// parseInteger reads every integer-family column as 64 bits. Narrower column
// ranges are the database's to enforce: an SQLite INTEGER is 64-bit regardless
// of its declared name.
func parseInteger(s string) (int64, error) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, &core.ParseError{Value: s, Msg: "invalid integer for " + s}
	}
	return n, nil
}

func (c Coercer) parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	if c.LenientBooleans {
		return false, nil
	}
	return false, &core.ParseError{Value: s, Msg: "invalid boolean for " + s + ", expected true or false"}
}

// Equal reports whether a value fetched from the database and a value
// produced by Coerce denote the same thing. Drivers differ in the width they
// scan numbers into, so integers and floats are compared by value.
func Equal(fetched, coerced any) bool {
	a, b := widen(fetched), widen(coerced)
	switch x := a.(type) {
	case nil:
		return b == nil
	case time.Time:
		y, ok := b.(time.Time)
		return ok && x.Equal(y)
	case int64:
		switch y := b.(type) {
		case int64:
			return x == y
		case float64:
			return float64(x) == y
		}
	case float64:
		switch y := b.(type) {
		case float64:
			return x == y
		case int64:
			return x == float64(y)
		}
	case string:
		if y, ok := b.(string); ok {
			return x == y
		}
		// Some drivers return NUMERIC as text.
		if y, ok := b.(float64); ok {
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			return err == nil && f == y
		}
	case bool:
		y, ok := b.(bool)
		return ok && x == y
	}
	return false
}

func widen(v any) any {
	switch x := v.(type) {
	case int:
		return int64(x)
	case int8:
		return int64(x)
	case int16:
		return int64(x)
	case int32:
		return int64(x)
	case uint8:
		return int64(x)
	case uint16:
		return int64(x)
	case uint32:
		return int64(x)
	case float32:
		return float64(x)
	case []byte:
		return string(x)
	}
	return v
}
