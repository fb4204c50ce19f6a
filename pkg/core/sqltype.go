package core

import "strings"

// SQLType is the normalized type vocabulary shared by coercion and form building.
type SQLType int

const (
	// TypeText covers character types and every type without dedicated handling.
	TypeText SQLType = iota
	// TypeInteger is a 32-bit integer column.
	TypeInteger
	// TypeSmallInt is a 16-bit integer column.
	TypeSmallInt
	// TypeBigInt is a 64-bit integer column.
	TypeBigInt
	// TypeNumeric covers NUMERIC, DECIMAL, DOUBLE, REAL and FLOAT columns.
	TypeNumeric
	// TypeBoolean covers BOOLEAN and BIT columns.
	TypeBoolean
	// TypeDate is a calendar date without time of day.
	TypeDate
)

// String returns the canonical upper-case name of the type.
func (t SQLType) String() string {
	switch t {
	case TypeInteger:
		return "INTEGER"
	case TypeSmallInt:
		return "SMALLINT"
	case TypeBigInt:
		return "BIGINT"
	case TypeNumeric:
		return "NUMERIC"
	case TypeBoolean:
		return "BOOLEAN"
	case TypeDate:
		return "DATE"
	default:
		return "TEXT"
	}
}

// IsInteger reports whether the type belongs to the integer family.
func (t SQLType) IsInteger() bool {
	return t == TypeInteger || t == TypeSmallInt || t == TypeBigInt
}

// catalogTypes maps catalog type names from postgres, duckdb and sqlite.
var catalogTypes = map[string]SQLType{
	"integer":          TypeInteger,
	"int":              TypeInteger,
	"int4":             TypeInteger,
	"serial":           TypeInteger,
	"smallint":         TypeSmallInt,
	"int2":             TypeSmallInt,
	"tinyint":          TypeSmallInt,
	"bigint":           TypeBigInt,
	"int8":             TypeBigInt,
	"bigserial":        TypeBigInt,
	"numeric":          TypeNumeric,
	"decimal":          TypeNumeric,
	"double":           TypeNumeric,
	"double precision": TypeNumeric,
	"real":             TypeNumeric,
	"float":            TypeNumeric,
	"float4":           TypeNumeric,
	"float8":           TypeNumeric,
	"boolean":          TypeBoolean,
	"bool":             TypeBoolean,
	"bit":              TypeBoolean,
	"date":             TypeDate,
}

// ParseSQLType maps a catalog type name onto the SQLType vocabulary.
// Length and precision suffixes such as VARCHAR(20) or DECIMAL(10,2) are ignored.
func ParseSQLType(name string) SQLType {
	n := strings.ToLower(strings.TrimSpace(name))
	if i := strings.IndexByte(n, '('); i >= 0 {
		n = strings.TrimSpace(n[:i])
	}
	if t, ok := catalogTypes[n]; ok {
		return t
	}
	return TypeText
}
