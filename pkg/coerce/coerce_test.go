package coerce

import (
	"testing"
	"time"

	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allTypes = []core.SQLType{
	core.TypeText, core.TypeInteger, core.TypeSmallInt, core.TypeBigInt,
	core.TypeNumeric, core.TypeBoolean, core.TypeDate,
}

func TestCoerce_EmptyIsNull(t *testing.T) {
	var c Coercer
	for _, typ := range allTypes {
		t.Run(typ.String(), func(t *testing.T) {
			v, err := c.Coerce(core.Text(""), typ)
			require.NoError(t, err)
			assert.Nil(t, v)

			v, err = c.Coerce(nil, typ)
			require.NoError(t, err)
			assert.Nil(t, v)
		})
	}
}

func TestCoerce(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		typ     core.SQLType
		want    any
		wantErr string
	}{
		{name: "integer", raw: "42", typ: core.TypeInteger, want: int64(42)},
		{name: "negative integer", raw: "-7", typ: core.TypeInteger, want: int64(-7)},
		{name: "smallint", raw: "300", typ: core.TypeSmallInt, want: int64(300)},
		{name: "bigint", raw: "9000000000", typ: core.TypeBigInt, want: int64(9000000000)},
		{name: "integer garbage", raw: "abc", typ: core.TypeInteger, wantErr: "invalid integer for abc"},
		{name: "smallint garbage", raw: "abc", typ: core.TypeSmallInt, wantErr: "invalid integer for abc"},
		{name: "bigint garbage", raw: "abc", typ: core.TypeBigInt, wantErr: "invalid integer for abc"},
		{name: "integer decimal text", raw: "4.2", typ: core.TypeInteger, wantErr: "invalid integer"},
		{name: "integer above 32 bits", raw: "3000000000", typ: core.TypeInteger, want: int64(3000000000)},
		{name: "smallint above 16 bits", raw: "70000", typ: core.TypeSmallInt, want: int64(70000)},
		{name: "integer overflow", raw: "9223372036854775808", typ: core.TypeInteger, wantErr: "invalid integer"},
		{name: "numeric", raw: "3.25", typ: core.TypeNumeric, want: 3.25},
		{name: "numeric integer text", raw: "10", typ: core.TypeNumeric, want: 10.0},
		{name: "numeric garbage", raw: "x1", typ: core.TypeNumeric, wantErr: "invalid number"},
		{name: "numeric NaN", raw: "NaN", typ: core.TypeNumeric, wantErr: "invalid number"},
		{name: "boolean true", raw: "TRUE", typ: core.TypeBoolean, want: true},
		{name: "boolean false", raw: "False", typ: core.TypeBoolean, want: false},
		{name: "boolean typo", raw: "ture", typ: core.TypeBoolean, wantErr: "invalid boolean"},
		{name: "boolean yes", raw: "yes", typ: core.TypeBoolean, wantErr: "invalid boolean"},
		{name: "date", raw: "2024-01-15", typ: core.TypeDate, want: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)},
		{name: "date slashes", raw: "15/01/2024", typ: core.TypeDate, wantErr: "invalid date format, expected YYYY-MM-DD"},
		{name: "date single digits", raw: "2024-1-5", typ: core.TypeDate, wantErr: "expected YYYY-MM-DD"},
		{name: "date out of range", raw: "2024-02-30", typ: core.TypeDate, wantErr: "expected YYYY-MM-DD"},
		{name: "text passthrough", raw: " Drill ", typ: core.TypeText, want: " Drill "},
	}

	var c Coercer
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Coerce(core.Text(tt.raw), tt.typ)
			if tt.wantErr != "" {
				require.Error(t, err)
				var perr *core.ParseError
				require.ErrorAs(t, err, &perr)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCoerce_LenientBooleans(t *testing.T) {
	c := Coercer{LenientBooleans: true}

	v, err := c.Coerce(core.Text("ture"), core.TypeBoolean)
	require.NoError(t, err)
	assert.Equal(t, false, v)

	v, err = c.Coerce(core.Text("True"), core.TypeBoolean)
	require.NoError(t, err)
	assert.Equal(t, true, v)
}

func TestCoerceColumn_NamesColumn(t *testing.T) {
	var c Coercer
	col := core.Column{Name: "equipment_id", Type: core.TypeInteger}

	_, err := c.CoerceColumn(core.Text("abc"), col)
	require.Error(t, err)
	assert.Equal(t, "equipment_id: invalid integer for abc", err.Error())
}

func TestFormat(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name string
		v    any
		typ  core.SQLType
		want string
	}{
		{"nil", nil, core.TypeText, ""},
		{"string", "Drill", core.TypeText, "Drill"},
		{"bytes", []byte("active"), core.TypeText, "active"},
		{"int64", int64(5), core.TypeInteger, "5"},
		{"int32", int32(5), core.TypeInteger, "5"},
		{"float", 12.5, core.TypeNumeric, "12.5"},
		{"float no exponent", 1e7, core.TypeNumeric, "10000000"},
		{"bool", true, core.TypeBoolean, "true"},
		{"bool stored as integer", int64(1), core.TypeBoolean, "true"},
		{"bool stored as zero", int64(0), core.TypeBoolean, "false"},
		{"date", day, core.TypeDate, "2024-01-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.v, tt.typ))
		})
	}
}

func TestFormat_RoundTripsThroughCoerce(t *testing.T) {
	var c Coercer
	day := time.Date(2023, 12, 31, 0, 0, 0, 0, time.UTC)

	v, err := c.Coerce(core.Text(Format(day, core.TypeDate)), core.TypeDate)
	require.NoError(t, err)
	assert.Equal(t, day, v)

	v, err = c.Coerce(core.Text(Format(0.1, core.TypeNumeric)), core.TypeNumeric)
	require.NoError(t, err)
	assert.Equal(t, 0.1, v)
}

func TestEqual(t *testing.T) {
	day := time.Date(2021, 3, 4, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name    string
		fetched any
		coerced any
		want    bool
	}{
		{"both null", nil, nil, true},
		{"null against value", nil, int64(1), false},
		{"narrow int against int64", int32(5), int64(5), true},
		{"int against parsed float", int64(3), 3.0, true},
		{"numeric text against float", []byte("99.50"), 99.5, true},
		{"different ints", int64(1), int64(2), false},
		{"same instant other zone", day.In(time.FixedZone("x", 3600)), day, true},
		{"text", "HYD", "HYD", true},
		{"text is not a number", "HYD", int64(1), false},
		{"bools", true, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.fetched, tt.coerced))
		})
	}
}
