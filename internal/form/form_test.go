package form

import (
	"testing"
	"time"

	"github.com/leapstack-labs/leapcrud/pkg/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func equipment() *core.TableDescriptor {
	return &core.TableDescriptor{
		Name:       "equipment",
		PrimaryKey: "equipment_id",
		Columns: []core.Column{
			{Name: "equipment_id", Type: core.TypeInteger, PrimaryKey: true, AutoGenerated: true},
			{Name: "name", Type: core.TypeText},
			{Name: "status", Type: core.TypeText},
		},
	}
}

func names(fields []core.FieldSpec) []string {
	out := make([]string, len(fields))
	for i, f := range fields {
		out[i] = f.Column.Name
	}
	return out
}

func TestBuildFields_AddMode(t *testing.T) {
	t.Run("auto generated key is dropped", func(t *testing.T) {
		fields := BuildFields(equipment(), nil)
		assert.Equal(t, []string{"name", "status"}, names(fields))
		for _, f := range fields {
			assert.True(t, f.Editable)
			assert.Nil(t, f.Value)
		}
	})

	t.Run("caller supplied key is kept and editable", func(t *testing.T) {
		desc := &core.TableDescriptor{
			Name:       "equipment_types",
			PrimaryKey: "code",
			Columns: []core.Column{
				{Name: "code", Type: core.TypeText, PrimaryKey: true},
				{Name: "description", Type: core.TypeText},
			},
		}
		fields := BuildFields(desc, nil)
		require.Len(t, fields, 2)
		assert.Equal(t, "code", fields[0].Column.Name)
		assert.True(t, fields[0].Editable)
	})

	t.Run("empty descriptor", func(t *testing.T) {
		assert.Empty(t, BuildFields(&core.TableDescriptor{Name: "ghost"}, nil))
	})
}

func TestBuildFields_EditMode(t *testing.T) {
	fields := BuildFields(equipment(), []any{int64(5), "Drill", nil})

	assert.Equal(t, []string{"equipment_id", "name", "status"}, names(fields))
	assert.False(t, fields[0].Editable)
	assert.Equal(t, "5", fields[0].Text())
	assert.True(t, fields[1].Editable)
	assert.Equal(t, "Drill", fields[1].Text())
	require.NotNil(t, fields[2].Value)
	assert.Equal(t, "", fields[2].Text())
}

func TestBuildFields_EditModeShortRow(t *testing.T) {
	fields := BuildFields(equipment(), []any{int64(5)})
	require.Len(t, fields, 3)
	assert.Equal(t, "", fields[2].Text())
}

func TestBuildFields_EditModeFormatsDates(t *testing.T) {
	desc := &core.TableDescriptor{
		Name:       "schedules",
		PrimaryKey: "horarios_id",
		Columns: []core.Column{
			{Name: "horarios_id", Type: core.TypeInteger, PrimaryKey: true, AutoGenerated: true},
			{Name: "starts", Type: core.TypeDate},
		},
	}
	fields := BuildFields(desc, []any{int64(1), time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)})
	assert.Equal(t, "2024-01-15", fields[1].Text())
}

func TestApply(t *testing.T) {
	tests := []struct {
		name     string
		existing []any
		values   core.Record
		wantErr  string
	}{
		{
			name:   "editable field",
			values: core.Record{"status": core.Text("retired")},
		},
		{
			name:    "unknown column",
			values:  core.Record{"owner": core.Text("x")},
			wantErr: "not a field",
		},
		{
			name:     "locked primary key",
			existing: []any{int64(5), "Drill", "active"},
			values:   core.Record{"equipment_id": core.Text("6")},
			wantErr:  "read-only",
		},
		{
			name:    "auto generated key in add mode",
			values:  core.Record{"equipment_id": core.Text("6")},
			wantErr: "not a field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields := BuildFields(equipment(), tt.existing)
			err := Apply("equipment", fields, tt.values)
			if tt.wantErr != "" {
				var ve *core.ValidationError
				require.ErrorAs(t, err, &ve)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			rec := ToRecord(fields)
			assert.Equal(t, "retired", *rec["status"])
		})
	}
}

func TestApply_ScenarioEdit(t *testing.T) {
	fields := BuildFields(equipment(), []any{int64(5), "Drill", "active"})
	require.NoError(t, Apply("equipment", fields, core.Record{"status": core.Text("retired")}))

	pk, ok := PrimaryKeyValue(fields)
	require.True(t, ok)
	assert.Equal(t, "5", pk)

	rec := ToRecord(fields)
	assert.Equal(t, "Drill", *rec["name"])
	assert.Equal(t, "retired", *rec["status"])
}

func TestPrimaryKeyValue_AddMode(t *testing.T) {
	_, ok := PrimaryKeyValue(BuildFields(equipment(), nil))
	assert.False(t, ok)
}
