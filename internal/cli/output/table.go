package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var titleCaser = cases.Title(language.English)

// ColumnTitle turns a column name into a table header: "equipment_id" → "Equipment Id".
func ColumnTitle(name string) string {
	return titleCaser.String(strings.ReplaceAll(name, "_", " "))
}

// Table writes rows under the given column names in the effective mode.
func (r *Renderer) Table(columns []string, rows [][]any) error {
	switch r.EffectiveMode() {
	case ModeJSON:
		return r.tableJSON(columns, rows)
	case ModeYAML:
		return r.tableYAML(columns, rows)
	case ModeCSV:
		return r.tableCSV(columns, rows)
	case ModeMarkdown:
		return r.tableMarkdown(columns, rows)
	default:
		return r.tableText(columns, rows)
	}
}

func (r *Renderer) tableText(columns []string, rows [][]any) error {
	if len(rows) == 0 {
		r.Muted("(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Format.Header = text.FormatDefault

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = ColumnTitle(col)
	}
	t.AppendHeader(header)

	for _, row := range rows {
		out := make(table.Row, len(columns))
		for i := range columns {
			out[i] = FormatValue(cell(row, i))
		}
		t.AppendRow(out)
	}

	t.Render()
	r.Muted(fmt.Sprintf("(%d rows)", len(rows)))
	return nil
}

func (r *Renderer) tableMarkdown(columns []string, rows [][]any) error {
	if len(rows) == 0 {
		r.Println("(0 rows)")
		return nil
	}

	r.Printf("| %s |\n", strings.Join(columns, " | "))
	seps := make([]string, len(columns))
	for i := range seps {
		seps[i] = "---"
	}
	r.Printf("| %s |\n", strings.Join(seps, " | "))

	for _, row := range rows {
		values := make([]string, len(columns))
		for i := range columns {
			values[i] = escapeMarkdown(FormatValue(cell(row, i)))
		}
		r.Printf("| %s |\n", strings.Join(values, " | "))
	}
	return nil
}

// tableCSV writes NULL as an empty field.
func (r *Renderer) tableCSV(columns []string, rows [][]any) error {
	w := csv.NewWriter(r.out)
	if err := w.Write(columns); err != nil {
		return err
	}
	for _, row := range rows {
		values := make([]string, len(columns))
		for i := range columns {
			if v := cell(row, i); v != nil {
				values[i] = FormatValue(v)
			}
		}
		if err := w.Write(values); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func (r *Renderer) tableJSON(columns []string, rows [][]any) error {
	objects := make([]orderedRow, len(rows))
	for i, row := range rows {
		objects[i] = orderedRow{columns: columns, values: row}
	}
	return r.JSON(objects)
}

func (r *Renderer) tableYAML(columns []string, rows [][]any) error {
	seq := &yaml.Node{Kind: yaml.SequenceNode}
	for _, row := range rows {
		m := &yaml.Node{Kind: yaml.MappingNode}
		for i, col := range columns {
			var v yaml.Node
			if err := v.Encode(plainValue(cell(row, i))); err != nil {
				return fmt.Errorf("encode %s: %w", col, err)
			}
			m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: col}, &v)
		}
		seq.Content = append(seq.Content, m)
	}

	enc := yaml.NewEncoder(r.out)
	enc.SetIndent(2)
	if err := enc.Encode(seq); err != nil {
		return err
	}
	return enc.Close()
}

// orderedRow marshals to a JSON object that keeps column order.
type orderedRow struct {
	columns []string
	values  []any
}

func (o orderedRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, col := range o.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(col)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(plainValue(cell(o.values, i)))
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func cell(row []any, i int) any {
	if i < len(row) {
		return row[i]
	}
	return nil
}
