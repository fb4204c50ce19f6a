package output

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/leapcrud/pkg/coerce"
	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// NullText is how NULL is shown in tables.
const NullText = "NULL"

// FormatHeader returns a markdown header of the given level.
func FormatHeader(level int, text string) string {
	if level < 1 {
		level = 1
	}
	return strings.Repeat("#", level) + " " + text
}

// FormatKeyValue returns a markdown list item with a bold key.
func FormatKeyValue(key, value string) string {
	return fmt.Sprintf("- **%s:** %s", key, value)
}

// FormatValue renders a fetched value as display text.
// Timestamps at midnight UTC are shown as plain dates.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return NullText
	case time.Time:
		if isDate(x) {
			return coerce.Format(x, core.TypeDate)
		}
	}
	return coerce.Format(v, core.TypeText)
}

// plainValue normalizes a fetched value for JSON and YAML encoders.
func plainValue(v any) any {
	switch x := v.(type) {
	case []byte:
		return string(x)
	case time.Time:
		if isDate(x) {
			return coerce.Format(x, core.TypeDate)
		}
		return coerce.Format(x, core.TypeText)
	}
	return v
}

func isDate(t time.Time) bool {
	h, m, s := t.Clock()
	return h == 0 && m == 0 && s == 0 && t.Nanosecond() == 0 && t.Location() == time.UTC
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}
