package coerce

import (
	"fmt"
	"strconv"
	"time"

	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// Format renders a fetched value as the text a user would edit.
// NULL renders as the empty string, which Coerce maps back to NULL.
func Format(v any, t core.SQLType) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case []byte:
		return string(x)
	case bool:
		return strconv.FormatBool(x)
	case int64:
		if t == core.TypeBoolean {
			// SQLite keeps booleans as 0/1.
			return strconv.FormatBool(x != 0)
		}
		return strconv.FormatInt(x, 10)
	case int32:
		return strconv.FormatInt(int64(x), 10)
	case int16:
		return strconv.FormatInt(int64(x), 10)
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case time.Time:
		if t == core.TypeDate {
			return x.Format(DateLayout)
		}
		return x.Format(time.RFC3339)
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprintf("%v", x)
	}
}
