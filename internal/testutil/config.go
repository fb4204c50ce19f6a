package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// WriteConfig writes a leapcrud.yaml for target and EquipmentTables into a
// temp dir and returns its path. extra is appended verbatim.
func WriteConfig(t testing.TB, target core.AdapterConfig, extra string) string {
	t.Helper()

	var b strings.Builder
	b.WriteString("target:\n")
	fmt.Fprintf(&b, "  type: %s\n", target.Type)
	fmt.Fprintf(&b, "  database: %q\n", target.Path)
	b.WriteString("tables:\n")
	for _, tbl := range EquipmentTables {
		fmt.Fprintf(&b, "  - name: %s\n    primary_key: %s\n", tbl.Name, tbl.PrimaryKey)
	}
	b.WriteString(extra)

	path := filepath.Join(t.TempDir(), "leapcrud.yaml")
	if err := os.WriteFile(path, []byte(b.String()), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}
