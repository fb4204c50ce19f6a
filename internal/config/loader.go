package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/leapstack-labs/leapcrud/pkg/core"
)

// ConfigFileName is the name of the config file.
const ConfigFileName = "leapcrud.yaml"

// ConfigFileNameAlt is the alternate name of the config file.
const ConfigFileNameAlt = "leapcrud.yml"

// tablesFile is the subset of the config file LoadTables reads.
type tablesFile struct {
	Tables []core.TableConfig `koanf:"tables"`
}

// LoadTables reads the table list from a config file.
// An empty list yields DefaultTables.
func LoadTables(path string) ([]core.TableConfig, error) {
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var f tablesFile
	if err := k.Unmarshal("", &f); err != nil {
		return nil, fmt.Errorf("unable to decode tables: %w", err)
	}
	if len(f.Tables) == 0 {
		return DefaultTables(), nil
	}
	if err := ValidateTables(f.Tables); err != nil {
		return nil, err
	}
	return f.Tables, nil
}

// FindConfigFile finds the config file in the given directory.
// Returns empty string if not found.
func FindConfigFile(dir string) string {
	yamlPath := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(yamlPath); err == nil {
		return yamlPath
	}

	ymlPath := filepath.Join(dir, ConfigFileNameAlt)
	if _, err := os.Stat(ymlPath); err == nil {
		return ymlPath
	}

	return ""
}

// FindProjectRoot walks up from the given directory to find a directory
// containing leapcrud.yaml or leapcrud.yml, giving up after maxLevels parents.
// Returns empty string if not found.
func FindProjectRoot(startDir string, maxLevels int) string {
	dir := startDir
	for i := 0; i < maxLevels; i++ {
		if FindConfigFile(dir) != "" {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return ""
		}
		dir = parent
	}
	return ""
}
