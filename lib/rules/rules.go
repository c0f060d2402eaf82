package rules

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"

	"github.com/titanous/json5"
	"gopkg.in/yaml.v3"
)

//go:embed default_rules.json5
var defaultRules []byte

var ErrUnsupportedFormat = errors.New("unsupported rule table format")

// Parse decodes a `{keyword: [category, ...]}` table. format is the file
// extension without the dot.
func Parse(data []byte, format string) (*mapper.RuleTable, error) {
	raw := make(map[string][]string)

	var err error
	switch strings.ToLower(format) {
	case "json", "json5":
		err = json5.Unmarshal(data, &raw)
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &raw)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode rule table: %w", err)
	}

	for keyword := range raw {
		if strings.TrimSpace(keyword) == "" {
			return nil, fmt.Errorf("rule table contains an empty keyword")
		}
	}

	return mapper.NewRuleTable(raw), nil
}

// Load reads a rule table from a .json, .json5, .yaml or .yml file.
func Load(path string) (*mapper.RuleTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	table, err := Parse(data, strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// Default returns the sample table shipped with the binary.
func Default() *mapper.RuleTable {
	table, err := Parse(defaultRules, "json5")
	if err != nil {
		panic(err)
	}
	return table
}

// LoadOrDefault loads path, or returns Default when path is empty.
func LoadOrDefault(path string) (*mapper.RuleTable, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}
