package globals

import (
	"path/filepath"

	configlibsql "github.com/Erokhin-Danila/fstec-threat-mapping/lib/configutil/libsql"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/telemetry"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"
)

const ConfigName = "fstec-mapper.json5"

type Config struct {
	mapper.Config
	// path to a rule table, the built-in table is used when empty
	Rules     string              `json:"rules"`
	Database  configlibsql.Struct `json:"database"`
	Telemetry telemetry.Config    `json:"telemetry"`
}

func DefaultConfig() Config {
	return Config{
		Config:   mapper.DefaultConfig(),
		Database: configlibsql.Struct{File: "fstec-mapper.db"},
	}
}

// resolve makes relative paths in the config relative to the directory of
// the file they were read from.
func (c Config) resolve(configPath string) Config {
	if configPath == "" {
		return c
	}
	dir := filepath.Dir(configPath)
	if c.Rules != "" && !filepath.IsAbs(c.Rules) {
		c.Rules = filepath.Join(dir, c.Rules)
	}
	if c.Database.File != "" && c.Database.File != ":memory:" && !filepath.IsAbs(c.Database.File) {
		c.Database.File = filepath.Join(dir, c.Database.File)
	}
	return c
}
