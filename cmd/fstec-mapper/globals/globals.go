package globals

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/configutil"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/rules"
	"github.com/Erokhin-Danila/fstec-threat-mapping/lib/telemetry"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/mapper"
	"github.com/Erokhin-Danila/fstec-threat-mapping/services/overrides"
)

type key struct{}

// Value is what every command shares: the resolved configuration, the
// rule table and lazily opened resources.
type Value struct {
	Config Config
	// empty when no config file was found
	ConfigPath string
	Tel        telemetry.API
	Rules      *mapper.RuleTable

	telemetry telemetry.Telemetry
	store     *overrides.Store
}

func Set(ctx context.Context, value *Value) context.Context {
	return context.WithValue(ctx, key{}, value)
}

func Get(ctx context.Context) *Value {
	return ctx.Value(key{}).(*Value)
}

// Load reads the config at path, or searches for ConfigName from the
// working directory upwards when path is empty. A missing file means
// defaults.
func Load(ctx context.Context, path string) (*Value, error) {
	var (
		config Config
		err    error
	)
	if path != "" {
		config, err = configutil.ReadConfig[Config](path)
	} else {
		config, path, err = configutil.ReadRecursively[Config](".", ConfigName)
	}
	if errors.Is(err, os.ErrNotExist) {
		path = ""
	} else if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	config, err = configutil.WithDefaults(config, DefaultConfig())
	if err != nil {
		return nil, err
	}
	config = config.resolve(path)

	table, err := rules.LoadOrDefault(config.Rules)
	if err != nil {
		return nil, err
	}

	tel, err := telemetry.Setup(ctx, "fstec-mapper", config.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("failed to setup telemetry: %w", err)
	}

	return &Value{
		Config:     config,
		ConfigPath: path,
		Tel:        telemetry.SlogAPI{},
		Rules:      table,
		telemetry:  tel,
	}, nil
}

func (v *Value) TelemetryEnabled() bool {
	return v.telemetry.Enabled()
}

// Store opens the override store on first use.
func (v *Value) Store(ctx context.Context) (overrides.Store, error) {
	if v.store != nil {
		return *v.store, nil
	}
	database, err := v.Config.Database.OpenDB()
	if err != nil {
		return overrides.Store{}, err
	}
	store, err := overrides.Open(ctx, database)
	if err != nil {
		database.Close()
		return overrides.Store{}, err
	}
	v.store = &store
	return store, nil
}

func (v *Value) Close(ctx context.Context) error {
	var errlist []error
	if v.store != nil {
		errlist = append(errlist, v.store.Close())
		v.store = nil
	}
	errlist = append(errlist, v.telemetry.Shutdown(ctx))
	return errors.Join(errlist...)
}
