package main

import (
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/syssam/valobj/compiler/gen"
	"github.com/syssam/valobj/schema"
)

// envPrefix starts the environment variables read into settings, for
// example VALOBJ_WORKERS.
const envPrefix = "VALOBJ_"

// settings are the project defaults of the CLI. Flags override them.
type settings struct {
	Workers           int    `koanf:"workers"`
	Options           string `koanf:"options"`
	ConstructorAccess string `koanf:"constructor_access"`
	BuilderAccess     string `koanf:"builder_access"`
	Out               string `koanf:"out"`
	Package           string `koanf:"package"`
	LogLevel          string `koanf:"log_level"`
	LogJSON           bool   `koanf:"log_json"`
}

func defaultSettings() settings {
	return settings{
		Workers:           runtime.GOMAXPROCS(0),
		ConstructorAccess: string(schema.Public),
		BuilderAccess:     string(schema.Public),
		Out:               ".",
		LogLevel:          "info",
	}
}

// loadSettings reads the defaults and overlays the VALOBJ_* variables of
// environ.
func loadSettings(environ func() []string) (settings, error) {
	k := koanf.New(".")
	if err := k.Load(structs.Provider(defaultSettings(), "koanf"), nil); err != nil {
		return settings{}, fmt.Errorf("load defaults: %w", err)
	}
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:      envPrefix,
		EnvironFunc: environ,
		TransformFunc: func(key, value string) (string, any) {
			return strings.ToLower(strings.TrimPrefix(key, envPrefix)), value
		},
	}), nil); err != nil {
		return settings{}, fmt.Errorf("load environment: %w", err)
	}
	var s settings
	if err := k.Unmarshal("", &s); err != nil {
		return settings{}, fmt.Errorf("decode settings: %w", err)
	}
	return s, nil
}

// config builds the engine configuration.
func (s settings) config(logger *slog.Logger) (*gen.Config, error) {
	opts, err := schema.ParseOptions(s.Options)
	if err != nil {
		return nil, err
	}
	ca, err := schema.ParseAccessLevel(s.ConstructorAccess)
	if err != nil {
		return nil, fmt.Errorf("constructor access: %w", err)
	}
	ba, err := schema.ParseAccessLevel(s.BuilderAccess)
	if err != nil {
		return nil, fmt.Errorf("builder access: %w", err)
	}
	return gen.NewConfig(
		gen.WithLogger(logger),
		gen.WithWorkers(s.Workers),
		gen.WithDefaults(schema.ClassDefaults{
			Options:           opts,
			ConstructorAccess: ca,
			BuilderAccess:     ba,
		}),
	)
}

// newLogger returns a slog logger backed by a charm logger.
func newLogger(w io.Writer, level string, json bool) (*slog.Logger, error) {
	lvl, err := charmlog.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	l := charmlog.NewWithOptions(w, charmlog.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05",
		Level:           lvl,
	})
	if json {
		l.SetFormatter(charmlog.JSONFormatter)
	}
	return slog.New(l), nil
}
