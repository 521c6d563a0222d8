package gen

import (
	"errors"
	"io"
	"log/slog"
	"runtime"

	"github.com/syssam/valobj/schema"
)

// Config configures the generation engine.
type Config struct {
	// Logger receives diagnostics. Defaults to a discarding logger.
	Logger *slog.Logger
	// Workers bounds the number of classes (and properties of one class)
	// processed in parallel. Defaults to GOMAXPROCS.
	Workers int
	// Defaults is the table every class starts from.
	Defaults schema.ClassDefaults
}

// Option configures code generation.
type Option func(*Config) error

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewOptionError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers sets the number of parallel workers.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n < 1 {
			return NewOptionError("Workers", n, "workers must be at least 1")
		}
		c.Workers = n
		return nil
	}
}

// WithDefaults replaces the default table classes start from.
func WithDefaults(d schema.ClassDefaults) Option {
	return func(c *Config) error {
		if !d.ConstructorAccess.Valid() {
			return NewOptionError("ConstructorAccess", d.ConstructorAccess, "unknown access level")
		}
		if !d.BuilderAccess.Valid() {
			return NewOptionError("BuilderAccess", d.BuilderAccess, "unknown access level")
		}
		c.Defaults = d
		return nil
	}
}

// WithDefaultOptions turns the given toggles on in the default table.
func WithDefaultOptions(ts ...schema.Toggle) Option {
	return func(c *Config) error {
		for _, t := range ts {
			if !t.Valid() {
				return NewOptionError("Defaults", t, "unknown toggle")
			}
			c.Defaults.Options = c.Defaults.Options.With(t)
		}
		return nil
	}
}

// Apply applies options to the config.
// It returns the first error encountered.
func (c *Config) Apply(opts ...Option) error {
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return err
		}
	}
	return nil
}

// ApplyAll applies options and collects all errors.
// Returns a joined error if any options failed.
func (c *Config) ApplyAll(opts ...Option) error {
	var errs []error
	for _, opt := range opts {
		if err := opt(c); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NewConfig creates a new Config with the default table, a discarding logger
// and GOMAXPROCS workers, then applies the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Workers:  runtime.GOMAXPROCS(0),
		Defaults: schema.Defaults(),
	}
	if err := c.Apply(opts...); err != nil {
		return nil, err
	}
	return c, nil
}

// MustNewConfig creates a new Config with the given options.
// It panics if any option fails.
func MustNewConfig(opts ...Option) *Config {
	c, err := NewConfig(opts...)
	if err != nil {
		panic(err)
	}
	return c
}

// logger returns the configured logger, or a discarding one for a zero Config.
func (c *Config) logger() *slog.Logger {
	if c == nil || c.Logger == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return c.Logger
}

// workers returns the configured worker count, at least 1.
func (c *Config) workers() int {
	if c == nil || c.Workers < 1 {
		return 1
	}
	return c.Workers
}

// defaults returns the configured default table, or the package defaults for
// a zero Config.
func (c *Config) defaults() schema.ClassDefaults {
	if c == nil || c.Defaults.ConstructorAccess == "" {
		return schema.Defaults()
	}
	return c.Defaults
}
