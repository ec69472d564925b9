package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/b4s36t4/amplication/dialect/sqlschema"
	"github.com/b4s36t4/amplication/schema/mixin"
)

// DefaultConfigFile is read when no --config flag is given. A missing
// default file is not an error.
const DefaultConfigFile = "prismagen.yaml"

// Config holds the CLI configuration. Values come from the YAML file and
// environment variables; environment variables override the file.
// The database URL is a secret and only read from the environment.
type Config struct {
	// Input is the directory holding entity definition files.
	Input string `yaml:"input" env:"PRISMAGEN_INPUT" env-default:"entities"`
	// Output is the target directory. Empty means standard output.
	Output string `yaml:"output" env:"PRISMAGEN_OUTPUT" env-default:""`
	// Package is the Go package name of the generated enums file.
	Package string `yaml:"package" env:"PRISMAGEN_PACKAGE" env-default:"enums"`

	Enums      bool `yaml:"enums" env:"PRISMAGEN_ENUMS" env-default:"false"`
	Migration  bool `yaml:"migration" env:"PRISMAGEN_MIGRATION" env-default:"false"`
	DedupEnums bool `yaml:"dedup_enums" env:"PRISMAGEN_DEDUP_ENUMS" env-default:"false"`
	// Workers bounds model assembly and file writes. Zero means GOMAXPROCS.
	Workers int `yaml:"workers" env:"PRISMAGEN_WORKERS" env-default:"0"`

	// Mixins names field sets added to every entity, e.g. [id, time].
	Mixins []string `yaml:"mixins" env:"PRISMAGEN_MIXINS" env-separator:","`

	// OnDelete is the referential action of relation foreign keys.
	OnDelete string `yaml:"on_delete" env:"PRISMAGEN_ON_DELETE" env-default:"SET NULL"`

	DatabaseURL string `yaml:"-" env:"POSTGRESQL_URL"` // Secret - not in YAML

	Log LogConfig `yaml:"log"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"PRISMAGEN_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"PRISMAGEN_LOG_FORMAT" env-default:"console"`
}

// loadConfig reads path with environment overrides. When path is the
// default file and it does not exist, only the environment is read.
func loadConfig(path string) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		path = DefaultConfigFile
	}
	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err := cleanenv.ReadConfig(path, cfg); err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && path == DefaultConfigFile:
		if err := cleanenv.ReadEnv(cfg); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Input == "" {
		return errors.New("input directory is required")
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if _, err := c.cascade(); err != nil {
		return err
	}
	if _, err := c.mixins(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unknown log format %q (expected console or json)", c.Log.Format)
	}
	return nil
}

// cascade parses OnDelete. Spaces and underscores are interchangeable.
func (c *Config) cascade() (sqlschema.CascadeAction, error) {
	v := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(c.OnDelete), "_", " "))
	for _, a := range []sqlschema.CascadeAction{
		sqlschema.Cascade, sqlschema.SetNull, sqlschema.Restrict, sqlschema.SetDefault, sqlschema.NoAction,
	} {
		if v == string(a) {
			return a, nil
		}
	}
	return "", fmt.Errorf("unknown on_delete action %q", c.OnDelete)
}

// converter returns the DDL converter for the configuration.
func (c *Config) converter() (*sqlschema.Converter, error) {
	action, err := c.cascade()
	if err != nil {
		return nil, err
	}
	return &sqlschema.Converter{OnDelete: action}, nil
}

func (c *Config) mixins() ([]mixin.Mixin, error) {
	out := make([]mixin.Mixin, 0, len(c.Mixins))
	for _, name := range c.Mixins {
		m, err := mixin.Parse(name)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
