package gen

import (
	"runtime"

	"go.uber.org/zap"

	"github.com/b4s36t4/amplication/dialect/prisma"
)

// Config holds the schema generation settings.
type Config struct {
	// Renderer turns the assembled document into text.
	// Defaults to the canonical prisma.Printer.
	Renderer prisma.Renderer
	// Logger receives debug lines per model and enum, and one info line
	// per generated schema.
	Logger *zap.Logger
	// Workers bounds the number of entities assembled concurrently.
	Workers int
	// DedupEnums collapses identical enums emitted for fields sharing a name.
	DedupEnums bool
	// Header is the comment placed at the top of generated Go files.
	Header string
}

// Option configures schema generation.
type Option func(*Config) error

// WithRenderer sets the renderer used by Generate.
func WithRenderer(r prisma.Renderer) Option {
	return func(c *Config) error {
		if r == nil {
			return NewConfigError("Renderer", nil, "renderer cannot be nil")
		}
		c.Renderer = r
		return nil
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Config) error {
		if l == nil {
			return NewConfigError("Logger", nil, "logger cannot be nil")
		}
		c.Logger = l
		return nil
	}
}

// WithWorkers sets the number of entities assembled in parallel.
func WithWorkers(n int) Option {
	return func(c *Config) error {
		if n <= 0 {
			return NewConfigError("Workers", n, "workers must be positive")
		}
		c.Workers = n
		return nil
	}
}

// WithEnumDedup collapses same-name enums with identical values into one.
// Same-name enums with different values fail generation.
func WithEnumDedup() Option {
	return func(c *Config) error {
		c.DedupEnums = true
		return nil
	}
}

// WithHeader sets the file header comment of generated Go files.
func WithHeader(header string) Option {
	return func(c *Config) error {
		c.Header = header
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

// NewConfig creates a new Config with defaults and the given options.
func NewConfig(opts ...Option) (*Config, error) {
	c := &Config{
		Renderer: &prisma.Printer{},
		Logger:   zap.NewNop(),
		Workers:  runtime.GOMAXPROCS(0),
		Header:   DefaultHeader,
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
