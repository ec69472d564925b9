package gen

import (
	"context"
	"slices"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/b4s36t4/amplication/dialect/prisma"
	"github.com/b4s36t4/amplication/schema"
)

// Fixed blocks emitted into every schema.
var (
	// DataSource is the PostgreSQL data source read from POSTGRESQL_URL.
	DataSource = prisma.DataSource{
		Name:     "postgres",
		Provider: prisma.PostgreSQL,
		URL:      prisma.EnvURL("POSTGRESQL_URL"),
	}
	// ClientGenerator is the JavaScript client generator.
	ClientGenerator = prisma.Generator{
		Name:     "client",
		Provider: "prisma-client-js",
	}
)

// Generator assembles and renders schema documents.
type Generator struct {
	config *Config
}

// New returns a generator configured with opts.
func New(opts ...Option) (*Generator, error) {
	c, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return &Generator{config: c}, nil
}

// Config returns the generator configuration.
func (g *Generator) Config() *Config {
	return g.config
}

// CreateSchema assembles the schema document of the given entities.
// Models follow the entity order and enums follow the field traversal
// order. On failure no document is returned.
func (g *Generator) CreateSchema(ctx context.Context, entities []*schema.Entity, names schema.EntityNames) (*prisma.Schema, error) {
	models, err := g.createModels(ctx, entities, names)
	if err != nil {
		return nil, err
	}
	enums, err := createEnums(entities, g.config.DedupEnums)
	if err != nil {
		return nil, err
	}
	for _, e := range enums {
		g.config.Logger.Debug("enum assembled", zap.String("enum", e.Name), zap.Int("values", len(e.Values)))
	}
	ds, client := DataSource, ClientGenerator
	return &prisma.Schema{
		Models:     models,
		Enums:      enums,
		DataSource: &ds,
		Generators: []*prisma.Generator{&client},
	}, nil
}

// createModels assembles the models concurrently. Each result lands in the
// slot of its entity, and the first failing entity in input order wins.
func (g *Generator) createModels(ctx context.Context, entities []*schema.Entity, names schema.EntityNames) ([]*prisma.Model, error) {
	var (
		models = make([]*prisma.Model, len(entities))
		errs   = make([]error, len(entities))
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.config.Workers, 1))
	for i, e := range entities {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			m, err := CreateModel(e, names)
			if err != nil {
				errs[i] = err
				return nil
			}
			g.config.Logger.Debug("model assembled", zap.String("model", m.Name), zap.Int("fields", len(m.Fields)))
			models[i] = m
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if i := slices.IndexFunc(errs, func(err error) bool { return err != nil }); i >= 0 {
		return nil, errs[i]
	}
	return models, nil
}

// Generate assembles the schema document and renders it with the configured
// renderer. Renderer errors are returned unchanged.
func (g *Generator) Generate(ctx context.Context, entities []*schema.Entity, names schema.EntityNames) (string, error) {
	s, err := g.CreateSchema(ctx, entities, names)
	if err != nil {
		return "", err
	}
	out, err := g.config.Renderer.Render(ctx, s)
	if err != nil {
		return "", err
	}
	g.config.Logger.Info("schema generated",
		zap.Int("models", len(s.Models)),
		zap.Int("enums", len(s.Enums)),
		zap.Int("bytes", len(out)),
	)
	return out, nil
}

// defaultGenerator backs CreatePrismaSchema. Its configuration is read-only.
var defaultGenerator = &Generator{config: MustNewConfig()}

// CreatePrismaSchema renders the schema of the given entities with the
// default configuration.
func CreatePrismaSchema(ctx context.Context, entities []*schema.Entity, names schema.EntityNames) (string, error) {
	return defaultGenerator.Generate(ctx, entities, names)
}
