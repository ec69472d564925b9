package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b4s36t4/amplication/compiler/gen"
	"github.com/b4s36t4/amplication/compiler/load"
	"github.com/b4s36t4/amplication/dialect/prisma"
	"github.com/b4s36t4/amplication/schema/mixin"
)

// app carries the state shared by all commands.
type app struct {
	// Global flags
	configFile string
	input      string
	output     string
	logLevel   string
	mixins     []string

	cfg    *Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}
	rootCmd := &cobra.Command{
		Use:   "prismagen",
		Short: "Compile entity definitions into a Prisma schema",
		Long: `prismagen reads entity definitions (YAML or JSON) and compiles them into a
Prisma schema with a Postgres datasource. It can also emit Go enum types,
a SQL migration, and apply the schema to a database.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&a.configFile, "config", "c", DefaultConfigFile, "Path to config file")
	flags.StringVarP(&a.input, "input", "i", "", "Entity definitions directory (overrides config)")
	flags.StringVarP(&a.output, "output", "o", "", "Output directory (overrides config)")
	flags.StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringSliceVar(&a.mixins, "mixin", nil, "Fields added to every entity: id, time, create_time, update_time")

	rootCmd.AddCommand(
		generateCmd(a),
		ddlCmd(a),
		applyCmd(a),
		watchCmd(a),
		versionCmd(),
	)
	return rootCmd
}

// setup loads the configuration, applies flag overrides and builds the
// logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := loadConfig(a.configFile)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Input = a.input
	}
	if flags.Changed("output") {
		cfg.Output = a.output
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("mixin") {
		cfg.Mixins = a.mixins
		if err := cfg.validate(); err != nil {
			return err
		}
	}
	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	a.cfg, a.logger = cfg, logger
	return nil
}

// build is the result of a single compilation.
type build struct {
	gen    *gen.Generator
	schema *prisma.Schema
	text   string
}

// compile loads the input directory and assembles the schema.
func (a *app) compile(ctx context.Context) (*build, error) {
	res, err := load.LoadDir(a.cfg.Input)
	if err != nil {
		return nil, err
	}
	mixins, err := a.cfg.mixins()
	if err != nil {
		return nil, err
	}
	for _, e := range res.Entities {
		mixin.Apply(e, mixins...)
	}
	opts := []gen.Option{gen.WithLogger(a.logger)}
	if a.cfg.Workers > 0 {
		opts = append(opts, gen.WithWorkers(a.cfg.Workers))
	}
	if a.cfg.DedupEnums {
		opts = append(opts, gen.WithEnumDedup())
	}
	g, err := gen.New(opts...)
	if err != nil {
		return nil, err
	}
	s, err := g.CreateSchema(ctx, res.Entities, res.Names)
	if err != nil {
		return nil, err
	}
	text, err := g.Config().Renderer.Render(ctx, s)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("entities loaded",
		zap.Strings("files", res.Files),
		zap.Int("entities", len(res.Entities)),
	)
	return &build{gen: g, schema: s, text: text}, nil
}

// artifacts returns the files to write for b.
func (a *app) artifacts(ctx context.Context, b *build) ([]gen.Artifact, error) {
	out := []gen.Artifact{{Name: gen.SchemaFile, Data: []byte(b.text)}}
	if a.cfg.Enums {
		data, err := b.gen.RenderEnums(a.cfg.Package, b.schema)
		if err != nil {
			return nil, err
		}
		out = append(out, gen.Artifact{Name: gen.EnumsFile, Data: data})
	}
	if a.cfg.Migration {
		conv, err := a.cfg.converter()
		if err != nil {
			return nil, err
		}
		data, err := conv.Migration(ctx, b.schema)
		if err != nil {
			return nil, err
		}
		out = append(out, gen.Artifact{Name: gen.MigrationFile, Data: data})
	}
	return out, nil
}

var errNeedOutput = errors.New("--enums and --migration require an output directory")

// emit compiles the input and writes the result to the output directory,
// or the schema alone to w when no output directory is configured.
func (a *app) emit(ctx context.Context, w io.Writer) error {
	if a.cfg.Output == "" && (a.cfg.Enums || a.cfg.Migration) {
		return errNeedOutput
	}
	b, err := a.compile(ctx)
	if err != nil {
		return err
	}
	if a.cfg.Output == "" {
		_, err := io.WriteString(w, b.text)
		return err
	}
	artifacts, err := a.artifacts(ctx, b)
	if err != nil {
		return err
	}
	writer := gen.NewWriter(a.cfg.Output).WithLogger(a.logger)
	if a.cfg.Workers > 0 {
		writer = writer.WithWorkers(a.cfg.Workers)
	}
	if err := writer.Write(ctx, artifacts...); err != nil {
		return fmt.Errorf("write %s: %w", a.cfg.Output, err)
	}
	m := writer.Metrics()
	a.logger.Info("artifacts written",
		zap.String("dir", a.cfg.Output),
		zap.Int("files", m.FilesWritten),
		zap.Int64("bytes", m.TotalBytes),
	)
	return nil
}
