package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/b4s36t4/amplication/dialect/sqlschema"
)

var errNoDatabase = errors.New("database URL is required (set POSTGRESQL_URL or --database-url)")

// applyCmd creates the schema in an empty database.
func applyCmd(a *app) *cobra.Command {
	var (
		databaseURL string
		onDelete    string
	)

	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Create the schema in a Postgres database",
		Long: `Apply plans the DDL of the schema and executes it in a single transaction.
The target database is expected to be empty.`,
		Example: `  POSTGRESQL_URL=postgres://localhost/app?sslmode=disable prismagen apply -i ./entities`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("database-url") {
				a.cfg.DatabaseURL = databaseURL
			}
			if flags.Changed("on-delete") {
				a.cfg.OnDelete = onDelete
			}
			if a.cfg.DatabaseURL == "" {
				return errNoDatabase
			}
			ctx := cmd.Context()
			stmts, err := a.plan(ctx)
			if err != nil {
				return err
			}

			db, err := sqlschema.Open(a.cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer db.Close()
			if err := db.PingContext(ctx); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			applier := &sqlschema.Applier{Logger: a.logger}
			if err := applier.Apply(ctx, db, stmts); err != nil {
				if sqlschema.IsAlreadyExists(err) {
					return fmt.Errorf("%w (apply expects an empty database)", err)
				}
				return err
			}
			stats := applier.Stats()
			a.logger.Info("schema applied",
				zap.Int("statements", stats.Statements),
				zap.Duration("took", stats.Duration),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&databaseURL, "database-url", "d", "", "Database connection URL (overrides POSTGRESQL_URL)")
	cmd.Flags().StringVar(&onDelete, "on-delete", "", "Foreign key delete action")
	return cmd
}
