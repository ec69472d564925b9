package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// ddlCmd prints the statements creating the schema.
func ddlCmd(a *app) *cobra.Command {
	var onDelete string

	cmd := &cobra.Command{
		Use:   "ddl",
		Short: "Print the Postgres DDL of the schema",
		Example: `  prismagen ddl -i ./entities
  prismagen ddl -i ./entities --on-delete cascade`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("on-delete") {
				a.cfg.OnDelete = onDelete
			}
			stmts, err := a.plan(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, stmt := range stmts {
				if _, err := fmt.Fprintf(out, "%s;\n", stmt); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&onDelete, "on-delete", "", "Foreign key delete action: cascade, set_null, restrict, set_default, no_action")
	return cmd
}

// plan compiles the input and plans its DDL.
func (a *app) plan(ctx context.Context) ([]string, error) {
	conv, err := a.cfg.converter()
	if err != nil {
		return nil, err
	}
	b, err := a.compile(ctx)
	if err != nil {
		return nil, err
	}
	res, err := conv.Validate(b.schema)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		a.logger.Warn("schema warning", zap.String("table", w.Table), zap.String("column", w.Column), zap.String("issue", w.Message))
	}
	return conv.Plan(ctx, b.schema)
}
