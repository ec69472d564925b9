package main

import (
	"github.com/spf13/cobra"
)

// generateCmd compiles the input once.
func generateCmd(a *app) *cobra.Command {
	var (
		enums      bool
		migration  bool
		dedupEnums bool
		pkg        string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate schema.prisma from entity definitions",
		Long: `Generate compiles the entity definitions of the input directory into a
Prisma schema. Without an output directory the schema is printed to stdout.`,
		Example: `  # Print the schema
  prismagen generate -i ./entities

  # Write schema.prisma, enums.go and migration.sql
  prismagen generate -i ./entities -o ./prisma --enums --migration`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if flags.Changed("enums") {
				a.cfg.Enums = enums
			}
			if flags.Changed("migration") {
				a.cfg.Migration = migration
			}
			if flags.Changed("dedup-enums") {
				a.cfg.DedupEnums = dedupEnums
			}
			if flags.Changed("package") {
				a.cfg.Package = pkg
			}
			if flags.Changed("workers") {
				a.cfg.Workers = workers
			}
			if err := a.cfg.validate(); err != nil {
				return err
			}
			return a.emit(cmd.Context(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().BoolVar(&enums, "enums", false, "Also write Go enum types (enums.go)")
	cmd.Flags().BoolVar(&migration, "migration", false, "Also write the SQL migration (migration.sql)")
	cmd.Flags().BoolVar(&dedupEnums, "dedup-enums", false, "Collapse identical enums declared by several fields")
	cmd.Flags().StringVar(&pkg, "package", "", "Go package name of enums.go (overrides config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "Number of parallel workers (0 = GOMAXPROCS)")
	return cmd
}
