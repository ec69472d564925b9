// Package main provides the prismagen CLI, which compiles entity definitions
// into a Prisma schema and optionally into Postgres DDL.
//
// Usage:
//
//	prismagen generate              # Print schema.prisma for ./entities
//	prismagen generate -o out       # Write schema.prisma to out/
//	prismagen generate -o out --enums --migration
//	prismagen ddl                   # Print the CREATE statements
//	prismagen apply                 # Create the schema in $POSTGRESQL_URL
//	prismagen watch -o out          # Regenerate on every change
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// version is set via ldflags during build: -ldflags="-X main.version=v1.0.0"
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
