// Package dialect names the database targets of the generator.
//
// Only PostgreSQL is supported. It is identified by two constants:
//
//	dialect.Postgres         = "postgres"    // database/sql driver name
//	dialect.PostgresProvider = "postgresql"  // Prisma datasource provider
//
// # Sub-packages
//
//   - dialect/prisma: Prisma schema document model and printer
//   - dialect/sqlschema: Postgres DDL planning and application
package dialect
