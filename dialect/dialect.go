package dialect

// Postgres names PostgreSQL in the two vocabularies used by this module.
const (
	// Postgres is the database/sql driver name.
	Postgres = "postgres"
	// PostgresProvider is the Prisma datasource provider.
	PostgresProvider = "postgresql"
)
