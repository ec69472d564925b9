// Package sqlschema turns schema documents into PostgreSQL DDL.
//
// Convert builds an Atlas schema from a document, Plan renders the CREATE
// statements of an empty database and Apply runs them in one transaction:
//
//	stmts, err := sqlschema.Plan(ctx, doc)
//	if err != nil {
//		return err
//	}
//	db, err := sqlschema.Open(os.Getenv("POSTGRESQL_URL"))
//	if err != nil {
//		return err
//	}
//	defer db.Close()
//	return sqlschema.Apply(ctx, db, stmts)
//
// Plan validates the schema first. Identifiers longer than MaxIdentLen
// fail the plan; Validate also reports foreign keys without a covering
// index and tables without a primary key as warnings.
//
// An Applier records statement counts and durations and logs slow
// statements:
//
//	a := &sqlschema.Applier{Logger: logger, SlowThreshold: time.Second}
//	if err := a.Apply(ctx, db, stmts); err != nil {
//		return err
//	}
//	logger.Info("applied", zap.Stringer("stats", a.Stats()))
//
// # Type Mapping
//
//	String    text
//	Int       integer
//	Float     double precision
//	Boolean   boolean
//	DateTime  timestamp(3)
//	Json      jsonb
//	Enum      CREATE TYPE ... AS ENUM
//	T[]       T[]
//
// # Cascade Actions
//
// Available constants for Converter.OnDelete:
//
//	sqlschema.Cascade    - Delete related rows
//	sqlschema.SetNull    - Set foreign key to NULL (RESTRICT for required relations)
//	sqlschema.Restrict   - Prevent delete if related rows exist
//	sqlschema.SetDefault - Set foreign key to default value
//	sqlschema.NoAction   - No action (database default)
package sqlschema
