package sqlschema

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/b4s36t4/amplication/dialect"
)

// DriverName is the database/sql driver used by Open.
const DriverName = dialect.Postgres

// DefaultSlowThreshold is the duration after which a statement is
// reported as slow.
const DefaultSlowThreshold = time.Second

// Open opens a Postgres database.
func Open(dsn string) (*sql.DB, error) {
	return sql.Open(DriverName, dsn)
}

// ExecError reports the statement that failed to apply.
type ExecError struct {
	Index int
	Stmt  string
	// Code is the Postgres error code, if the server reported one.
	Code pq.ErrorCode
	Err  error
}

// Error implements the error interface.
func (e *ExecError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("sqlschema: statement %d failed (%s %s): %v", e.Index, e.Code, e.Code.Name(), e.Err)
	}
	return fmt.Sprintf("sqlschema: statement %d failed: %v", e.Index, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExecError) Unwrap() error {
	return e.Err
}

// Postgres error codes of objects that already exist.
const (
	pgDuplicateSchema = "42P06"
	pgDuplicateTable  = "42P07"
	pgDuplicateObject = "42710"
)

// IsAlreadyExists reports whether err resulted from creating an object that
// already exists, which means the target database was not empty.
func IsAlreadyExists(err error) bool {
	var e *ExecError
	if !errors.As(err, &e) {
		return false
	}
	switch e.Code {
	case pgDuplicateSchema, pgDuplicateTable, pgDuplicateObject:
		return true
	default:
		return false
	}
}

// Apply executes the statements in a single transaction. Either all
// statements take effect or none does.
func Apply(ctx context.Context, db *sql.DB, stmts []string) error {
	return (&Applier{}).Apply(ctx, db, stmts)
}

// Applier executes DDL statements and collects execution statistics.
// The zero value is ready to use.
type Applier struct {
	// Logger receives one debug entry per statement and a warning for
	// each slow statement. Nil disables logging.
	Logger *zap.Logger
	// SlowThreshold defaults to DefaultSlowThreshold.
	SlowThreshold time.Duration

	mu    sync.Mutex
	stats ApplyStats
}

// ApplyStats is a snapshot of the statistics of an Applier.
type ApplyStats struct {
	Statements int
	Slow       int
	Errors     int
	Duration   time.Duration
}

// String returns a human-readable summary of the statistics.
func (s ApplyStats) String() string {
	return fmt.Sprintf("statements=%d duration=%s slow=%d errors=%d",
		s.Statements, s.Duration, s.Slow, s.Errors)
}

// Stats returns a snapshot of the statistics.
func (a *Applier) Stats() ApplyStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Apply is like the package-level Apply but records statistics.
func (a *Applier) Apply(ctx context.Context, db *sql.DB, stmts []string) error {
	logger := a.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	slow := a.SlowThreshold
	if slow <= 0 {
		slow = DefaultSlowThreshold
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlschema: begin transaction: %w", err)
	}
	for i, stmt := range stmts {
		start := time.Now()
		_, err := tx.ExecContext(ctx, stmt)
		took := time.Since(start)
		a.record(took, took > slow, err != nil)
		logger.Debug("statement executed", zap.Int("index", i), zap.Duration("took", took))
		if took > slow {
			logger.Warn("slow statement", zap.Int("index", i), zap.String("stmt", stmt), zap.Duration("took", took))
		}
		if err != nil {
			execErr := &ExecError{Index: i, Stmt: stmt, Err: err}
			var pqErr *pq.Error
			if errors.As(err, &pqErr) {
				execErr.Code = pqErr.Code
			}
			if rerr := tx.Rollback(); rerr != nil {
				return errors.Join(execErr, fmt.Errorf("sqlschema: rollback: %w", rerr))
			}
			return execErr
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlschema: commit: %w", err)
	}
	return nil
}

func (a *Applier) record(took time.Duration, slow, failed bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Statements++
	a.stats.Duration += took
	if slow {
		a.stats.Slow++
	}
	if failed {
		a.stats.Errors++
	}
}
