package sqlschema

import (
	"errors"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/schema"

	"github.com/b4s36t4/amplication/dialect/prisma"
)

// MaxIdentLen is the longest identifier Postgres keeps. Longer names are
// silently truncated, so two long names may end up equal.
const MaxIdentLen = 63

// ValidationError represents a schema validation issue.
type ValidationError struct {
	Table   string
	Column  string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// ValidationResult holds the results of schema validation.
type ValidationResult struct {
	Errors   []*ValidationError
	Warnings []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns the validation errors joined, or nil.
func (r *ValidationResult) Err() error {
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return errors.Join(errs...)
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	var sb strings.Builder
	if len(r.Errors) > 0 {
		sb.WriteString("Errors:\n")
		for _, e := range r.Errors {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	if len(r.Warnings) > 0 {
		sb.WriteString("Warnings:\n")
		for _, w := range r.Warnings {
			sb.WriteString("  - ")
			sb.WriteString(w.Error())
			sb.WriteString("\n")
		}
	}
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

func (r *ValidationResult) errorf(table, column, format string, args ...any) {
	r.Errors = append(r.Errors, &ValidationError{Table: table, Column: column, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(table, column, format string, args ...any) {
	r.Warnings = append(r.Warnings, &ValidationError{Table: table, Column: column, Message: fmt.Sprintf(format, args...)})
}

// Validate checks the schema of s as converted for Postgres.
func Validate(s *prisma.Schema) (*ValidationResult, error) {
	return (&Converter{}).Validate(s)
}

// Validate is like the package-level Validate but uses the converter
// settings.
func (c *Converter) Validate(s *prisma.Schema) (*ValidationResult, error) {
	out, err := c.Convert(s)
	if err != nil {
		return nil, err
	}
	return validate(out), nil
}

// validate reports identifiers Postgres would truncate as errors. Tables
// without a primary key and foreign keys without a covering index are
// reported as warnings.
func validate(s *schema.Schema) *ValidationResult {
	r := &ValidationResult{}
	enums := make(map[string]bool)
	ident := func(table, column, kind, name string) {
		if len(name) > MaxIdentLen {
			r.errorf(table, column, "%s name %q exceeds %d bytes", kind, name, MaxIdentLen)
		}
	}
	for _, t := range s.Tables {
		ident(t.Name, "", "table", t.Name)
		if t.PrimaryKey == nil {
			r.warnf(t.Name, "", "table has no primary key")
		}
		for _, col := range t.Columns {
			ident(t.Name, col.Name, "column", col.Name)
			if e := enumOf(col.Type.Type); e != nil && !enums[e.T] {
				enums[e.T] = true
				ident(t.Name, col.Name, "enum type", e.T)
			}
		}
		for _, idx := range t.Indexes {
			ident(t.Name, "", "index", idx.Name)
		}
		for _, fk := range t.ForeignKeys {
			ident(t.Name, "", "foreign key", fk.Symbol)
			if !indexed(t, fk.Columns) {
				r.warnf(t.Name, columnNames(fk.Columns), "foreign key %s is not covered by an index", fk.Symbol)
			}
		}
	}
	return r
}

// indexed reports whether some index of t starts with cols.
func indexed(t *schema.Table, cols []*schema.Column) bool {
	covers := func(idx *schema.Index) bool {
		if idx == nil || len(idx.Parts) < len(cols) {
			return false
		}
		for i, c := range cols {
			if idx.Parts[i].C != c {
				return false
			}
		}
		return true
	}
	if covers(t.PrimaryKey) {
		return true
	}
	for _, idx := range t.Indexes {
		if covers(idx) {
			return true
		}
	}
	return false
}

func columnNames(cols []*schema.Column) string {
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return strings.Join(names, ",")
}
