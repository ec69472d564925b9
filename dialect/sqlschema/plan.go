package sqlschema

import (
	"context"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"

	"github.com/b4s36t4/amplication/dialect/prisma"
)

// PlanName is the name given to planned migrations.
const PlanName = "init"

// Plan returns the DDL statements creating the schema of s in an empty
// database, in execution order.
func Plan(ctx context.Context, s *prisma.Schema) ([]string, error) {
	return (&Converter{}).Plan(ctx, s)
}

// Migration returns the DDL of s as a migration file.
func Migration(ctx context.Context, s *prisma.Schema) ([]byte, error) {
	return (&Converter{}).Migration(ctx, s)
}

// Plan is like the package-level Plan but uses the converter settings.
func (c *Converter) Plan(ctx context.Context, s *prisma.Schema) ([]string, error) {
	plan, err := c.plan(ctx, s)
	if err != nil {
		return nil, err
	}
	stmts := make([]string, 0, len(plan.Changes))
	for _, ch := range plan.Changes {
		stmts = append(stmts, ch.Cmd)
	}
	return stmts, nil
}

// Migration is like the package-level Migration but uses the converter
// settings.
func (c *Converter) Migration(ctx context.Context, s *prisma.Schema) ([]byte, error) {
	plan, err := c.plan(ctx, s)
	if err != nil {
		return nil, err
	}
	files, err := migrate.DefaultFormatter.Format(plan)
	if err != nil {
		return nil, fmt.Errorf("sqlschema: format migration: %w", err)
	}
	var b strings.Builder
	for _, f := range files {
		b.Write(f.Bytes())
	}
	return []byte(b.String()), nil
}

// plan creates the tables first and adds foreign keys afterwards, so that
// the statement order does not depend on the relations between models.
func (c *Converter) plan(ctx context.Context, s *prisma.Schema) (*migrate.Plan, error) {
	out, err := c.Convert(s)
	if err != nil {
		return nil, err
	}
	if err := validate(out).Err(); err != nil {
		return nil, fmt.Errorf("sqlschema: invalid schema: %w", err)
	}
	var (
		creates []schema.Change
		fks     []schema.Change
	)
	for _, t := range out.Tables {
		bare := *t
		bare.ForeignKeys = nil
		creates = append(creates, &schema.AddTable{T: &bare})
		if len(t.ForeignKeys) == 0 {
			continue
		}
		mt := &schema.ModifyTable{T: t}
		for _, fk := range t.ForeignKeys {
			mt.Changes = append(mt.Changes, &schema.AddForeignKey{F: fk})
		}
		fks = append(fks, mt)
	}
	if len(creates) == 0 {
		return &migrate.Plan{Name: PlanName}, nil
	}
	// Names are qualified only for a non-default schema.
	qualifier := c.Schema
	plan, err := postgres.DefaultPlan.PlanChanges(ctx, PlanName, append(creates, fks...), func(o *migrate.PlanOptions) {
		o.SchemaQualifier = &qualifier
	})
	if err != nil {
		return nil, fmt.Errorf("sqlschema: plan changes: %w", err)
	}
	plan.Changes = append(missingEnums(plan, out, qualifier), plan.Changes...)
	return plan, nil
}

// missingEnums returns CREATE TYPE statements for enum types the planner
// did not create.
func missingEnums(plan *migrate.Plan, out *schema.Schema, qualifier string) []*migrate.Change {
	var (
		changes []*migrate.Change
		seen    = make(map[string]bool)
	)
	for _, t := range out.Tables {
		for _, col := range t.Columns {
			enum := enumOf(col.Type.Type)
			if enum == nil || seen[enum.T] {
				continue
			}
			seen[enum.T] = true
			if planned(plan, enum.T) {
				continue
			}
			changes = append(changes, &migrate.Change{
				Cmd:     createEnum(qualifier, enum),
				Comment: fmt.Sprintf("create enum type %q", enum.T),
			})
		}
	}
	return changes
}

func enumOf(t schema.Type) *schema.EnumType {
	switch t := t.(type) {
	case *schema.EnumType:
		return t
	case *postgres.ArrayType:
		return enumOf(t.Type)
	default:
		return nil
	}
}

func planned(plan *migrate.Plan, enum string) bool {
	for _, ch := range plan.Changes {
		if strings.HasPrefix(ch.Cmd, "CREATE TYPE") && strings.Contains(ch.Cmd, `"`+enum+`"`) {
			return true
		}
	}
	return false
}

func createEnum(qualifier string, e *schema.EnumType) string {
	values := make([]string, len(e.Values))
	for i, v := range e.Values {
		values[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	name := `"` + e.T + `"`
	if qualifier != "" {
		name = `"` + qualifier + `".` + name
	}
	return fmt.Sprintf(`CREATE TYPE %s AS ENUM (%s)`, name, strings.Join(values, ", "))
}
