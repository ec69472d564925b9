package sqlschema

import (
	"fmt"
	"slices"
	"strings"

	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"

	"github.com/b4s36t4/amplication/dialect/prisma"
)

// CascadeAction defines the referential action of relation foreign keys.
type CascadeAction string

const (
	Cascade    CascadeAction = "CASCADE"
	SetNull    CascadeAction = "SET NULL"
	Restrict   CascadeAction = "RESTRICT"
	SetDefault CascadeAction = "SET DEFAULT"
	NoAction   CascadeAction = "NO ACTION"
)

// DefaultSchema is the Postgres schema tables are created in.
const DefaultSchema = "public"

// Converter turns schema documents into Postgres schemas.
type Converter struct {
	// Schema is the Postgres schema name. Defaults to DefaultSchema.
	Schema string
	// OnDelete is the action of relation foreign keys. Empty means the
	// Postgres default.
	OnDelete CascadeAction
}

// Convert converts s with the default converter.
func Convert(s *prisma.Schema) (*schema.Schema, error) {
	return (&Converter{}).Convert(s)
}

// Convert builds the Postgres schema of s:
//
//   - a table per model with a column per scalar or enum field,
//   - a Postgres enum type per schema enum,
//   - a foreign key column named <field>Id per single relation field,
//   - an implicit join table _<A>To<B> per list relation without a single
//     back reference.
func (c *Converter) Convert(s *prisma.Schema) (*schema.Schema, error) {
	if s == nil {
		return nil, fmt.Errorf("sqlschema: nil schema")
	}
	name := c.Schema
	if name == "" {
		name = DefaultSchema
	}
	out := schema.New(name)

	enums := make(map[string]*schema.EnumType, len(s.Enums))
	for _, e := range s.Enums {
		if _, ok := enums[e.Name]; ok {
			continue
		}
		enums[e.Name] = &schema.EnumType{T: e.Name, Values: slices.Clone(e.Values), Schema: out}
	}

	tables := make(map[string]*schema.Table, len(s.Models))
	for _, m := range s.Models {
		t, err := c.table(m, enums)
		if err != nil {
			return nil, err
		}
		tables[m.Name] = t
		out.AddTables(t)
	}
	for _, m := range s.Models {
		if err := c.relations(out, s, m, tables); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (c *Converter) table(m *prisma.Model, enums map[string]*schema.EnumType) (*schema.Table, error) {
	t := schema.NewTable(m.Name)
	var pk []*schema.Column
	for _, f := range m.Fields {
		switch f := f.(type) {
		case *prisma.ScalarField:
			col, err := scalarColumn(f)
			if err != nil {
				return nil, fmt.Errorf("sqlschema: model %s: %w", m.Name, err)
			}
			t.AddColumns(col)
			if f.IsID {
				pk = append(pk, col)
			} else if f.IsUnique {
				t.AddIndexes(schema.NewUniqueIndex(m.Name + "_" + f.Name + "_key").AddColumns(col))
			}
		case *prisma.ObjectField:
			enum, ok := enums[f.Type]
			if !ok {
				// Relations are added once all tables exist.
				continue
			}
			col := schema.NewColumn(f.Name).SetNull(!f.IsRequired && !f.IsList)
			if f.IsList {
				col.SetType(&postgres.ArrayType{Type: enum, T: enum.T + "[]"})
			} else {
				col.SetType(enum)
			}
			t.AddColumns(col)
		case nil:
			return nil, fmt.Errorf("sqlschema: model %s: nil field", m.Name)
		}
	}
	if len(pk) > 0 {
		t.SetPrimaryKey(schema.NewPrimaryKey(pk...))
	}
	return t, nil
}

func scalarColumn(f *prisma.ScalarField) (*schema.Column, error) {
	typ, err := columnType(f.Type)
	if err != nil {
		return nil, fmt.Errorf("field %s: %w", f.Name, err)
	}
	col := schema.NewColumn(f.Name)
	if f.IsList {
		col.SetType(&postgres.ArrayType{Type: typ, T: typeName(typ) + "[]"})
	} else {
		col.SetType(typ)
	}
	col.SetNull(!f.IsRequired && !f.IsList)
	if f.Default != nil {
		def, ok, err := defaultExpr(f.Default)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.Name, err)
		}
		if ok {
			col.SetDefault(def)
		}
	}
	return col, nil
}

// columnType maps scalar types the way Prisma does for PostgreSQL.
func columnType(t prisma.ScalarType) (schema.Type, error) {
	switch t {
	case prisma.String:
		return &schema.StringType{T: "text"}, nil
	case prisma.Int:
		return &schema.IntegerType{T: "integer"}, nil
	case prisma.Float:
		return &schema.FloatType{T: "double precision"}, nil
	case prisma.Boolean:
		return &schema.BoolType{T: "boolean"}, nil
	case prisma.DateTime:
		precision := 3
		return &schema.TimeType{T: "timestamp", Precision: &precision}, nil
	case prisma.JSON:
		return &schema.JSONType{T: "jsonb"}, nil
	default:
		return nil, fmt.Errorf("unsupported scalar type %q", t)
	}
}

func typeName(t schema.Type) string {
	switch t := t.(type) {
	case *schema.StringType:
		return t.T
	case *schema.IntegerType:
		return t.T
	case *schema.FloatType:
		return t.T
	case *schema.BoolType:
		return t.T
	case *schema.TimeType:
		return t.T
	case *schema.JSONType:
		return t.T
	default:
		return ""
	}
}

// defaultExpr returns the database default of a field. Values generated by
// the client, such as cuid(), have no database default.
func defaultExpr(v any) (schema.Expr, bool, error) {
	switch v := v.(type) {
	case prisma.CallExpression:
		switch v.Callee {
		case prisma.Now:
			return &schema.RawExpr{X: "CURRENT_TIMESTAMP"}, true, nil
		case prisma.UUID:
			return &schema.RawExpr{X: "gen_random_uuid()"}, true, nil
		case prisma.CUID, prisma.AutoIncrement:
			return nil, false, nil
		default:
			return nil, false, fmt.Errorf("unsupported default function %s", v)
		}
	case *prisma.CallExpression:
		return defaultExpr(*v)
	case string:
		return &schema.Literal{V: "'" + strings.ReplaceAll(v, "'", "''") + "'"}, true, nil
	case bool, int, int64, float64:
		return &schema.Literal{V: fmt.Sprint(v)}, true, nil
	default:
		return nil, false, fmt.Errorf("unsupported default value %v (%T)", v, v)
	}
}

// relations adds the foreign keys and join tables of the relation fields of m.
func (c *Converter) relations(out *schema.Schema, s *prisma.Schema, m *prisma.Model, tables map[string]*schema.Table) error {
	t := tables[m.Name]
	for _, f := range m.Fields {
		of, ok := f.(*prisma.ObjectField)
		if !ok {
			continue
		}
		ref, ok := tables[of.Type]
		if !ok {
			if s.Enum(of.Type) != nil {
				continue
			}
			return fmt.Errorf("sqlschema: model %s: field %s references unknown type %q", m.Name, of.Name, of.Type)
		}
		refPK, err := primaryKey(ref)
		if err != nil {
			return err
		}
		switch {
		case !of.IsList:
			if _, exists := t.Column(of.Name + "Id"); exists {
				return fmt.Errorf("sqlschema: model %s: foreign key column %sId of field %s is already declared", m.Name, of.Name, of.Name)
			}
			col := schema.NewColumn(of.Name + "Id").
				SetType(refPK.Type.Type).
				SetNull(!of.IsRequired)
			t.AddColumns(col)
			fk := schema.NewForeignKey(m.Name + "_" + col.Name + "_fkey").
				AddColumns(col).
				SetRefTable(ref).
				AddRefColumns(refPK)
			c.setActions(fk, of.IsRequired)
			t.AddForeignKeys(fk)
		case singleBackReference(s.Model(of.Type), m.Name):
			// The other side holds the foreign key.
		default:
			if err := c.joinTable(out, t, ref); err != nil {
				return err
			}
		}
	}
	return nil
}

func (c *Converter) setActions(fk *schema.ForeignKey, required bool) {
	switch {
	case c.OnDelete == SetNull && required:
		fk.SetOnDelete(schema.Restrict)
	case c.OnDelete != "":
		fk.SetOnDelete(schema.ReferenceOption(c.OnDelete))
	}
	fk.SetOnUpdate(schema.Cascade)
}

// joinTable adds the implicit many-to-many table of a and b, named after
// the models in lexical order.
func (c *Converter) joinTable(out *schema.Schema, a, b *schema.Table) error {
	if a.Name > b.Name {
		a, b = b, a
	}
	name := "_" + a.Name + "To" + b.Name
	if _, ok := out.Table(name); ok {
		return nil
	}
	aPK, err := primaryKey(a)
	if err != nil {
		return err
	}
	bPK, err := primaryKey(b)
	if err != nil {
		return err
	}
	colA := schema.NewColumn("A").SetType(aPK.Type.Type)
	colB := schema.NewColumn("B").SetType(bPK.Type.Type)
	jt := schema.NewTable(name).AddColumns(colA, colB)
	jt.AddIndexes(
		schema.NewUniqueIndex(name+"_AB_unique").AddColumns(colA, colB),
		schema.NewIndex(name+"_B_index").AddColumns(colB),
	)
	jt.AddForeignKeys(
		schema.NewForeignKey(name+"_A_fkey").AddColumns(colA).SetRefTable(a).AddRefColumns(aPK).
			SetOnDelete(schema.Cascade).SetOnUpdate(schema.Cascade),
		schema.NewForeignKey(name+"_B_fkey").AddColumns(colB).SetRefTable(b).AddRefColumns(bPK).
			SetOnDelete(schema.Cascade).SetOnUpdate(schema.Cascade),
	)
	out.AddTables(jt)
	return nil
}

func primaryKey(t *schema.Table) (*schema.Column, error) {
	if t.PrimaryKey == nil || len(t.PrimaryKey.Parts) != 1 || t.PrimaryKey.Parts[0].C == nil {
		return nil, fmt.Errorf("sqlschema: model %s: relations require a single id field", t.Name)
	}
	return t.PrimaryKey.Parts[0].C, nil
}

// singleBackReference reports whether m has a non-list relation field to
// the named model.
func singleBackReference(m *prisma.Model, to string) bool {
	if m == nil {
		return false
	}
	for _, f := range m.Fields {
		if of, ok := f.(*prisma.ObjectField); ok && of.Type == to && !of.IsList {
			return true
		}
	}
	return false
}
