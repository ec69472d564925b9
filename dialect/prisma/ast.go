package prisma

import "github.com/b4s36t4/amplication/dialect"

// ScalarType is a Prisma primitive type.
type ScalarType string

// Scalar types.
const (
	String   ScalarType = "String"
	Int      ScalarType = "Int"
	Float    ScalarType = "Float"
	Boolean  ScalarType = "Boolean"
	DateTime ScalarType = "DateTime"
	JSON     ScalarType = "Json"
)

// Provider is a data source provider name.
type Provider string

// PostgreSQL is the only supported data source provider.
const PostgreSQL Provider = dialect.PostgresProvider

// Built-in functions usable in @default expressions.
const (
	CUID          = "cuid"
	UUID          = "uuid"
	Now           = "now"
	AutoIncrement = "autoincrement"
)

// CallExpression is a call to a built-in Prisma function, e.g. cuid().
// It is evaluated by the Prisma runtime, never by the compiler.
type CallExpression struct {
	Callee string
}

// Call returns a call expression of the given built-in function.
func Call(callee string) CallExpression {
	return CallExpression{Callee: callee}
}

// String returns the expression in schema syntax.
func (c CallExpression) String() string { return c.Callee + "()" }

// Field is either a *ScalarField or an *ObjectField.
type Field interface {
	FieldName() string
	field()
}

// ScalarField is a field holding a primitive value.
type ScalarField struct {
	Name        string
	Type        ScalarType
	IsList      bool
	IsRequired  bool
	IsUnique    bool
	IsID        bool
	IsUpdatedAt bool
	// Default is a literal (string, bool, int, int64, float64) or a
	// CallExpression. Nil means no default.
	Default any
}

// FieldName implements Field.
func (f *ScalarField) FieldName() string { return f.Name }

func (*ScalarField) field() {}

// ObjectField is a field referencing another model or an enum.
type ObjectField struct {
	Name       string
	Type       string
	IsList     bool
	IsRequired bool
}

// FieldName implements Field.
func (f *ObjectField) FieldName() string { return f.Name }

func (*ObjectField) field() {}

// Model is a model block.
type Model struct {
	Name   string
	Fields []Field
}

// Enum is an enum block.
type Enum struct {
	Name   string
	Values []string
}

// DataSourceURL is the url of a data source: a literal or an environment
// variable resolved when the schema is loaded.
type DataSourceURL struct {
	Value   string
	FromEnv bool
}

// EnvURL returns a url read from the named environment variable.
func EnvURL(name string) DataSourceURL {
	return DataSourceURL{Value: name, FromEnv: true}
}

// DataSource is the datasource block.
type DataSource struct {
	Name     string
	Provider Provider
	URL      DataSourceURL
}

// Generator is a generator block.
type Generator struct {
	Name     string
	Provider string
	Output   string
}

// Schema is a complete schema document.
type Schema struct {
	Models     []*Model
	Enums      []*Enum
	DataSource *DataSource
	Generators []*Generator
}

// Model returns the model with the given name, or nil.
func (s *Schema) Model(name string) *Model {
	for _, m := range s.Models {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// Enum returns the first enum with the given name, or nil.
func (s *Schema) Enum(name string) *Enum {
	for _, e := range s.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

// Field returns the field with the given name, or nil.
func (m *Model) Field(name string) Field {
	for _, f := range m.Fields {
		if f != nil && f.FieldName() == name {
			return f
		}
	}
	return nil
}
