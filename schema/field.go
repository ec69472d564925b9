package schema

import "slices"

// DataType is the abstract type tag of an entity field.
type DataType string

// Supported data types.
const (
	TypeSingleLineText       DataType = "SingleLineText"
	TypeMultiLineText        DataType = "MultiLineText"
	TypeEmail                DataType = "Email"
	TypeWholeNumber          DataType = "WholeNumber"
	TypeDateTime             DataType = "DateTime"
	TypeDecimalNumber        DataType = "DecimalNumber"
	TypeLookup               DataType = "Lookup"
	TypeMultiSelectOptionSet DataType = "MultiSelectOptionSet"
	TypeOptionSet            DataType = "OptionSet"
	TypeBoolean              DataType = "Boolean"
	TypeGeographicAddress    DataType = "GeographicAddress"
	TypeID                   DataType = "Id"
	TypeCreatedAt            DataType = "CreatedAt"
	TypeUpdatedAt            DataType = "UpdatedAt"
	TypeAutoNumber           DataType = "AutoNumber"

	// TypeRoles is a private type reserved for the generated user entity.
	// It is never offered to modelers.
	TypeRoles DataType = "Roles"
)

var dataTypes = []DataType{
	TypeSingleLineText,
	TypeMultiLineText,
	TypeEmail,
	TypeWholeNumber,
	TypeDateTime,
	TypeDecimalNumber,
	TypeLookup,
	TypeMultiSelectOptionSet,
	TypeOptionSet,
	TypeBoolean,
	TypeGeographicAddress,
	TypeID,
	TypeCreatedAt,
	TypeUpdatedAt,
	TypeAutoNumber,
	TypeRoles,
}

// DataTypes returns all supported data types in declaration order.
func DataTypes() []DataType {
	return slices.Clone(dataTypes)
}

// Valid reports whether t is one of the supported data types.
func (t DataType) Valid() bool {
	return slices.Contains(dataTypes, t)
}

// String implements the fmt.Stringer interface.
func (t DataType) String() string { return string(t) }

// IsOptionSet reports whether fields of this type carry an option set.
func (t DataType) IsOptionSet() bool {
	return t == TypeOptionSet || t == TypeMultiSelectOptionSet
}

// Properties is the type-specific payload of a field. The concrete type is
// determined by the field's DataType.
type Properties interface {
	properties()
}

// Option is a single value of an option set.
type Option struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Value string `json:"value" yaml:"value"`
}

// OptionSetProperties holds the closed set of values of an OptionSet or
// MultiSelectOptionSet field. Option order is significant.
type OptionSetProperties struct {
	Options []Option `json:"options" yaml:"options"`
}

func (*OptionSetProperties) properties() {}

// Values returns the option values in declaration order.
func (p *OptionSetProperties) Values() []string {
	if p == nil {
		return nil
	}
	values := make([]string, 0, len(p.Options))
	for _, o := range p.Options {
		values = append(values, o.Value)
	}
	return values
}

// LookupProperties holds the relation target of a Lookup field.
type LookupProperties struct {
	RelatedEntityID        string `json:"relatedEntityId" yaml:"relatedEntityId"`
	AllowMultipleSelection bool   `json:"allowMultipleSelection,omitempty" yaml:"allowMultipleSelection,omitempty"`
}

func (*LookupProperties) properties() {}

// Field is a single attribute of an entity.
type Field struct {
	Name       string
	DataType   DataType
	Required   bool
	Properties Properties
}

// OptionSet returns the option set payload of the field, if any.
func (f *Field) OptionSet() (*OptionSetProperties, bool) {
	p, ok := f.Properties.(*OptionSetProperties)
	return p, ok && p != nil
}

// Lookup returns the relation payload of the field, if any.
func (f *Field) Lookup() (*LookupProperties, bool) {
	p, ok := f.Properties.(*LookupProperties)
	return p, ok && p != nil
}

// Entity is a modeled business object.
type Entity struct {
	ID     string   `json:"id" yaml:"id"`
	Name   string   `json:"name" yaml:"name"`
	Fields []*Field `json:"fields" yaml:"fields"`
}
