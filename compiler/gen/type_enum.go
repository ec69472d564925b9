package gen

import (
	"slices"

	"github.com/b4s36t4/amplication/dialect/prisma"
	"github.com/b4s36t4/amplication/schema"
)

// CreateEnum returns the enum backing an option-set field, or false for
// any other field. Values keep the order of the field options.
func CreateEnum(f *schema.Field) (*prisma.Enum, bool) {
	if f == nil || !f.DataType.IsOptionSet() {
		return nil, false
	}
	var values []string
	if props, ok := f.OptionSet(); ok {
		values = props.Values()
	}
	return &prisma.Enum{Name: EnumName(f.Name), Values: values}, true
}

// createEnums collects the enums of all option-set fields in traversal
// order. With dedup, identical same-name enums collapse into the first one.
func createEnums(entities []*schema.Entity, dedup bool) ([]*prisma.Enum, error) {
	var (
		enums []*prisma.Enum
		seen  = make(map[string]*prisma.Enum)
		owner = make(map[string]string)
	)
	for _, e := range entities {
		for _, f := range e.Fields {
			enum, ok := CreateEnum(f)
			if !ok {
				continue
			}
			if dedup {
				if prev, ok := seen[enum.Name]; ok {
					if !slices.Equal(prev.Values, enum.Values) {
						return nil, NewSchemaError(e.Name, f.Name, "enum "+enum.Name+" conflicts with the one declared by "+owner[enum.Name], nil)
					}
					continue
				}
				seen[enum.Name] = enum
				owner[enum.Name] = e.Name + "." + f.Name
			}
			enums = append(enums, enum)
		}
	}
	return enums, nil
}
