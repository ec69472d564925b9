package gen

import (
	"github.com/b4s36t4/amplication/dialect/prisma"
	"github.com/b4s36t4/amplication/schema"
)

// CreateField resolves an entity field into its schema field. Lookup fields
// resolve their related entity name through names.
//
// CreateField is pure and safe for concurrent use.
func CreateField(f *schema.Field, names schema.EntityNames) (prisma.Field, error) {
	if f == nil {
		return nil, NewSchemaError("", "", "nil field", nil)
	}
	switch f.DataType {
	case schema.TypeSingleLineText,
		schema.TypeMultiLineText,
		schema.TypeEmail,
		schema.TypeGeographicAddress:
		return scalar(f.Name, prisma.String), nil
	case schema.TypeWholeNumber, schema.TypeAutoNumber:
		return scalar(f.Name, prisma.Int), nil
	case schema.TypeDecimalNumber:
		return scalar(f.Name, prisma.Float), nil
	case schema.TypeBoolean:
		return scalar(f.Name, prisma.Boolean), nil
	case schema.TypeDateTime:
		return scalar(f.Name, prisma.DateTime), nil
	case schema.TypeID:
		return &prisma.ScalarField{
			Name:       f.Name,
			Type:       prisma.String,
			IsRequired: true,
			IsID:       true,
			IsUnique:   true,
			Default:    prisma.Call(prisma.CUID),
		}, nil
	case schema.TypeCreatedAt:
		return &prisma.ScalarField{
			Name:       f.Name,
			Type:       prisma.DateTime,
			IsRequired: true,
			Default:    prisma.Call(prisma.Now),
		}, nil
	case schema.TypeUpdatedAt:
		return &prisma.ScalarField{
			Name:        f.Name,
			Type:        prisma.DateTime,
			IsRequired:  true,
			IsUpdatedAt: true,
		}, nil
	case schema.TypeOptionSet:
		return &prisma.ObjectField{
			Name:       f.Name,
			Type:       EnumName(f.Name),
			IsRequired: f.Required,
		}, nil
	case schema.TypeMultiSelectOptionSet:
		return &prisma.ObjectField{
			Name:       f.Name,
			Type:       EnumName(f.Name),
			IsList:     true,
			IsRequired: f.Required,
		}, nil
	case schema.TypeLookup:
		return lookupField(f, names)
	case schema.TypeRoles:
		return &prisma.ScalarField{
			Name:       f.Name,
			Type:       prisma.String,
			IsList:     true,
			IsRequired: f.Required,
		}, nil
	default:
		return nil, NewUnsupportedTypeError(f.Name, f.DataType)
	}
}

func scalar(name string, t prisma.ScalarType) *prisma.ScalarField {
	return &prisma.ScalarField{Name: name, Type: t, IsRequired: true}
}

func lookupField(f *schema.Field, names schema.EntityNames) (prisma.Field, error) {
	props, ok := f.Lookup()
	if !ok {
		return nil, NewSchemaError("", f.Name, "lookup field without lookup properties", nil)
	}
	related, err := names.Resolve(props.RelatedEntityID)
	if err != nil {
		return nil, NewRelationError(f.Name, props.RelatedEntityID, "related entity not found", err)
	}
	return &prisma.ObjectField{
		Name:       f.Name,
		Type:       related,
		IsList:     props.AllowMultipleSelection,
		IsRequired: f.Required,
	}, nil
}
