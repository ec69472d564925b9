package gen

import (
	"github.com/b4s36t4/amplication/dialect/prisma"
	"github.com/b4s36t4/amplication/schema"
)

// CreateModel assembles the model of an entity. Fields keep their input
// order. The first field that fails to resolve aborts the model.
func CreateModel(e *schema.Entity, names schema.EntityNames) (*prisma.Model, error) {
	if e == nil {
		return nil, NewSchemaError("", "", "nil entity", nil)
	}
	fields := make([]prisma.Field, 0, len(e.Fields))
	for _, f := range e.Fields {
		pf, err := CreateField(f, names)
		if err != nil {
			return nil, withEntity(err, e.Name)
		}
		fields = append(fields, pf)
	}
	return &prisma.Model{Name: e.Name, Fields: fields}, nil
}
