package mixin

import (
	"fmt"
	"sort"
	"strings"

	"github.com/b4s36t4/amplication/schema"
)

// Mixin is a reusable set of fields.
type Mixin interface {
	Fields() []*schema.Field
}

// ID adds the "id" field.
type ID struct{}

// Fields of the ID mixin.
func (ID) Fields() []*schema.Field {
	return []*schema.Field{{Name: "id", DataType: schema.TypeID}}
}

// CreateTime adds the "createdAt" field.
type CreateTime struct{}

// Fields of the create time mixin.
func (CreateTime) Fields() []*schema.Field {
	return []*schema.Field{{Name: "createdAt", DataType: schema.TypeCreatedAt}}
}

// UpdateTime adds the "updatedAt" field.
type UpdateTime struct{}

// Fields of the update time mixin.
func (UpdateTime) Fields() []*schema.Field {
	return []*schema.Field{{Name: "updatedAt", DataType: schema.TypeUpdatedAt}}
}

// Time composes CreateTime and UpdateTime.
type Time struct{}

// Fields of the time mixin.
func (Time) Fields() []*schema.Field {
	return append(CreateTime{}.Fields(), UpdateTime{}.Fields()...)
}

var byName = map[string]Mixin{
	"id":          ID{},
	"create_time": CreateTime{},
	"update_time": UpdateTime{},
	"time":        Time{},
}

// Names returns the names accepted by Parse, sorted.
func Names() []string {
	names := make([]string, 0, len(byName))
	for name := range byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Parse returns the built-in mixin with the given name.
func Parse(name string) (Mixin, error) {
	m, ok := byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("mixin: unknown mixin %q (expected one of %s)", name, strings.Join(Names(), ", "))
	}
	return m, nil
}

// Apply prepends the fields of the mixins to e, in mixin order. Fields
// whose name e already declares are skipped. Each entity gets its own
// copy of the mixin fields.
func Apply(e *schema.Entity, mixins ...Mixin) {
	if e == nil {
		return
	}
	declared := make(map[string]bool, len(e.Fields))
	for _, f := range e.Fields {
		if f != nil {
			declared[f.Name] = true
		}
	}
	var fields []*schema.Field
	for _, m := range mixins {
		for _, f := range m.Fields() {
			if declared[f.Name] {
				continue
			}
			declared[f.Name] = true
			c := *f
			fields = append(fields, &c)
		}
	}
	e.Fields = append(fields, e.Fields...)
}
