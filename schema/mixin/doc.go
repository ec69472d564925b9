// Package mixin provides reusable sets of entity fields.
//
// Mixins share common fields across entities. Applying a mixin prepends
// its fields to an entity unless the entity already declares a field of
// the same name.
//
// # Built-in Mixins
//
//	// ID mixin: Adds an "id" field of type Id
//	mixin.ID{}
//
//	// CreateTime mixin: Adds a "createdAt" field
//	mixin.CreateTime{}
//
//	// UpdateTime mixin: Adds an "updatedAt" field
//	mixin.UpdateTime{}
//
//	// Time mixin: Combines CreateTime and UpdateTime
//	mixin.Time{}
//
// # Using Mixins
//
//	for _, e := range entities {
//	    mixin.Apply(e, mixin.ID{}, mixin.Time{})
//	}
//
// Mixins can also be looked up by name, which is how the CLI configures
// them:
//
//	m, err := mixin.Parse("time")
//
// # Custom Mixins
//
// Any type with a Fields method is a mixin:
//
//	type Audit struct{}
//
//	func (Audit) Fields() []*schema.Field {
//	    return []*schema.Field{
//	        {Name: "createdBy", DataType: schema.TypeSingleLineText},
//	    }
//	}
package mixin
