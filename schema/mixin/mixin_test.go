package mixin_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b4s36t4/amplication/schema"
	"github.com/b4s36t4/amplication/schema/mixin"
)

func fieldNames(e *schema.Entity) []string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Name
	}
	return names
}

func TestBuiltinMixins(t *testing.T) {
	tests := []struct {
		mixin mixin.Mixin
		want  []*schema.Field
	}{
		{mixin.ID{}, []*schema.Field{{Name: "id", DataType: schema.TypeID}}},
		{mixin.CreateTime{}, []*schema.Field{{Name: "createdAt", DataType: schema.TypeCreatedAt}}},
		{mixin.UpdateTime{}, []*schema.Field{{Name: "updatedAt", DataType: schema.TypeUpdatedAt}}},
		{mixin.Time{}, []*schema.Field{
			{Name: "createdAt", DataType: schema.TypeCreatedAt},
			{Name: "updatedAt", DataType: schema.TypeUpdatedAt},
		}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.mixin.Fields())
	}
}

func TestApply(t *testing.T) {
	t.Run("prepends in mixin order", func(t *testing.T) {
		e := &schema.Entity{Name: "Customer", Fields: []*schema.Field{
			{Name: "name", DataType: schema.TypeSingleLineText},
		}}
		mixin.Apply(e, mixin.ID{}, mixin.Time{})
		assert.Equal(t, []string{"id", "createdAt", "updatedAt", "name"}, fieldNames(e))
	})

	t.Run("skips declared fields", func(t *testing.T) {
		e := &schema.Entity{Name: "Customer", Fields: []*schema.Field{
			{Name: "id", DataType: schema.TypeAutoNumber},
		}}
		mixin.Apply(e, mixin.ID{}, mixin.CreateTime{}, mixin.Time{})
		assert.Equal(t, []string{"createdAt", "updatedAt", "id"}, fieldNames(e))
		assert.Equal(t, schema.TypeAutoNumber, e.Fields[2].DataType)
	})

	t.Run("fields are not shared", func(t *testing.T) {
		a := &schema.Entity{Name: "A"}
		b := &schema.Entity{Name: "B"}
		mixin.Apply(a, mixin.ID{})
		mixin.Apply(b, mixin.ID{})
		require.Len(t, a.Fields, 1)
		require.Len(t, b.Fields, 1)
		assert.NotSame(t, a.Fields[0], b.Fields[0])
	})

	t.Run("nil entity", func(t *testing.T) {
		assert.NotPanics(t, func() { mixin.Apply(nil, mixin.ID{}) })
	})
}

func TestParse(t *testing.T) {
	for _, name := range mixin.Names() {
		m, err := mixin.Parse(name)
		require.NoError(t, err, name)
		assert.NotEmpty(t, m.Fields(), name)
	}

	m, err := mixin.Parse(" Time ")
	require.NoError(t, err)
	assert.Equal(t, mixin.Time{}, m)

	_, err = mixin.Parse("soft_delete")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create_time, id, time, update_time")
}
