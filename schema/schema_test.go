package schema_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/b4s36t4/amplication/schema"
)

func TestDataTypes(t *testing.T) {
	types := schema.DataTypes()
	require.Len(t, types, 16)
	assert.Equal(t, schema.TypeSingleLineText, types[0])
	assert.Equal(t, schema.TypeRoles, types[len(types)-1])

	for _, dt := range types {
		assert.True(t, dt.Valid(), dt.String())
	}
	assert.False(t, schema.DataType("Username").Valid())
	assert.False(t, schema.DataType("").Valid())

	// The returned slice is a copy.
	types[0] = "Mutated"
	assert.Equal(t, schema.TypeSingleLineText, schema.DataTypes()[0])
}

func TestDataType_IsOptionSet(t *testing.T) {
	assert.True(t, schema.TypeOptionSet.IsOptionSet())
	assert.True(t, schema.TypeMultiSelectOptionSet.IsOptionSet())
	assert.False(t, schema.TypeLookup.IsOptionSet())
	assert.False(t, schema.TypeSingleLineText.IsOptionSet())
}

func TestField_Payloads(t *testing.T) {
	t.Run("option set", func(t *testing.T) {
		f := &schema.Field{
			Name:     "status",
			DataType: schema.TypeOptionSet,
			Properties: &schema.OptionSetProperties{Options: []schema.Option{
				{Label: "Active", Value: "active"},
				{Label: "Inactive", Value: "inactive"},
			}},
		}
		p, ok := f.OptionSet()
		require.True(t, ok)
		assert.Equal(t, []string{"active", "inactive"}, p.Values())
		_, ok = f.Lookup()
		assert.False(t, ok)
	})

	t.Run("lookup", func(t *testing.T) {
		f := &schema.Field{
			Name:       "orders",
			DataType:   schema.TypeLookup,
			Properties: &schema.LookupProperties{RelatedEntityID: "order", AllowMultipleSelection: true},
		}
		p, ok := f.Lookup()
		require.True(t, ok)
		assert.Equal(t, "order", p.RelatedEntityID)
		assert.True(t, p.AllowMultipleSelection)
	})

	t.Run("typed nil", func(t *testing.T) {
		var props *schema.LookupProperties
		f := &schema.Field{Name: "owner", DataType: schema.TypeLookup, Properties: props}
		_, ok := f.Lookup()
		assert.False(t, ok)
	})

	t.Run("nil values", func(t *testing.T) {
		var p *schema.OptionSetProperties
		assert.Nil(t, p.Values())
	})
}

func TestField_UnmarshalJSON(t *testing.T) {
	const doc = `{
		"id": "customer",
		"name": "Customer",
		"fields": [
			{"name": "id", "dataType": "Id"},
			{"name": "status", "dataType": "OptionSet", "required": true,
			 "properties": {"options": [{"label": "Active", "value": "Active"}, {"label": "Inactive", "value": "Inactive"}]}},
			{"name": "orders", "dataType": "Lookup",
			 "properties": {"relatedEntityId": "order", "allowMultipleSelection": true}},
			{"name": "nickname", "dataType": "SingleLineText", "properties": {"maxLength": 20}},
			{"name": "legacy", "dataType": "Username", "properties": {"anything": 1}}
		]
	}`
	var e schema.Entity
	require.NoError(t, json.Unmarshal([]byte(doc), &e))
	assert.Equal(t, "customer", e.ID)
	assert.Equal(t, "Customer", e.Name)
	require.Len(t, e.Fields, 5)

	assert.Equal(t, schema.TypeID, e.Fields[0].DataType)
	assert.Nil(t, e.Fields[0].Properties)

	status := e.Fields[1]
	assert.True(t, status.Required)
	opts, ok := status.OptionSet()
	require.True(t, ok)
	assert.Equal(t, []string{"Active", "Inactive"}, opts.Values())

	lookup, ok := e.Fields[2].Lookup()
	require.True(t, ok)
	assert.Equal(t, "order", lookup.RelatedEntityID)
	assert.True(t, lookup.AllowMultipleSelection)

	assert.Nil(t, e.Fields[3].Properties, "scalar types drop unknown properties")

	assert.Equal(t, schema.DataType("Username"), e.Fields[4].DataType, "unknown types decode without error")
	assert.Nil(t, e.Fields[4].Properties)
}

func TestField_UnmarshalJSON_Errors(t *testing.T) {
	var f schema.Field
	err := json.Unmarshal([]byte(`{"name": "status", "dataType": "OptionSet", "properties": {"options": "nope"}}`), &f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `field "status"`)

	err = json.Unmarshal([]byte(`[]`), &f)
	require.Error(t, err)
}

func TestField_JSONRoundTrip(t *testing.T) {
	in := &schema.Field{
		Name:       "owner",
		DataType:   schema.TypeLookup,
		Required:   true,
		Properties: &schema.LookupProperties{RelatedEntityID: "user"},
	}
	b, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"owner","dataType":"Lookup","required":true,"properties":{"relatedEntityId":"user"}}`, string(b))

	var out schema.Field
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, in, &out)
}

func TestField_UnmarshalYAML(t *testing.T) {
	const doc = `
id: customer
name: Customer
fields:
  - name: tags
    dataType: MultiSelectOptionSet
    properties:
      options:
        - value: b
        - value: a
  - name: manager
    dataType: Lookup
    required: true
    properties:
      relatedEntityId: user
  - name: empty
    dataType: OptionSet
    properties: null
  - name: total
    dataType: DecimalNumber
`
	var e schema.Entity
	require.NoError(t, yaml.Unmarshal([]byte(doc), &e))
	require.Len(t, e.Fields, 4)

	tags, ok := e.Fields[0].OptionSet()
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, tags.Values())

	manager, ok := e.Fields[1].Lookup()
	require.True(t, ok)
	assert.True(t, e.Fields[1].Required)
	assert.Equal(t, "user", manager.RelatedEntityID)
	assert.False(t, manager.AllowMultipleSelection)

	empty, ok := e.Fields[2].OptionSet()
	require.True(t, ok, "an explicit null still yields an empty payload")
	assert.Empty(t, empty.Options)

	assert.Equal(t, schema.TypeDecimalNumber, e.Fields[3].DataType)
	assert.Nil(t, e.Fields[3].Properties)
}

func TestField_YAMLRoundTrip(t *testing.T) {
	in := &schema.Field{
		Name:     "status",
		DataType: schema.TypeOptionSet,
		Properties: &schema.OptionSetProperties{Options: []schema.Option{
			{Label: "On", Value: "on"},
			{Value: "off"},
		}},
	}
	b, err := yaml.Marshal(in)
	require.NoError(t, err)

	var out schema.Field
	require.NoError(t, yaml.Unmarshal(b, &out))
	assert.Equal(t, in, &out)
}

func TestEntityNames(t *testing.T) {
	names := schema.NewEntityNames([]*schema.Entity{
		{ID: "c1", Name: "Customer"},
		{ID: "o1", Name: "Order"},
	})

	name, ok := names.Lookup("o1")
	assert.True(t, ok)
	assert.Equal(t, "Order", name)

	_, ok = names.Lookup("missing")
	assert.False(t, ok)

	name, err := names.Resolve("c1")
	require.NoError(t, err)
	assert.Equal(t, "Customer", name)

	_, err = names.Resolve("missing")
	require.Error(t, err)
	assert.True(t, schema.IsNotFound(err))
	assert.EqualError(t, err, `schema: entity not found (id="missing")`)
}

func TestNotFoundError(t *testing.T) {
	err := schema.NewNotFoundError("x")
	assert.Equal(t, "x", err.ID())
	assert.True(t, errors.Is(err, schema.ErrNotFound))
	assert.True(t, schema.IsNotFound(fmt.Errorf("wrapped: %w", err)))
	assert.True(t, schema.IsNotFound(schema.ErrNotFound))
	assert.False(t, schema.IsNotFound(errors.New("other")))
	assert.False(t, schema.IsNotFound(nil))
}
