package gen

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/b4s36t4/amplication/schema"
)

func TestUnsupportedTypeError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &UnsupportedTypeError{Entity: "Customer", Field: "photo", DataType: "Image"}
		assert.Equal(t, `prismagen: unfamiliar data type "Image" on entity Customer field photo`, err.Error())
	})

	t.Run("Error message with data type only", func(t *testing.T) {
		err := NewUnsupportedTypeError("", "Image")
		assert.Equal(t, `prismagen: unfamiliar data type "Image"`, err.Error())
	})

	t.Run("Is matches ErrUnsupportedType", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", NewUnsupportedTypeError("photo", "Image"))
		assert.True(t, errors.Is(err, ErrUnsupportedType))
		assert.False(t, errors.Is(err, ErrInvalidSchema))
		assert.True(t, IsUnsupportedTypeError(err))
	})
}

func TestRelationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := schema.NewNotFoundError("e-9")
		err := NewRelationError("orders", "e-9", "related entity not found", cause)
		err.From = "Customer"

		assert.Contains(t, err.Error(), "prismagen: relation error")
		assert.Contains(t, err.Error(), "on field orders")
		assert.Contains(t, err.Error(), "(Customer -> e-9)")
		assert.Contains(t, err.Error(), "related entity not found")
		assert.Contains(t, err.Error(), `id="e-9"`)
	})

	t.Run("Error message without owner", func(t *testing.T) {
		err := NewRelationError("orders", "e-9", "", nil)
		assert.Equal(t, "prismagen: relation error on field orders (-> e-9)", err.Error())
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := schema.NewNotFoundError("e-9")
		err := NewRelationError("orders", "e-9", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, schema.ErrNotFound))
		assert.True(t, schema.IsNotFound(err))
	})

	t.Run("Is matches ErrUnresolvedRelation", func(t *testing.T) {
		err := NewRelationError("orders", "e-9", "", nil)
		assert.True(t, errors.Is(err, ErrUnresolvedRelation))
		assert.True(t, IsRelationError(err))
		assert.False(t, IsRelationError(errors.New("other")))
	})
}

func TestSchemaError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := NewSchemaError("Customer", "orders", "invalid lookup", cause)

		assert.Contains(t, err.Error(), "prismagen: schema error")
		assert.Contains(t, err.Error(), "on entity Customer")
		assert.Contains(t, err.Error(), "field orders")
		assert.Contains(t, err.Error(), "invalid lookup")
		assert.Contains(t, err.Error(), "underlying error")
	})

	t.Run("Error message with entity only", func(t *testing.T) {
		err := &SchemaError{Entity: "Customer"}
		assert.Contains(t, err.Error(), "on entity Customer")
		assert.NotContains(t, err.Error(), "field")
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("root cause")
		err := NewSchemaError("Customer", "", "", cause)

		assert.Equal(t, cause, err.Unwrap())
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("Is matches ErrInvalidSchema", func(t *testing.T) {
		err := NewSchemaError("Customer", "", "", nil)
		assert.True(t, errors.Is(err, ErrInvalidSchema))
		assert.True(t, IsSchemaError(err))
		assert.False(t, IsSchemaError(errors.New("other")))
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with value", func(t *testing.T) {
		err := NewConfigError("Workers", -1, "workers must be positive")
		assert.Equal(t, `prismagen: config error for "Workers" (value: -1): workers must be positive`, err.Error())
	})

	t.Run("Error message without value", func(t *testing.T) {
		err := NewConfigError("Renderer", nil, "renderer cannot be nil")
		assert.Equal(t, `prismagen: config error for "Renderer": renderer cannot be nil`, err.Error())
	})

	t.Run("Is matches ErrMissingConfig", func(t *testing.T) {
		err := NewConfigError("Target", nil, "")
		assert.True(t, errors.Is(err, ErrMissingConfig))
		assert.True(t, IsConfigError(err))
		assert.False(t, IsConfigError(errors.New("other")))
	})
}

func TestGenerationError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "schema.prisma", "write file", cause)
		assert.Equal(t, "prismagen: generation error in phase write (file: schema.prisma): write file: disk full", err.Error())
	})

	t.Run("Unwrap and Is", func(t *testing.T) {
		cause := errors.New("disk full")
		err := NewGenerationError("write", "", "", cause)

		assert.True(t, errors.Is(err, cause))
		assert.True(t, errors.Is(err, ErrGenerationFailed))
		assert.True(t, IsGenerationError(err))
		assert.False(t, IsGenerationError(cause))
	})
}

func TestWithEntity(t *testing.T) {
	t.Run("unsupported type", func(t *testing.T) {
		err := withEntity(NewUnsupportedTypeError("photo", "Image"), "Customer")
		var typeErr *UnsupportedTypeError
		require.ErrorAs(t, err, &typeErr)
		assert.Equal(t, "Customer", typeErr.Entity)
	})

	t.Run("relation", func(t *testing.T) {
		err := withEntity(NewRelationError("orders", "e-9", "", nil), "Customer")
		var relErr *RelationError
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, "Customer", relErr.From)
	})

	t.Run("schema", func(t *testing.T) {
		err := withEntity(NewSchemaError("", "orders", "", nil), "Customer")
		var schemaErr *SchemaError
		require.ErrorAs(t, err, &schemaErr)
		assert.Equal(t, "Customer", schemaErr.Entity)
	})

	t.Run("other errors pass through", func(t *testing.T) {
		cause := errors.New("other")
		assert.Equal(t, cause, withEntity(cause, "Customer"))
	})
}
