package gen

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"golang.org/x/sync/errgroup"

	"github.com/b4s36t4/amplication/dialect/prisma"
	"github.com/b4s36t4/amplication/schema"
)

func customerOrder() []*schema.Entity {
	return []*schema.Entity{
		{
			ID:   "e-customer",
			Name: "Customer",
			Fields: []*schema.Field{
				{Name: "id", DataType: schema.TypeID},
				{Name: "createdAt", DataType: schema.TypeCreatedAt},
				{Name: "updatedAt", DataType: schema.TypeUpdatedAt},
				{Name: "name", DataType: schema.TypeSingleLineText, Required: true},
				{Name: "email", DataType: schema.TypeEmail},
				{Name: "status", DataType: schema.TypeOptionSet, Properties: optionSet("Active", "Inactive")},
				{Name: "orders", DataType: schema.TypeLookup, Properties: &schema.LookupProperties{RelatedEntityID: "e-order", AllowMultipleSelection: true}},
			},
		},
		{
			ID:   "e-order",
			Name: "Order",
			Fields: []*schema.Field{
				{Name: "id", DataType: schema.TypeID},
				{Name: "customer", DataType: schema.TypeLookup, Required: true, Properties: &schema.LookupProperties{RelatedEntityID: "e-customer"}},
				{Name: "total", DataType: schema.TypeDecimalNumber},
				{Name: "tags", DataType: schema.TypeMultiSelectOptionSet, Required: true, Properties: optionSet("Gift", "Express")},
			},
		},
	}
}

const customerOrderSchema = `datasource postgres {
  provider = "postgresql"
  url      = env("POSTGRESQL_URL")
}

generator client {
  provider = "prisma-client-js"
}

enum EnumStatus {
  Active
  Inactive
}

enum EnumTags {
  Gift
  Express
}

model Customer {
  id        String      @id @default(cuid())
  createdAt DateTime    @default(now())
  updatedAt DateTime    @updatedAt
  name      String
  email     String
  status    EnumStatus?
  orders    Order[]
}

model Order {
  id       String     @id @default(cuid())
  customer Customer
  total    Float
  tags     EnumTags[]
}
`

func TestCreatePrismaSchema(t *testing.T) {
	entities := customerOrder()
	out, err := CreatePrismaSchema(context.Background(), entities, schema.NewEntityNames(entities))
	require.NoError(t, err)
	assert.Equal(t, customerOrderSchema, out)
}

func TestCreatePrismaSchema_Concurrent(t *testing.T) {
	entities := customerOrder()
	names := schema.NewEntityNames(entities)
	var eg errgroup.Group
	for range 8 {
		eg.Go(func() error {
			out, err := CreatePrismaSchema(context.Background(), entities, names)
			if err == nil && out != customerOrderSchema {
				return fmt.Errorf("unexpected schema:\n%s", out)
			}
			return err
		})
	}
	require.NoError(t, eg.Wait())
}

func TestCreatePrismaSchema_Empty(t *testing.T) {
	out, err := CreatePrismaSchema(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, `datasource postgres {
  provider = "postgresql"
  url      = env("POSTGRESQL_URL")
}

generator client {
  provider = "prisma-client-js"
}
`, out)
}

func TestGenerator_CreateSchema(t *testing.T) {
	entities := customerOrder()
	g, err := New()
	require.NoError(t, err)

	s, err := g.CreateSchema(context.Background(), entities, schema.NewEntityNames(entities))
	require.NoError(t, err)

	require.Len(t, s.Models, 2)
	assert.Equal(t, "Customer", s.Models[0].Name)
	assert.Equal(t, "Order", s.Models[1].Name)

	require.Len(t, s.Enums, 2)
	assert.Equal(t, "EnumStatus", s.Enums[0].Name)
	assert.Equal(t, "EnumTags", s.Enums[1].Name)

	assert.Equal(t, &DataSource, s.DataSource)
	assert.Equal(t, []*prisma.Generator{&ClientGenerator}, s.Generators)

	orders := s.Model("Customer").Field("orders")
	assert.Equal(t, &prisma.ObjectField{Name: "orders", Type: "Order", IsList: true}, orders)

	t.Run("fixed blocks are copies", func(t *testing.T) {
		s.DataSource.Name = "changed"
		assert.Equal(t, "postgres", DataSource.Name)
	})
}

func TestGenerator_EmptyEntity(t *testing.T) {
	entities := []*schema.Entity{{ID: "e-1", Name: "Empty"}}
	out, err := CreatePrismaSchema(context.Background(), entities, schema.NewEntityNames(entities))
	require.NoError(t, err)
	assert.Contains(t, out, "model Empty {\n}\n")
}

func TestGenerator_Deterministic(t *testing.T) {
	var entities []*schema.Entity
	for i := range 50 {
		entities = append(entities, &schema.Entity{
			ID:   fmt.Sprintf("e-%d", i),
			Name: fmt.Sprintf("Entity%d", i),
			Fields: []*schema.Field{
				{Name: "id", DataType: schema.TypeID},
				{Name: fmt.Sprintf("state%d", i), DataType: schema.TypeOptionSet, Properties: optionSet("A", "B")},
			},
		})
	}
	names := schema.NewEntityNames(entities)

	serial, err := New(WithWorkers(1))
	require.NoError(t, err)
	parallel, err := New(WithWorkers(16))
	require.NoError(t, err)

	want, err := serial.Generate(context.Background(), entities, names)
	require.NoError(t, err)
	for range 5 {
		got, err := parallel.Generate(context.Background(), entities, names)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	s, err := parallel.CreateSchema(context.Background(), entities, names)
	require.NoError(t, err)
	for i, m := range s.Models {
		assert.Equal(t, fmt.Sprintf("Entity%d", i), m.Name)
		assert.Equal(t, fmt.Sprintf("EnumState%d", i), s.Enums[i].Name)
	}
}

func TestGenerator_OptionOrder(t *testing.T) {
	entities := []*schema.Entity{{
		ID:     "e-1",
		Name:   "Ticket",
		Fields: []*schema.Field{{Name: "priority", DataType: schema.TypeOptionSet, Properties: optionSet("Low", "High", "Medium")}},
	}}
	out, err := CreatePrismaSchema(context.Background(), entities, schema.NewEntityNames(entities))
	require.NoError(t, err)
	assert.Contains(t, out, "enum EnumPriority {\n  Low\n  High\n  Medium\n}\n")
}

func TestGenerator_DuplicateEnums(t *testing.T) {
	entities := []*schema.Entity{
		{ID: "e-a", Name: "A", Fields: []*schema.Field{{Name: "status", DataType: schema.TypeOptionSet, Properties: optionSet("On")}}},
		{ID: "e-b", Name: "B", Fields: []*schema.Field{{Name: "status", DataType: schema.TypeOptionSet, Properties: optionSet("On")}}},
	}
	names := schema.NewEntityNames(entities)

	t.Run("preserved", func(t *testing.T) {
		g, err := New()
		require.NoError(t, err)
		s, err := g.CreateSchema(context.Background(), entities, names)
		require.NoError(t, err)
		assert.Len(t, s.Enums, 2)
	})

	t.Run("dedup", func(t *testing.T) {
		g, err := New(WithEnumDedup())
		require.NoError(t, err)
		out, err := g.Generate(context.Background(), entities, names)
		require.NoError(t, err)
		assert.Equal(t, 1, strings.Count(out, "enum EnumStatus {"))
	})
}

func TestGenerator_Errors(t *testing.T) {
	t.Run("unknown data type", func(t *testing.T) {
		entities := []*schema.Entity{{ID: "e-1", Name: "Customer", Fields: []*schema.Field{{Name: "photo", DataType: "Image"}}}}
		out, err := CreatePrismaSchema(context.Background(), entities, schema.NewEntityNames(entities))
		require.Error(t, err)
		assert.Empty(t, out)
		assert.True(t, errors.Is(err, ErrUnsupportedType))
		assert.Contains(t, err.Error(), `"Image"`)
	})

	t.Run("unresolved lookup", func(t *testing.T) {
		entities := []*schema.Entity{{ID: "e-1", Name: "Order", Fields: []*schema.Field{
			{Name: "customer", DataType: schema.TypeLookup, Properties: &schema.LookupProperties{RelatedEntityID: "e-missing"}},
		}}}
		_, err := CreatePrismaSchema(context.Background(), entities, schema.NewEntityNames(entities))
		require.Error(t, err)

		var relErr *RelationError
		require.ErrorAs(t, err, &relErr)
		assert.Equal(t, "Order", relErr.From)
		assert.Equal(t, "e-missing", relErr.To)
	})

	t.Run("first failing entity wins", func(t *testing.T) {
		var entities []*schema.Entity
		for i := range 20 {
			entities = append(entities, &schema.Entity{
				ID:     fmt.Sprintf("e-%d", i),
				Name:   fmt.Sprintf("Entity%d", i),
				Fields: []*schema.Field{{Name: "bad", DataType: schema.DataType(fmt.Sprintf("Bad%d", i))}},
			})
		}
		g, err := New(WithWorkers(8))
		require.NoError(t, err)
		for range 5 {
			_, err := g.CreateSchema(context.Background(), entities, schema.NewEntityNames(entities))
			var typeErr *UnsupportedTypeError
			require.ErrorAs(t, err, &typeErr)
			assert.Equal(t, "Entity0", typeErr.Entity)
		}
	})

	t.Run("option set without options", func(t *testing.T) {
		entities := []*schema.Entity{{ID: "e-1", Name: "A", Fields: []*schema.Field{
			{Name: "id", DataType: schema.TypeID},
			{Name: "status", DataType: schema.TypeOptionSet, Properties: &schema.OptionSetProperties{}},
			{Name: "tags", DataType: schema.TypeMultiSelectOptionSet},
		}}}
		out, err := CreatePrismaSchema(context.Background(), entities, schema.NewEntityNames(entities))
		require.Error(t, err)
		assert.Empty(t, out)
		assert.ErrorIs(t, err, prisma.ErrInvalidSchema)
		assert.Contains(t, err.Error(), "enum EnumStatus: enum has no values")
	})

	t.Run("renderer error is returned unchanged", func(t *testing.T) {
		renderErr := errors.New("renderer unavailable")
		g, err := New(WithRenderer(prisma.RenderFunc(func(context.Context, *prisma.Schema) (string, error) {
			return "", renderErr
		})))
		require.NoError(t, err)
		entities := customerOrder()
		out, err := g.Generate(context.Background(), entities, schema.NewEntityNames(entities))
		assert.Empty(t, out)
		assert.Same(t, renderErr, err)
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		entities := customerOrder()
		_, err := CreatePrismaSchema(ctx, entities, schema.NewEntityNames(entities))
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestGenerator_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	g, err := New(WithLogger(zap.New(core)))
	require.NoError(t, err)

	entities := customerOrder()
	_, err = g.Generate(context.Background(), entities, schema.NewEntityNames(entities))
	require.NoError(t, err)

	assert.Equal(t, 2, logs.FilterMessage("model assembled").Len())
	assert.Equal(t, 2, logs.FilterMessage("enum assembled").Len())
	generated := logs.FilterMessage("schema generated").All()
	require.Len(t, generated, 1)
	assert.Equal(t, zapcore.InfoLevel, generated[0].Level)
	assert.Equal(t, int64(2), generated[0].ContextMap()["models"])
}

func TestNew_InvalidOption(t *testing.T) {
	g, err := New(WithWorkers(0))
	assert.Nil(t, g)
	assert.True(t, IsConfigError(err))
}
