// Package gen compiles entity definitions into a Prisma schema document.
//
// # Pipeline
//
//	[]*schema.Entity + schema.EntityNames
//	        ↓
//	   CreateField (one output field per entity field)
//	        ↓
//	   CreateModel / CreateEnum
//	        ↓
//	   Generator.CreateSchema (models, enums, data source, generator)
//	        ↓
//	   prisma.Renderer (text)
//
// Every supported data type maps to exactly one field shape:
//
//	SingleLineText, MultiLineText, Email, GeographicAddress  String
//	WholeNumber, AutoNumber                                  Int
//	DecimalNumber                                            Float
//	Boolean                                                  Boolean
//	DateTime                                                 DateTime
//	Id                                                       String @id @default(cuid())
//	CreatedAt                                                DateTime @default(now())
//	UpdatedAt                                                DateTime @updatedAt
//	OptionSet                                                Enum<Field>
//	MultiSelectOptionSet                                     Enum<Field>[]
//	Lookup                                                   <RelatedEntity> or <RelatedEntity>[]
//	Roles                                                    String[]
//
// Any other data type fails with an *UnsupportedTypeError.
//
// # Usage
//
//	g, err := gen.New(gen.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	out, err := g.Generate(ctx, entities, schema.NewEntityNames(entities))
//
// Generation is deterministic: the same input always yields the same text.
// Entities are assembled concurrently but models keep the input order.
//
// # Artifacts
//
// Writer stores the rendered schema and optional companions (Go enum
// constants from GenEnums, SQL from the sqlschema dialect) in a target
// directory.
package gen
