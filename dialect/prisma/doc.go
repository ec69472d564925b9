// Package prisma provides the Prisma schema language AST and its printer.
//
// A schema document is assembled from plain values:
//
//	s := &prisma.Schema{
//	    DataSource: &prisma.DataSource{
//	        Name:     "postgres",
//	        Provider: prisma.PostgreSQL,
//	        URL:      prisma.EnvURL("POSTGRESQL_URL"),
//	    },
//	    Generators: []*prisma.Generator{{Name: "client", Provider: "prisma-client-js"}},
//	    Models: []*prisma.Model{{
//	        Name: "User",
//	        Fields: []prisma.Field{
//	            &prisma.ScalarField{Name: "id", Type: prisma.String, IsRequired: true, IsID: true, Default: prisma.Call(prisma.CUID)},
//	        },
//	    }},
//	}
//
// and rendered to text by a [Renderer]:
//
//	text, err := prisma.Print(ctx, s)
//
// The printer validates identifiers and aligns fields into columns the way
// `prisma format` does. Blocks are emitted in a fixed order: data source,
// generators, enums, models.
package prisma
