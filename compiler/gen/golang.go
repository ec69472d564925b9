package gen

import (
	"bytes"
	"strconv"

	"github.com/dave/jennifer/jen"

	"github.com/b4s36t4/amplication/dialect/prisma"
)

// DefaultHeader is the header comment of generated Go files.
const DefaultHeader = "Code generated by prismagen. DO NOT EDIT."

// GenEnums generates a Go file declaring one string type per schema enum,
// with a constant per value, a Valid method and a Values function.
// Enums sharing a name are declared once.
func GenEnums(pkg string, s *prisma.Schema) *jen.File {
	return genEnums(pkg, DefaultHeader, s)
}

func genEnums(pkg, header string, s *prisma.Schema) *jen.File {
	f := jen.NewFile(pkg)
	if header != "" {
		f.HeaderComment(header)
	}
	if s == nil {
		return f
	}
	declared := make(map[string]bool)
	for _, e := range s.Enums {
		if declared[e.Name] {
			continue
		}
		declared[e.Name] = true
		genEnum(f, e)
	}
	return f
}

func genEnum(f *jen.File, e *prisma.Enum) {
	consts := enumConsts(e)

	f.Commentf("%s is the %s enum.", e.Name, e.Name)
	f.Type().Id(e.Name).String()

	if len(consts) > 0 {
		f.Const().DefsFunc(func(g *jen.Group) {
			for i, c := range consts {
				g.Id(c).Id(e.Name).Op("=").Lit(e.Values[i])
			}
		})
	}

	f.Commentf("Valid reports whether e is a known %s value.", e.Name)
	f.Func().Params(jen.Id("e").Id(e.Name)).Id("Valid").Params().Bool().BlockFunc(func(g *jen.Group) {
		if len(consts) == 0 {
			g.Return(jen.False())
			return
		}
		g.Switch(jen.Id("e")).Block(
			jen.CaseFunc(func(g *jen.Group) {
				for _, c := range consts {
					g.Id(c)
				}
			}).Block(jen.Return(jen.True())),
		)
		g.Return(jen.False())
	})

	f.Commentf("%sValues returns all %s values in declaration order.", e.Name, e.Name)
	f.Func().Id(e.Name + "Values").Params().Index().Id(e.Name).Block(
		jen.Return(jen.Index().Id(e.Name).ValuesFunc(func(g *jen.Group) {
			for _, c := range consts {
				g.Id(c)
			}
		})),
	)
}

// enumConsts returns the constant identifiers of the enum values.
// Clashing identifiers get their position appended.
func enumConsts(e *prisma.Enum) []string {
	consts := make([]string, len(e.Values))
	used := make(map[string]bool, len(e.Values))
	for i, v := range e.Values {
		c := e.Name + Pascal(v)
		if used[c] {
			c += "_" + strconv.Itoa(i)
		}
		used[c] = true
		consts[i] = c
	}
	return consts
}

// RenderEnums renders the Go enum file of s with the configured header.
func (g *Generator) RenderEnums(pkg string, s *prisma.Schema) ([]byte, error) {
	var buf bytes.Buffer
	if err := genEnums(pkg, g.config.Header, s).Render(&buf); err != nil {
		return nil, NewGenerationError("enums", "enums.go", "render", err)
	}
	return buf.Bytes(), nil
}
