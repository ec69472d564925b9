package prisma

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Renderer renders a schema document to text.
type Renderer interface {
	Render(ctx context.Context, s *Schema) (string, error)
}

// RenderFunc adapts a function to the Renderer interface.
type RenderFunc func(ctx context.Context, s *Schema) (string, error)

// Render implements Renderer.
func (f RenderFunc) Render(ctx context.Context, s *Schema) (string, error) { return f(ctx, s) }

// ErrInvalidSchema is returned by the printer for documents that cannot be
// expressed in the schema language.
var ErrInvalidSchema = errors.New("prisma: invalid schema")

// PrintError describes the block and element the printer rejected.
type PrintError struct {
	Block   string // "model User", "enum EnumStatus", ...
	Element string
	Message string
}

// Error implements the error interface.
func (e *PrintError) Error() string {
	var b strings.Builder
	b.WriteString("prisma: ")
	if e.Block != "" {
		b.WriteString(e.Block)
		if e.Element != "" {
			b.WriteString(".")
			b.WriteString(e.Element)
		}
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	return b.String()
}

// Is reports whether the target matches ErrInvalidSchema.
func (e *PrintError) Is(target error) bool {
	return target == ErrInvalidSchema
}

var identRe = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*$`)

// Printer renders schema documents in canonical `prisma format` layout.
type Printer struct {
	// Indent is the number of spaces a block body is indented by.
	// Zero means 2.
	Indent int
}

// Print renders s with the default printer.
func Print(ctx context.Context, s *Schema) (string, error) {
	return (&Printer{}).Render(ctx, s)
}

// Render implements Renderer.
func (p *Printer) Render(ctx context.Context, s *Schema) (string, error) {
	if s == nil {
		return "", &PrintError{Message: "nil schema"}
	}
	var blocks []string
	if ds := s.DataSource; ds != nil {
		b, err := p.dataSource(ds)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, b)
	}
	for _, g := range s.Generators {
		b, err := p.generator(g)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, b)
	}
	for _, e := range s.Enums {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		b, err := p.enum(e)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, b)
	}
	for _, m := range s.Models {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		b, err := p.model(m)
		if err != nil {
			return "", err
		}
		blocks = append(blocks, b)
	}
	if len(blocks) == 0 {
		return "", nil
	}
	return strings.Join(blocks, "\n\n") + "\n", nil
}

func (p *Printer) indent() string {
	if p.Indent <= 0 {
		return "  "
	}
	return strings.Repeat(" ", p.Indent)
}

func (p *Printer) dataSource(ds *DataSource) (string, error) {
	block := "datasource " + ds.Name
	if !identRe.MatchString(ds.Name) {
		return "", &PrintError{Block: block, Message: fmt.Sprintf("invalid name %q", ds.Name)}
	}
	if ds.Provider == "" {
		return "", &PrintError{Block: block, Message: "missing provider"}
	}
	url := strconv.Quote(ds.URL.Value)
	if ds.URL.FromEnv {
		url = "env(" + url + ")"
	}
	return p.block(block, p.assignments([][2]string{
		{"provider", strconv.Quote(string(ds.Provider))},
		{"url", url},
	})), nil
}

func (p *Printer) generator(g *Generator) (string, error) {
	block := "generator " + g.Name
	if !identRe.MatchString(g.Name) {
		return "", &PrintError{Block: block, Message: fmt.Sprintf("invalid name %q", g.Name)}
	}
	if g.Provider == "" {
		return "", &PrintError{Block: block, Message: "missing provider"}
	}
	kv := [][2]string{{"provider", strconv.Quote(g.Provider)}}
	if g.Output != "" {
		kv = append(kv, [2]string{"output", strconv.Quote(g.Output)})
	}
	return p.block(block, p.assignments(kv)), nil
}

func (p *Printer) enum(e *Enum) (string, error) {
	block := "enum " + e.Name
	if !identRe.MatchString(e.Name) {
		return "", &PrintError{Block: block, Message: fmt.Sprintf("invalid name %q", e.Name)}
	}
	if len(e.Values) == 0 {
		return "", &PrintError{Block: block, Message: "enum has no values"}
	}
	lines := make([]string, 0, len(e.Values))
	for _, v := range e.Values {
		if !identRe.MatchString(v) {
			return "", &PrintError{Block: block, Element: v, Message: fmt.Sprintf("invalid enum value %q", v)}
		}
		lines = append(lines, v)
	}
	return p.block(block, lines), nil
}

func (p *Printer) model(m *Model) (string, error) {
	block := "model " + m.Name
	if !identRe.MatchString(m.Name) {
		return "", &PrintError{Block: block, Message: fmt.Sprintf("invalid name %q", m.Name)}
	}
	rows := make([][3]string, 0, len(m.Fields))
	for _, f := range m.Fields {
		row, err := fieldRow(f)
		if err != nil {
			var pe *PrintError
			if errors.As(err, &pe) {
				pe.Block = block
			}
			return "", err
		}
		rows = append(rows, row)
	}
	return p.block(block, columns(rows)), nil
}

// fieldRow returns the name, type and attribute columns of a field.
func fieldRow(f Field) ([3]string, error) {
	switch f := f.(type) {
	case *ScalarField:
		if !identRe.MatchString(f.Name) {
			return [3]string{}, &PrintError{Element: f.Name, Message: fmt.Sprintf("invalid field name %q", f.Name)}
		}
		if f.Type == "" {
			return [3]string{}, &PrintError{Element: f.Name, Message: "missing scalar type"}
		}
		var attrs []string
		if f.IsID {
			attrs = append(attrs, "@id")
		} else if f.IsUnique {
			attrs = append(attrs, "@unique")
		}
		if f.Default != nil {
			expr, err := defaultExpr(f.Default)
			if err != nil {
				return [3]string{}, &PrintError{Element: f.Name, Message: err.Error()}
			}
			attrs = append(attrs, "@default("+expr+")")
		}
		if f.IsUpdatedAt {
			attrs = append(attrs, "@updatedAt")
		}
		return [3]string{f.Name, typeRef(string(f.Type), f.IsList, f.IsRequired), strings.Join(attrs, " ")}, nil
	case *ObjectField:
		if !identRe.MatchString(f.Name) {
			return [3]string{}, &PrintError{Element: f.Name, Message: fmt.Sprintf("invalid field name %q", f.Name)}
		}
		if !identRe.MatchString(f.Type) {
			return [3]string{}, &PrintError{Element: f.Name, Message: fmt.Sprintf("invalid type reference %q", f.Type)}
		}
		return [3]string{f.Name, typeRef(f.Type, f.IsList, f.IsRequired), ""}, nil
	case nil:
		return [3]string{}, &PrintError{Message: "nil field"}
	default:
		return [3]string{}, &PrintError{Element: f.FieldName(), Message: fmt.Sprintf("unexpected field type %T", f)}
	}
}

// typeRef renders a type with its list or optional modifier. Lists cannot be
// optional in the schema language, so required is ignored for them.
func typeRef(name string, list, required bool) string {
	switch {
	case list:
		return name + "[]"
	case !required:
		return name + "?"
	default:
		return name
	}
}

func defaultExpr(v any) (string, error) {
	switch v := v.(type) {
	case CallExpression:
		if !identRe.MatchString(v.Callee) {
			return "", fmt.Errorf("invalid default function %q", v.Callee)
		}
		return v.String(), nil
	case *CallExpression:
		return defaultExpr(*v)
	case string:
		return strconv.Quote(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unsupported default value %v (%T)", v, v)
	}
}

// columns aligns rows into space-padded columns, trimming trailing blanks.
func columns(rows [][3]string) []string {
	var width [2]int
	for _, r := range rows {
		width[0] = max(width[0], len(r[0]))
		width[1] = max(width[1], len(r[1]))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		line := fmt.Sprintf("%-*s %-*s %s", width[0], r[0], width[1], r[1], r[2])
		lines = append(lines, strings.TrimRight(line, " "))
	}
	return lines
}

func (p *Printer) assignments(kv [][2]string) []string {
	var width int
	for _, a := range kv {
		width = max(width, len(a[0]))
	}
	lines := make([]string, 0, len(kv))
	for _, a := range kv {
		lines = append(lines, fmt.Sprintf("%-*s = %s", width, a[0], a[1]))
	}
	return lines
}

func (p *Printer) block(header string, lines []string) string {
	var b strings.Builder
	b.WriteString(header)
	b.WriteString(" {\n")
	ind := p.indent()
	for _, l := range lines {
		b.WriteString(ind)
		b.WriteString(l)
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}
