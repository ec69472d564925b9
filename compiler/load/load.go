// Package load reads entity definitions from YAML and JSON files.
package load

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/b4s36t4/amplication/schema"
)

// ErrNoEntities is returned when a directory holds no definition files.
var ErrNoEntities = errors.New("load: no entity definition files")

// Result holds the loaded entities and their id to name lookup.
type Result struct {
	Entities []*schema.Entity
	Names    schema.EntityNames
	// Files lists the files read, in load order.
	Files []string
}

// FormatOf returns the format of a file by its extension.
func FormatOf(name string) (Format, bool) {
	switch strings.ToLower(path.Ext(name)) {
	case ".yaml", ".yml":
		return YAML, true
	case ".json":
		return JSON, true
	default:
		return 0, false
	}
}

// EntityID returns the id given to entities declared without one.
// It is derived from the entity name so that it is stable across runs.
func EntityID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()
}

// LoadFile loads the entities of a single definition file.
func LoadFile(name string) (*Result, error) {
	format, ok := FormatOf(name)
	if !ok {
		return nil, fmt.Errorf("load %s: unsupported file extension", name)
	}
	buf, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	l := newLoader()
	if err := l.add(name, buf, format); err != nil {
		return nil, err
	}
	return l.result(), nil
}

// LoadDir loads all definition files of a directory, in file name order.
// Subdirectories are not visited.
func LoadDir(dir string) (*Result, error) {
	res, err := LoadFS(os.DirFS(dir), ".")
	if err != nil {
		return nil, err
	}
	for i, f := range res.Files {
		res.Files[i] = filepath.Join(dir, filepath.FromSlash(f))
	}
	return res, nil
}

// LoadFS is like LoadDir but reads from fsys.
func LoadFS(fsys fs.FS, dir string) (*Result, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", dir, err)
	}
	l := newLoader()
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		format, ok := FormatOf(e.Name())
		if !ok {
			continue
		}
		name := path.Join(dir, e.Name())
		buf, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", name, err)
		}
		if err := l.add(name, buf, format); err != nil {
			return nil, err
		}
	}
	if len(l.files) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoEntities, dir)
	}
	return l.result(), nil
}

type loader struct {
	entities []*schema.Entity
	files    []string
	// origin maps an entity id to the file declaring it.
	origin map[string]string
}

func newLoader() *loader {
	return &loader{origin: make(map[string]string)}
}

func (l *loader) add(name string, buf []byte, format Format) error {
	doc, err := UnmarshalDocument(buf, format)
	if err != nil {
		return fmt.Errorf("load %s: %w", name, err)
	}
	for i, e := range doc.Entities {
		if e == nil {
			return fmt.Errorf("load %s: entity #%d is empty", name, i)
		}
		if e.Name == "" {
			return fmt.Errorf("load %s: entity #%d has no name", name, i)
		}
		if e.ID == "" {
			e.ID = EntityID(e.Name)
		}
		if prev, ok := l.origin[e.ID]; ok {
			return fmt.Errorf("load %s: entity %s: duplicate id %q (first declared in %s)", name, e.Name, e.ID, prev)
		}
		l.origin[e.ID] = name
		l.entities = append(l.entities, e)
	}
	l.files = append(l.files, name)
	return nil
}

// result builds the lookup. Lookup targets naming an entity instead of
// its id are rewritten to the id of that entity.
func (l *loader) result() *Result {
	names := schema.NewEntityNames(l.entities)
	byName := make(map[string]string, len(l.entities))
	for _, e := range l.entities {
		if _, ok := byName[e.Name]; !ok {
			byName[e.Name] = e.ID
		}
	}
	for _, e := range l.entities {
		for _, f := range e.Fields {
			if f == nil {
				continue
			}
			props, ok := f.Lookup()
			if !ok {
				continue
			}
			if _, ok := names.Lookup(props.RelatedEntityID); ok {
				continue
			}
			if id, ok := byName[props.RelatedEntityID]; ok {
				props.RelatedEntityID = id
			}
		}
	}
	return &Result{
		Entities: l.entities,
		Names:    names,
		Files:    l.files,
	}
}
