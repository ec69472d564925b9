package load

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/b4s36t4/amplication/schema"
)

// Document is an entity definition file. A file holds either a document
// with an entities key or a bare list of entities.
type Document struct {
	Entities []*schema.Entity `json:"entities" yaml:"entities"`
}

// Format is the encoding of a definition file.
type Format int

// Supported formats.
const (
	YAML Format = iota
	JSON
)

// String returns the format name.
func (f Format) String() string {
	if f == JSON {
		return "json"
	}
	return "yaml"
}

// UnmarshalDocument decodes a definition document.
func UnmarshalDocument(buf []byte, format Format) (*Document, error) {
	if format == JSON {
		return unmarshalJSON(buf)
	}
	return unmarshalYAML(buf)
}

// MarshalDocument encodes d in the given format.
func MarshalDocument(d *Document, format Format) ([]byte, error) {
	if format == JSON {
		return json.MarshalIndent(d, "", "  ")
	}
	return yaml.Marshal(d)
}

func unmarshalJSON(buf []byte) (*Document, error) {
	buf = bytes.TrimSpace(buf)
	d := &Document{}
	switch {
	case len(buf) == 0:
		return d, nil
	case buf[0] == '[':
		if err := json.Unmarshal(buf, &d.Entities); err != nil {
			return nil, err
		}
	default:
		if err := json.Unmarshal(buf, d); err != nil {
			return nil, err
		}
	}
	return d, nil
}

func unmarshalYAML(buf []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(buf, &root); err != nil {
		return nil, err
	}
	d := &Document{}
	// An empty file decodes to a zero node.
	if root.Kind == 0 || len(root.Content) == 0 {
		return d, nil
	}
	node := root.Content[0]
	switch node.Kind {
	case yaml.SequenceNode:
		if err := node.Decode(&d.Entities); err != nil {
			return nil, err
		}
	case yaml.MappingNode:
		if err := node.Decode(d); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("line %d: expected a mapping or a list of entities", node.Line)
	}
	return d, nil
}
