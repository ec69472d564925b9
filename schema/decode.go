package schema

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// newProperties returns an empty payload of the variant implied by t,
// or nil if fields of type t carry no properties.
func newProperties(t DataType) Properties {
	switch t {
	case TypeOptionSet, TypeMultiSelectOptionSet:
		return &OptionSetProperties{}
	case TypeLookup:
		return &LookupProperties{}
	default:
		return nil
	}
}

// fieldDoc is the wire representation shared by the JSON and YAML codecs.
type fieldDoc struct {
	Name     string   `json:"name" yaml:"name"`
	DataType DataType `json:"dataType" yaml:"dataType"`
	Required bool     `json:"required,omitempty" yaml:"required,omitempty"`
}

// UnmarshalJSON decodes a field and its type-specific properties.
func (f *Field) UnmarshalJSON(b []byte) error {
	var doc struct {
		fieldDoc
		Properties json.RawMessage `json:"properties,omitempty"`
	}
	if err := json.Unmarshal(b, &doc); err != nil {
		return err
	}
	*f = Field{Name: doc.Name, DataType: doc.DataType, Required: doc.Required}
	props := newProperties(doc.DataType)
	if props == nil || len(doc.Properties) == 0 || string(doc.Properties) == "null" {
		f.Properties = props
		return nil
	}
	if err := json.Unmarshal(doc.Properties, props); err != nil {
		return fmt.Errorf("field %q: decode %s properties: %w", doc.Name, doc.DataType, err)
	}
	f.Properties = props
	return nil
}

// MarshalJSON encodes a field with its properties payload.
func (f Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		fieldDoc
		Properties Properties `json:"properties,omitempty"`
	}{
		fieldDoc:   fieldDoc{Name: f.Name, DataType: f.DataType, Required: f.Required},
		Properties: f.Properties,
	})
}

// UnmarshalYAML decodes a field and its type-specific properties.
func (f *Field) UnmarshalYAML(value *yaml.Node) error {
	var doc struct {
		fieldDoc   `yaml:",inline"`
		Properties yaml.Node `yaml:"properties"`
	}
	if err := value.Decode(&doc); err != nil {
		return err
	}
	*f = Field{Name: doc.Name, DataType: doc.DataType, Required: doc.Required}
	props := newProperties(doc.DataType)
	if props == nil || doc.Properties.Kind == 0 || doc.Properties.Tag == "!!null" {
		f.Properties = props
		return nil
	}
	if err := doc.Properties.Decode(props); err != nil {
		return fmt.Errorf("field %q: decode %s properties: %w", doc.Name, doc.DataType, err)
	}
	f.Properties = props
	return nil
}

// MarshalYAML encodes a field with its properties payload.
func (f Field) MarshalYAML() (any, error) {
	return struct {
		fieldDoc   `yaml:",inline"`
		Properties Properties `yaml:"properties,omitempty"`
	}{
		fieldDoc:   fieldDoc{Name: f.Name, DataType: f.DataType, Required: f.Required},
		Properties: f.Properties,
	}, nil
}
