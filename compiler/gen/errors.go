package gen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/b4s36t4/amplication/schema"
)

// Sentinel errors for common failure cases.
var (
	// ErrUnsupportedType indicates a field data type the resolver does not know.
	ErrUnsupportedType = errors.New("prismagen: unsupported data type")
	// ErrUnresolvedRelation indicates a lookup field whose target is unknown.
	ErrUnresolvedRelation = errors.New("prismagen: unresolved relation")
	// ErrInvalidSchema indicates an input model error.
	ErrInvalidSchema = errors.New("prismagen: invalid schema")
	// ErrMissingConfig indicates a configuration error.
	ErrMissingConfig = errors.New("prismagen: missing configuration")
	// ErrGenerationFailed indicates an artifact generation failure.
	ErrGenerationFailed = errors.New("prismagen: generation failed")
)

// UnsupportedTypeError is returned for fields whose data type has no
// schema representation.
type UnsupportedTypeError struct {
	Entity   string
	Field    string
	DataType schema.DataType
}

// Error implements the error interface.
func (e *UnsupportedTypeError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "prismagen: unfamiliar data type %q", e.DataType)
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	return b.String()
}

// Is reports whether the target matches the sentinel error for UnsupportedTypeError.
func (e *UnsupportedTypeError) Is(target error) bool {
	return target == ErrUnsupportedType
}

// NewUnsupportedTypeError creates a new UnsupportedTypeError.
func NewUnsupportedTypeError(field string, dataType schema.DataType) *UnsupportedTypeError {
	return &UnsupportedTypeError{Field: field, DataType: dataType}
}

// RelationError represents a lookup field that cannot be resolved.
type RelationError struct {
	From    string // Owning entity name
	To      string // Related entity id
	Field   string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *RelationError) Error() string {
	var b strings.Builder
	b.WriteString("prismagen: relation error")
	if e.Field != "" {
		b.WriteString(" on field ")
		b.WriteString(e.Field)
	}
	if e.From != "" && e.To != "" {
		fmt.Fprintf(&b, " (%s -> %s)", e.From, e.To)
	} else if e.To != "" {
		fmt.Fprintf(&b, " (-> %s)", e.To)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *RelationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for RelationError.
func (e *RelationError) Is(target error) bool {
	return target == ErrUnresolvedRelation
}

// NewRelationError creates a new RelationError.
func NewRelationError(field, to, message string, cause error) *RelationError {
	return &RelationError{
		To:      to,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// SchemaError represents an input model error.
type SchemaError struct {
	Entity  string
	Field   string // Field name (if applicable)
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	var b strings.Builder
	b.WriteString("prismagen: schema error")
	if e.Entity != "" {
		b.WriteString(" on entity ")
		b.WriteString(e.Entity)
	}
	if e.Field != "" {
		b.WriteString(" field ")
		b.WriteString(e.Field)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *SchemaError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for SchemaError.
func (e *SchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}

// NewSchemaError creates a new SchemaError.
func NewSchemaError(entity, field, message string, cause error) *SchemaError {
	return &SchemaError{
		Entity:  entity,
		Field:   field,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("prismagen: config error for %q (value: %v): %s", e.Option, e.Value, e.Message)
	}
	return fmt.Sprintf("prismagen: config error for %q: %s", e.Option, e.Message)
}

// Is reports whether the target matches the sentinel error for ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrMissingConfig
}

// NewConfigError creates a new ConfigError.
func NewConfigError(option string, value any, message string) *ConfigError {
	return &ConfigError{
		Option:  option,
		Value:   value,
		Message: message,
	}
}

// GenerationError represents an artifact generation or write error.
type GenerationError struct {
	Phase   string // "render", "enums", "write", ...
	File    string
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString("prismagen: generation error")
	if e.Phase != "" {
		b.WriteString(" in phase ")
		b.WriteString(e.Phase)
	}
	if e.File != "" {
		b.WriteString(" (file: ")
		b.WriteString(e.File)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

// Unwrap returns the underlying error.
func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target matches the sentinel error for GenerationError.
func (e *GenerationError) Is(target error) bool {
	return target == ErrGenerationFailed
}

// NewGenerationError creates a new GenerationError.
func NewGenerationError(phase, file, message string, cause error) *GenerationError {
	return &GenerationError{
		Phase:   phase,
		File:    file,
		Message: message,
		Cause:   cause,
	}
}

// withEntity records the owning entity on errors returned by the field
// resolver, which has no entity context of its own.
func withEntity(err error, entity string) error {
	var (
		typeErr   *UnsupportedTypeError
		relErr    *RelationError
		schemaErr *SchemaError
	)
	switch {
	case errors.As(err, &typeErr):
		typeErr.Entity = entity
	case errors.As(err, &relErr):
		relErr.From = entity
	case errors.As(err, &schemaErr):
		schemaErr.Entity = entity
	}
	return err
}

// IsUnsupportedTypeError reports whether the error is an UnsupportedTypeError.
func IsUnsupportedTypeError(err error) bool {
	var typeErr *UnsupportedTypeError
	return errors.As(err, &typeErr)
}

// IsRelationError reports whether the error is a RelationError.
func IsRelationError(err error) bool {
	var relErr *RelationError
	return errors.As(err, &relErr)
}

// IsSchemaError reports whether the error is a SchemaError.
func IsSchemaError(err error) bool {
	var schemaErr *SchemaError
	return errors.As(err, &schemaErr)
}

// IsConfigError reports whether the error is a ConfigError.
func IsConfigError(err error) bool {
	var configErr *ConfigError
	return errors.As(err, &configErr)
}

// IsGenerationError reports whether the error is a GenerationError.
func IsGenerationError(err error) bool {
	var genErr *GenerationError
	return errors.As(err, &genErr)
}
