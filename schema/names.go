package schema

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when an entity id has no entry in the lookup.
var ErrNotFound = errors.New("schema: entity not found")

// NotFoundError represents a lookup of an unknown entity id.
type NotFoundError struct {
	id string
}

// Error returns the error string.
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("schema: entity not found (id=%q)", e.id)
}

// Is reports whether the target error matches NotFoundError.
// This allows errors.Is(notFoundErr, ErrNotFound) to return true.
func (e *NotFoundError) Is(err error) bool {
	return err == ErrNotFound
}

// ID returns the id that was looked up.
func (e *NotFoundError) ID() string {
	return e.id
}

// NewNotFoundError returns a new NotFoundError for the given entity id.
func NewNotFoundError(id string) *NotFoundError {
	return &NotFoundError{id: id}
}

// IsNotFound returns true if the error is a NotFoundError.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	var e *NotFoundError
	return errors.As(err, &e) || errors.Is(err, ErrNotFound)
}

// EntityNames maps entity ids to entity names.
type EntityNames map[string]string

// NewEntityNames builds the lookup from the given entities.
// Later entities win on duplicate ids.
func NewEntityNames(entities []*Entity) EntityNames {
	names := make(EntityNames, len(entities))
	for _, e := range entities {
		names[e.ID] = e.Name
	}
	return names
}

// Lookup returns the name of the entity with the given id.
func (n EntityNames) Lookup(id string) (string, bool) {
	name, ok := n[id]
	return name, ok
}

// Resolve is like Lookup but returns a *NotFoundError for unknown ids.
func (n EntityNames) Resolve(id string) (string, error) {
	name, ok := n[id]
	if !ok {
		return "", NewNotFoundError(id)
	}
	return name, nil
}
