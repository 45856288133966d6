package exec

import (
	"errors"
	"fmt"

	"github.com/luigitni/relcore/storage"
)

// binding pairs a schema with the tuple it describes.
type binding struct {
	schema *Schema
	tuple  Tuple
}

// Env is the short-lived evaluation environment used by projectTuple: an
// ordered list of (schema, tuple) bindings. It is owned by the operator
// instance and reused across calls to avoid per-tuple allocation.
type Env struct {
	bindings []binding
}

func NewEnv() *Env {
	return &Env{}
}

// Clear empties the environment, keeping its backing storage.
func (e *Env) Clear() {
	e.bindings = e.bindings[:0]
}

// AddTuple appends a binding.
func (e *Env) AddTuple(schema *Schema, tuple Tuple) {
	e.bindings = append(e.bindings, binding{schema: schema, tuple: tuple})
}

// Resolve looks up (qualifier, name) against the first binding whose schema
// contains it. Fails with ErrAmbiguousColumn if that binding's schema has
// more than one match, or ErrUnknownColumn if no binding matches at all.
func (e *Env) Resolve(qualifier, name string) (storage.Value, error) {
	for _, b := range e.bindings {
		idx, err := b.schema.IndexOf(qualifier, name)
		if err == nil {
			return b.tuple.Value(idx), nil
		}
		if errors.Is(err, ErrAmbiguousColumn) {
			return nil, err
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownColumn, qualifiedName(qualifier, name))
}

func qualifiedName(qualifier, name string) string {
	if qualifier == "" {
		return name
	}
	return qualifier + "." + name
}
