/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/suparena/recordconv/errors"
	"github.com/suparena/recordconv/record"
)

// Direction distinguishes the two conversion directions.
type Direction int

const (
	// Write converts domain values into store-native values.
	Write Direction = iota
	// Read converts store-native values back into domain values.
	Read
)

func (d Direction) String() string {
	if d == Write {
		return "write"
	}
	return "read"
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Write {
		return Read
	}
	return Write
}

// EntityWriteFunc converts a whole entity into a record. The key is
// pre-populated with the configured namespace and set; the converter
// owns the user key, attributes, expiration and version.
type EntityWriteFunc func(entity any, key record.Key) (*record.Record, error)

// EntityReadFunc converts a whole record back into an entity.
type EntityReadFunc func(rec *record.Record) (any, error)

// FieldFunc converts a single field value. On the write side the input
// is the domain value and the output a store-native attribute value;
// on the read side the reverse.
type FieldFunc func(value any) (any, error)

// Entry is one registered converter: a source/target type pair, a
// direction, and the conversion function. Entity-level and field-level
// entries are built through the typed constructors below.
type Entry struct {
	Type      reflect.Type
	Direction Direction

	entityWrite EntityWriteFunc
	entityRead  EntityReadFunc
	field       FieldFunc
}

// EntityLevel reports whether the entry converts whole entities.
func (e Entry) EntityLevel() bool {
	return e.entityWrite != nil || e.entityRead != nil
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// EntityWrite builds an entity-level write entry for T. The converter
// takes full responsibility for the record, including key construction,
// expiration assignment and version assignment.
func EntityWrite[T any](fn func(entity *T, key record.Key) (*record.Record, error)) Entry {
	return Entry{
		Type:      typeOf[T](),
		Direction: Write,
		entityWrite: func(entity any, key record.Key) (*record.Record, error) {
			e, ok := entity.(*T)
			if !ok {
				return nil, fmt.Errorf("entity converter for %s applied to %T", typeOf[T](), entity)
			}
			return fn(e, key)
		},
	}
}

// EntityRead builds an entity-level read entry for T.
func EntityRead[T any](fn func(rec *record.Record) (*T, error)) Entry {
	return Entry{
		Type:      typeOf[T](),
		Direction: Read,
		entityRead: func(rec *record.Record) (any, error) {
			return fn(rec)
		},
	}
}

// FieldWrite builds a field-level write entry for field type F. The
// returned attribute value may restructure the field arbitrarily, for
// example into a nested map of sub-attributes.
func FieldWrite[F any](fn func(value F) (any, error)) Entry {
	return Entry{
		Type:      typeOf[F](),
		Direction: Write,
		field: func(value any) (any, error) {
			v, ok := value.(F)
			if !ok {
				return nil, errors.NewFieldTypeMismatchError(
					typeOf[F]().String(), typeOf[F]().String(), fmt.Sprintf("%T", value))
			}
			return fn(v)
		},
	}
}

// FieldRead builds a field-level read entry for field type F.
func FieldRead[F any](fn func(value any) (F, error)) Entry {
	return Entry{
		Type:      typeOf[F](),
		Direction: Read,
		field: func(value any) (any, error) {
			return fn(value)
		},
	}
}

type typeDir struct {
	t reflect.Type
	d Direction
}

// Registry holds the converter set, indexed by type and direction.
// Registration happens once during setup; after that the registry is
// read-only and safe for concurrent resolution.
type Registry struct {
	mu     sync.RWMutex
	entity map[typeDir]Entry
	field  map[typeDir]Entry
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		entity: make(map[typeDir]Entry),
		field:  make(map[typeDir]Entry),
	}
}

// Register adds an entry to the registry. A second entity-level entry
// for the same (type, direction) pair is a configuration error and is
// rejected here rather than resolved last-write-wins. The same entry
// type registered for both directions is valid.
func (r *Registry) Register(e Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := typeDir{t: e.Type, d: e.Direction}
	if e.EntityLevel() {
		if _, exists := r.entity[key]; exists {
			return errors.NewConverterResolutionError(e.Type.String(), e.Direction.String(),
				"more than one entity-level converter registered")
		}
		r.entity[key] = e
		return nil
	}

	if e.field == nil {
		return errors.NewConverterResolutionError(e.Type.String(), e.Direction.String(),
			"entry has no conversion function")
	}
	if _, exists := r.field[key]; exists {
		return errors.NewConverterResolutionError(e.Type.String(), e.Direction.String(),
			"more than one field-level converter registered")
	}
	r.field[key] = e
	return nil
}

// MustRegister registers the given entries and panics on the first
// configuration error. Intended for setup code.
func (r *Registry) MustRegister(entries ...Entry) {
	for _, e := range entries {
		if err := r.Register(e); err != nil {
			panic(err)
		}
	}
}

// ResolveEntityWrite returns the entity-level write converter for t, if any.
func (r *Registry) ResolveEntityWrite(t reflect.Type) (EntityWriteFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entity[typeDir{t: t, d: Write}]
	if !ok {
		return nil, false
	}
	return e.entityWrite, true
}

// ResolveEntityRead returns the entity-level read converter for t, if any.
func (r *Registry) ResolveEntityRead(t reflect.Type) (EntityReadFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.entity[typeDir{t: t, d: Read}]
	if !ok {
		return nil, false
	}
	return e.entityRead, true
}

// ResolveField returns the field-level converter for (t, d), if any.
func (r *Registry) ResolveField(t reflect.Type, d Direction) (FieldFunc, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.field[typeDir{t: t, d: d}]
	if !ok {
		return nil, false
	}
	return e.field, true
}

// Validate checks that every field type with a converter in only one
// direction either has a converter for the opposite direction or a
// derivable built-in default, reported by hasDefault. Resolution of a
// read after a custom write (or vice versa) must fail here, at build
// time, not at first use.
func (r *Registry) Validate(hasDefault func(reflect.Type) bool) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for key := range r.field {
		opp := typeDir{t: key.t, d: key.d.Opposite()}
		if _, ok := r.field[opp]; ok {
			continue
		}
		if hasDefault != nil && hasDefault(key.t) {
			continue
		}
		return errors.NewConverterResolutionError(key.t.String(), key.d.Opposite().String(),
			"no converter or derivable default for the opposite direction")
	}
	return nil
}
