/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"fmt"
	"reflect"

	"github.com/suparena/recordconv/errors"
	"github.com/suparena/recordconv/record"
)

func typeOf[V any]() reflect.Type {
	return reflect.TypeOf((*V)(nil)).Elem()
}

// Field declares the mapping of one entity field to a named attribute:
// the attribute name, the declared field type, whether absence on
// decode is an error, the fallback substituted when an optional
// attribute is absent, and the accessors. Built via Attr.
type Field[T any] struct {
	Attribute string
	Type      reflect.Type
	Required  bool
	Fallback  any

	Get func(entity *T) any
	Set func(entity *T, value any) error
}

// Attr declares a field of entity type T with declared type F, mapped
// to the given attribute name.
func Attr[T, F any](name string, get func(*T) F, set func(*T, F)) Field[T] {
	ft := typeOf[F]()
	return Field[T]{
		Attribute: name,
		Type:      ft,
		Get: func(e *T) any {
			return get(e)
		},
		Set: func(e *T, value any) error {
			v, ok := value.(F)
			if !ok {
				return errors.NewFieldTypeMismatchError(name, ft.String(), fmt.Sprintf("%T", value))
			}
			set(e, v)
			return nil
		},
	}
}

// AsRequired marks the field required: absence of the attribute on
// decode is a conversion error.
func (f Field[T]) AsRequired() Field[T] {
	f.Required = true
	return f
}

// WithFallback declares the value substituted when the attribute is
// absent on decode. Ignored for required fields.
func (f Field[T]) WithFallback(v any) Field[T] {
	f.Fallback = v
	return f
}

// KeySpec declares which field identifies the entity and the codec
// that renders it as the store's user key.
type KeySpec[T any] struct {
	Codec KeyCodec
	Get   func(entity *T) any
	Set   func(entity *T, id any) error
}

// Identifier builds a KeySpec for identifier type K.
func Identifier[T, K any](kc KeyCodec, get func(*T) K, set func(*T, K)) KeySpec[T] {
	kt := typeOf[K]()
	return KeySpec[T]{
		Codec: kc,
		Get: func(e *T) any {
			return get(e)
		},
		Set: func(e *T, id any) error {
			v, ok := id.(K)
			if !ok {
				return errors.NewFieldTypeMismatchError("identifier", kt.String(), fmt.Sprintf("%T", id))
			}
			set(e, v)
			return nil
		},
	}
}

// VersionSpec declares the entity field carrying the optimistic-lock
// version. The accessors operate on the carried *int64: nil means the
// entity has never been written. Required controls whether a record
// without a version fails decoding.
type VersionSpec[T any] struct {
	Required bool
	Get      func(entity *T) *int64
	Set      func(entity *T, v *int64)
}

// ExpirationPolicy derives a record expiration from entity state, for
// example a short TTL while a document is in a draft state.
type ExpirationPolicy[T any] func(entity *T) record.Expiration

// Descriptor is the static metadata of one entity type: identifier,
// optional version field, declared fields and an optional expiration
// policy. Built once during setup and treated as immutable; shared
// read-only across all conversions of the type.
type Descriptor[T any] struct {
	Name       string
	Key        KeySpec[T]
	Version    *VersionSpec[T]
	Fields     []Field[T]
	Expiration ExpirationPolicy[T]
}

// Validate checks descriptor completeness: a key codec with accessors,
// accessors on every field, and unique attribute names.
func (d *Descriptor[T]) Validate() error {
	if d.Name == "" {
		return fmt.Errorf("descriptor has no entity name")
	}
	if d.Key.Codec == nil || d.Key.Get == nil || d.Key.Set == nil {
		return fmt.Errorf("descriptor %q: incomplete key spec", d.Name)
	}
	if d.Version != nil && (d.Version.Get == nil || d.Version.Set == nil) {
		return fmt.Errorf("descriptor %q: incomplete version spec", d.Name)
	}
	seen := make(map[string]struct{}, len(d.Fields))
	for _, f := range d.Fields {
		if f.Attribute == "" || f.Get == nil || f.Set == nil {
			return fmt.Errorf("descriptor %q: incomplete field spec %q", d.Name, f.Attribute)
		}
		if _, dup := seen[f.Attribute]; dup {
			return fmt.Errorf("descriptor %q: duplicate attribute %q", d.Name, f.Attribute)
		}
		seen[f.Attribute] = struct{}{}
	}
	return nil
}
