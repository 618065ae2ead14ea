/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"fmt"

	"github.com/suparena/recordconv/errors"
	"github.com/suparena/recordconv/record"
)

// EntityCodec converts whole entities of type T to and from records.
// An entity-level converter registered for T takes full precedence and
// bypasses the field-by-field path entirely, including key
// construction, expiration assignment and version assignment.
type EntityCodec[T any] struct {
	desc     *Descriptor[T]
	fields   *FieldCodec
	versions *VersionManager[T]

	namespace  string
	set        string
	defaultExp record.Expiration
}

// EntityCodecOption configures an EntityCodec.
type EntityCodecOption[T any] func(*EntityCodec[T])

// WithDefaultExpiration sets the expiration applied when the
// descriptor has no expiration policy. The initial default is
// never-expire.
func WithDefaultExpiration[T any](exp record.Expiration) EntityCodecOption[T] {
	return func(c *EntityCodec[T]) {
		c.defaultExp = exp
	}
}

// NewEntityCodec binds a descriptor to a field codec and the
// externally supplied namespace and set name. The descriptor is
// validated, as is the registry's directional completeness, so
// configuration errors surface here rather than at first conversion.
func NewEntityCodec[T any](desc *Descriptor[T], fields *FieldCodec, namespace, set string, opts ...EntityCodecOption[T]) (*EntityCodec[T], error) {
	if err := desc.Validate(); err != nil {
		return nil, err
	}
	if err := fields.reg.Validate(fields.HasDefault); err != nil {
		return nil, err
	}
	c := &EntityCodec[T]{
		desc:       desc,
		fields:     fields,
		versions:   NewVersionManager(desc),
		namespace:  namespace,
		set:        set,
		defaultExp: record.NeverExpire,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Versions returns the version manager for T.
func (c *EntityCodec[T]) Versions() *VersionManager[T] {
	return c.versions
}

// Name returns the descriptor's entity name.
func (c *EntityCodec[T]) Name() string {
	return c.desc.Name
}

// KeyFor builds the storage key for a domain identifier.
func (c *EntityCodec[T]) KeyFor(id any) (record.Key, error) {
	userKey, err := c.desc.Key.Codec.EncodeKey(id)
	if err != nil {
		return record.Key{}, err
	}
	return record.Key{Namespace: c.namespace, Set: c.set, UserKey: userKey}, nil
}

// ToRecord converts an entity into a record.
func (c *EntityCodec[T]) ToRecord(entity *T) (*record.Record, error) {
	if conv, ok := c.fields.reg.ResolveEntityWrite(typeOf[T]()); ok {
		return conv(entity, record.Key{Namespace: c.namespace, Set: c.set})
	}

	key, err := c.KeyFor(c.desc.Key.Get(entity))
	if err != nil {
		return nil, err
	}
	rec := record.NewRecord(key)

	for _, f := range c.desc.Fields {
		av, present, err := c.fields.Encode(f.Attribute, f.Type, f.Get(entity))
		if err != nil {
			return nil, err
		}
		if present {
			rec.Attributes[f.Attribute] = av
		}
	}

	if c.desc.Expiration != nil {
		rec.Expiration = c.desc.Expiration(entity)
	} else {
		rec.Expiration = c.defaultExp
	}

	if c.versions.Enabled() {
		if v := c.versions.CurrentVersion(entity); v != nil {
			rec.Version = record.VersionOf(*v)
		}
	}
	return rec, nil
}

// FromRecord converts a record back into an entity. Decoding is
// all-or-nothing: an incompatible attribute, a missing required
// attribute or a missing mandatory version fails the whole entity.
func (c *EntityCodec[T]) FromRecord(rec *record.Record) (*T, error) {
	if conv, ok := c.fields.reg.ResolveEntityRead(typeOf[T]()); ok {
		v, err := conv(rec)
		if err != nil {
			return nil, err
		}
		entity, ok := v.(*T)
		if !ok {
			return nil, fmt.Errorf("entity-level read converter for %s returned %T", c.desc.Name, v)
		}
		return entity, nil
	}

	entity := new(T)

	id, err := c.desc.Key.Codec.DecodeKey(rec.Key.UserKey)
	if err != nil {
		return nil, err
	}
	if err := c.desc.Key.Set(entity, id); err != nil {
		return nil, err
	}

	for _, f := range c.desc.Fields {
		raw, present := rec.Attributes[f.Attribute]
		dv, set, err := c.fields.Decode(f.Attribute, f.Type, raw, present, f.Required, f.Fallback)
		if err != nil {
			return nil, err
		}
		if !set {
			continue
		}
		if err := f.Set(entity, dv); err != nil {
			return nil, err
		}
	}

	if c.versions.Enabled() {
		if rec.Version == nil {
			if c.desc.Version.Required {
				return nil, errors.NewFieldTypeMismatchError("version", "int64", "absent")
			}
		} else {
			c.versions.Advance(entity, *rec.Version)
		}
	}
	return entity, nil
}
