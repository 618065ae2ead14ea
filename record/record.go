/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package record

import "fmt"

// NeverExpire is the expiration sentinel meaning the record never expires.
// It is distinct from every finite second count.
const NeverExpire Expiration = -1

// Expiration is a record time-to-live in seconds, or NeverExpire.
type Expiration int32

// IsFinite reports whether the expiration is a finite second count.
func (e Expiration) IsFinite() bool {
	return e >= 0
}

func (e Expiration) String() string {
	if e == NeverExpire {
		return "never"
	}
	return fmt.Sprintf("%ds", int32(e))
}

// Key is the store-native key of one record. Namespace and Set are
// supplied by configuration, never derived from the entity. UserKey is
// the encoded form of the entity's identifier.
type Key struct {
	Namespace string
	Set       string
	UserKey   string
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s/%s", k.Namespace, k.Set, k.UserKey)
}

// Attributes maps attribute names to attribute values. Legal value
// types are int64, float64, string, []byte, []any and map[string]any
// (nested to any depth). The store has no native boolean; booleans are
// carried as 0/1 int64 and converted at both boundaries. Absent
// optional attributes are omitted, never transmitted as a null marker.
type Attributes map[string]any

// Clone returns a shallow copy of the attribute map. Nested lists and
// maps are shared; callers that mutate nested values must copy deeper.
func (a Attributes) Clone() Attributes {
	if a == nil {
		return nil
	}
	out := make(Attributes, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Record is the store-native representation of one entity.
// Version is nil for entities that do not participate in optimistic
// locking, or for entities that have never been written.
type Record struct {
	Key        Key
	Attributes Attributes
	Expiration Expiration
	Version    *int64
}

// NewRecord returns a record with an empty attribute map and the
// never-expire sentinel.
func NewRecord(key Key) *Record {
	return &Record{
		Key:        key,
		Attributes: make(Attributes),
		Expiration: NeverExpire,
	}
}

// VersionOf returns a pointer to v, for building records in place.
func VersionOf(v int64) *int64 {
	return &v
}
