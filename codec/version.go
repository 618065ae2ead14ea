/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import "github.com/suparena/recordconv/record"

// VersionManager implements the entity-side protocol of optimistic
// locking for entity type T. It computes the expectation presented to
// the store's conditional write and applies the confirmed result to
// the entity's carried version field. The compare-and-swap itself is
// the store's responsibility; conflict handling and retry belong to
// the caller.
type VersionManager[T any] struct {
	spec *VersionSpec[T]
}

// NewVersionManager builds a VersionManager from the descriptor's
// version spec. A descriptor without a version field yields a manager
// with locking disabled.
func NewVersionManager[T any](d *Descriptor[T]) *VersionManager[T] {
	return &VersionManager[T]{spec: d.Version}
}

// Enabled reports whether the entity type participates in optimistic
// locking.
func (m *VersionManager[T]) Enabled() bool {
	return m.spec != nil
}

// CurrentVersion returns the version carried on the entity, or nil for
// an entity that has never been written (or an unversioned type).
func (m *VersionManager[T]) CurrentVersion(entity *T) *int64 {
	if m.spec == nil {
		return nil
	}
	return m.spec.Get(entity)
}

// PrepareWrite returns the expectation to present to the store:
// unconditional for unversioned types, create-only for a fresh entity,
// compare-and-swap on the carried version otherwise.
func (m *VersionManager[T]) PrepareWrite(entity *T) record.Expect {
	if m.spec == nil {
		return record.ExpectNone()
	}
	v := m.spec.Get(entity)
	if v == nil {
		return record.ExpectCreate()
	}
	return record.ExpectVersion(*v)
}

// Advance rewrites the entity's carried version in place to the
// store-confirmed value. Called only after a successful write; on
// conflict the carried version is left untouched.
func (m *VersionManager[T]) Advance(entity *T, confirmed int64) {
	if m.spec == nil {
		return
	}
	m.spec.Set(entity, &confirmed)
}
