/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package recordconv

import (
	"context"
	"fmt"

	"github.com/suparena/recordconv/codec"
	"github.com/suparena/recordconv/datastore"
)

// Store binds an entity codec to a record repository and carries the
// optimistic-locking protocol across reads and writes of type T:
// a read populates the entity's carried version, a write presents that
// version to the store's conditional-write primitive, and a confirmed
// write advances the carried version in place. A version conflict is
// returned as-is; retry is the caller's policy.
type Store[T any] struct {
	codec *codec.EntityCodec[T]
	repo  datastore.RecordStore
}

// NewStore binds codec and repository.
func NewStore[T any](ec *codec.EntityCodec[T], repo datastore.RecordStore) *Store[T] {
	return &Store[T]{codec: ec, repo: repo}
}

// Get reads the entity identified by id. The identifier value must
// match the descriptor's declared identifier type.
func (s *Store[T]) Get(ctx context.Context, id any) (*T, error) {
	key, err := s.codec.KeyFor(id)
	if err != nil {
		return nil, err
	}
	rec, err := s.repo.ReadRecord(ctx, key)
	if err != nil {
		return nil, err
	}
	return s.codec.FromRecord(rec)
}

// Put writes the entity. For versioned types a fresh entity performs a
// create-only write and a previously read entity performs a
// compare-and-swap on its carried version; on success the carried
// version is advanced to the store-confirmed value. On conflict the
// entity is left untouched.
func (s *Store[T]) Put(ctx context.Context, entity *T) error {
	rec, err := s.codec.ToRecord(entity)
	if err != nil {
		return err
	}

	versions := s.codec.Versions()
	confirmed, err := s.repo.WriteRecord(ctx, rec, versions.PrepareWrite(entity))
	if err != nil {
		return fmt.Errorf("put %s: %w", s.codec.Name(), err)
	}
	if versions.Enabled() {
		versions.Advance(entity, confirmed)
	}
	return nil
}

// Delete removes the entity identified by id.
func (s *Store[T]) Delete(ctx context.Context, id any) error {
	key, err := s.codec.KeyFor(id)
	if err != nil {
		return err
	}
	return s.repo.DeleteRecord(ctx, key)
}
