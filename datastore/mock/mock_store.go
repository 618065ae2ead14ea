/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory RecordStore for testing. Its
// conditional-write semantics are real: create-only writes fail on an
// existing record and compare-and-swap writes fail on a version
// mismatch, exactly as a physical store would behave.
package mock

import (
	"context"
	"sync"

	"github.com/suparena/recordconv/errors"
	"github.com/suparena/recordconv/record"
)

// RecordStore is a map-backed datastore.RecordStore implementation.
type RecordStore struct {
	mu   sync.RWMutex
	data map[string]*record.Record

	readError  error
	writeError error
}

// New creates an empty mock RecordStore.
func New() *RecordStore {
	return &RecordStore{
		data: make(map[string]*record.Record),
	}
}

// WithReadError makes ReadRecord return the given error.
func (m *RecordStore) WithReadError(err error) *RecordStore {
	m.readError = err
	return m
}

// WithWriteError makes WriteRecord return the given error before any
// condition is evaluated, simulating an opaque store failure.
func (m *RecordStore) WithWriteError(err error) *RecordStore {
	m.writeError = err
	return m
}

// ReadRecord returns a copy of the stored record.
func (m *RecordStore) ReadRecord(ctx context.Context, key record.Key) (*record.Record, error) {
	if m.readError != nil {
		return nil, m.readError
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.data[key.String()]
	if !exists {
		return nil, errors.NewNotFoundError("record", key.String())
	}
	return copyRecord(rec), nil
}

// WriteRecord stores a copy of rec subject to the expectation and
// returns the confirmed version. Versioned records start at 1.
func (m *RecordStore) WriteRecord(ctx context.Context, rec *record.Record, expect record.Expect) (int64, error) {
	if m.writeError != nil {
		return 0, m.writeError
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	k := rec.Key.String()
	stored, exists := m.data[k]

	if !expect.Conditional() {
		m.data[k] = copyRecord(rec)
		return 0, nil
	}

	if expect.Version() == nil {
		// create, fail if exists
		if exists {
			return 0, errors.NewVersionConflictError(k, nil)
		}
		confirmed := int64(1)
		out := copyRecord(rec)
		out.Version = record.VersionOf(confirmed)
		m.data[k] = out
		return confirmed, nil
	}

	// replace, fail unless stored version matches
	want := *expect.Version()
	if !exists || stored.Version == nil || *stored.Version != want {
		return 0, errors.NewVersionConflictError(k, record.VersionOf(want))
	}
	confirmed := want + 1
	out := copyRecord(rec)
	out.Version = record.VersionOf(confirmed)
	m.data[k] = out
	return confirmed, nil
}

// DeleteRecord removes the record stored under key.
func (m *RecordStore) DeleteRecord(ctx context.Context, key record.Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := key.String()
	if _, exists := m.data[k]; !exists {
		return errors.NewNotFoundError("record", k)
	}
	delete(m.data, k)
	return nil
}

// Helper methods for testing

// Count returns the number of stored records.
func (m *RecordStore) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

// Clear removes all records.
func (m *RecordStore) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make(map[string]*record.Record)
}

// StoredVersion returns the version of the record under key, or nil.
func (m *RecordStore) StoredVersion(key record.Key) *int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rec, exists := m.data[key.String()]
	if !exists || rec.Version == nil {
		return nil
	}
	return record.VersionOf(*rec.Version)
}

func copyRecord(rec *record.Record) *record.Record {
	out := &record.Record{
		Key:        rec.Key,
		Attributes: rec.Attributes.Clone(),
		Expiration: rec.Expiration,
	}
	if rec.Version != nil {
		out.Version = record.VersionOf(*rec.Version)
	}
	return out
}
