/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/recordconv/record"
)

// RecordStore is the conversion engine's only I/O boundary: a narrow
// repository of records reachable by key. Implementations map these
// operations onto a concrete store; the engine never interprets store
// failures beyond the not-found and version-conflict cases, which must
// be reported through the errors package sentinels.
type RecordStore interface {
	// ReadRecord returns the record stored under key, or an error
	// matching errors.ErrNotFound.
	ReadRecord(ctx context.Context, key record.Key) (*record.Record, error)

	// WriteRecord stores rec subject to the given expectation and
	// returns the confirmed version. A failed expectation is reported
	// as an error matching errors.ErrVersionConflict, distinct from
	// any other write failure. For unconditional writes on records
	// without a version the confirmed version is 0.
	WriteRecord(ctx context.Context, rec *record.Record, expect record.Expect) (int64, error)

	// DeleteRecord removes the record stored under key, or returns an
	// error matching errors.ErrNotFound.
	DeleteRecord(ctx context.Context, key record.Key) error
}
