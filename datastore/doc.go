/*
Package datastore defines the repository interface between the
conversion engine and the physical key-value store.

The interface is deliberately narrow:

	type RecordStore interface {
	    ReadRecord(ctx context.Context, key record.Key) (*record.Record, error)
	    WriteRecord(ctx context.Context, rec *record.Record, expect record.Expect) (int64, error)
	    DeleteRecord(ctx context.Context, key record.Key) error
	}

WriteRecord carries the optimistic-locking expectation computed by the
codec layer's version manager: unconditional, create-only, or
compare-and-swap on a specific version. Implementations translate a
failed expectation into errors.ErrVersionConflict; everything else
passes through unmodified.

Implementations:
  - ddb: DynamoDB implementation using conditional expressions
  - mock: in-memory implementation with real conditional-write
    semantics, for testing
*/
package datastore
