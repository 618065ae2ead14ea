/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock

import (
	"context"
	"fmt"
	"testing"

	"github.com/suparena/recordconv/errors"
	"github.com/suparena/recordconv/record"
)

func testKey(userKey string) record.Key {
	return record.Key{Namespace: "test", Set: "docs", UserKey: userKey}
}

func TestReadWriteDelete(t *testing.T) {
	ctx := context.Background()
	store := New()

	rec := record.NewRecord(testKey("k1"))
	rec.Attributes["body"] = "hello"

	if _, err := store.WriteRecord(ctx, rec, record.ExpectNone()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	got, err := store.ReadRecord(ctx, testKey("k1"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Attributes["body"] != "hello" {
		t.Errorf("unexpected attributes: %v", got.Attributes)
	}
	if got.Expiration != record.NeverExpire {
		t.Errorf("expected never-expire, got %v", got.Expiration)
	}

	if err := store.DeleteRecord(ctx, testKey("k1")); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.ReadRecord(ctx, testKey("k1")); !errors.IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
}

func TestReadMissing(t *testing.T) {
	store := New()
	_, err := store.ReadRecord(context.Background(), testKey("absent"))
	if !errors.IsNotFound(err) {
		t.Errorf("expected not found, got %v", err)
	}
}

func TestCreateOnly(t *testing.T) {
	ctx := context.Background()
	store := New()

	rec := record.NewRecord(testKey("k1"))

	confirmed, err := store.WriteRecord(ctx, rec, record.ExpectCreate())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if confirmed != 1 {
		t.Errorf("expected confirmed version 1, got %d", confirmed)
	}

	// Second create must conflict
	_, err = store.WriteRecord(ctx, rec, record.ExpectCreate())
	if !errors.IsVersionConflict(err) {
		t.Errorf("expected version conflict on duplicate create, got %v", err)
	}
}

func TestCompareAndSwap(t *testing.T) {
	ctx := context.Background()
	store := New()

	rec := record.NewRecord(testKey("k1"))
	if _, err := store.WriteRecord(ctx, rec, record.ExpectCreate()); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	t.Run("MatchingVersionAdvances", func(t *testing.T) {
		confirmed, err := store.WriteRecord(ctx, rec, record.ExpectVersion(1))
		if err != nil {
			t.Fatalf("CAS failed: %v", err)
		}
		if confirmed != 2 {
			t.Errorf("expected confirmed version 2, got %d", confirmed)
		}
		if v := store.StoredVersion(testKey("k1")); v == nil || *v != 2 {
			t.Errorf("expected stored version 2, got %v", v)
		}
	})

	t.Run("StaleVersionConflicts", func(t *testing.T) {
		_, err := store.WriteRecord(ctx, rec, record.ExpectVersion(1))
		if !errors.IsVersionConflict(err) {
			t.Errorf("expected version conflict, got %v", err)
		}
		// Stored record unchanged
		if v := store.StoredVersion(testKey("k1")); v == nil || *v != 2 {
			t.Errorf("conflict must not modify the stored record, version %v", v)
		}
	})

	t.Run("MissingRecordConflicts", func(t *testing.T) {
		other := record.NewRecord(testKey("k2"))
		_, err := store.WriteRecord(ctx, other, record.ExpectVersion(1))
		if !errors.IsVersionConflict(err) {
			t.Errorf("expected version conflict on missing record, got %v", err)
		}
	})
}

func TestInjectedErrors(t *testing.T) {
	ctx := context.Background()
	boom := fmt.Errorf("store unavailable")

	store := New().WithWriteError(boom)
	if _, err := store.WriteRecord(ctx, record.NewRecord(testKey("k1")), record.ExpectNone()); err != boom {
		t.Errorf("expected injected write error, got %v", err)
	}

	store = New().WithReadError(boom)
	if _, err := store.ReadRecord(ctx, testKey("k1")); err != boom {
		t.Errorf("expected injected read error, got %v", err)
	}
}

func TestCopySemantics(t *testing.T) {
	ctx := context.Background()
	store := New()

	rec := record.NewRecord(testKey("k1"))
	rec.Attributes["n"] = int64(1)
	if _, err := store.WriteRecord(ctx, rec, record.ExpectNone()); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	// Mutating the caller's record after write must not leak into the store
	rec.Attributes["n"] = int64(99)

	got, err := store.ReadRecord(ctx, testKey("k1"))
	if err != nil {
		t.Fatalf("read failed: %v", err)
	}
	if got.Attributes["n"] != int64(1) {
		t.Errorf("stored record aliased caller memory: %v", got.Attributes["n"])
	}
}
