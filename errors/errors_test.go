/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("VersionedDocument", "vdoc-1")

	// Test error message
	expected := `VersionedDocument with key "vdoc-1" not found`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	// Test Is method
	if !errors.Is(err, ErrNotFound) {
		t.Error("NotFoundError should match ErrNotFound")
	}

	// Test helper function
	if !IsNotFound(err) {
		t.Error("IsNotFound should return true for NotFoundError")
	}
}

func TestKeyParseError(t *testing.T) {
	err := NewKeyParseError("comments::10", "expected 3 tokens, got 2")

	expected := `cannot parse key "comments::10": expected 3 tokens, got 2`
	if err.Error() != expected {
		t.Errorf("Expected error message %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrKeyParse) {
		t.Error("KeyParseError should match ErrKeyParse")
	}

	if !IsKeyParse(err) {
		t.Error("IsKeyParse should return true for KeyParseError")
	}

	// The offending input must be carried on the error
	var kpe *KeyParseError
	if !errors.As(err, &kpe) {
		t.Fatal("expected a *KeyParseError")
	}
	if kpe.Input != "comments::10" {
		t.Errorf("Expected input %q, got %q", "comments::10", kpe.Input)
	}
}

func TestConverterResolutionError(t *testing.T) {
	tests := []struct {
		name      string
		typeName  string
		direction string
		reason    string
		expected  string
	}{
		{
			name:      "ambiguous registration",
			typeName:  "testmodels.User",
			direction: "write",
			reason:    "more than one entity-level converter registered",
			expected:  "converter resolution for testmodels.User (write): more than one entity-level converter registered",
		},
		{
			name:      "missing opposite direction",
			typeName:  "strfmt.DateTime",
			direction: "read",
			reason:    "no converter or derivable default",
			expected:  "converter resolution for strfmt.DateTime (read): no converter or derivable default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewConverterResolutionError(tt.typeName, tt.direction, tt.reason)
			if err.Error() != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, err.Error())
			}
			if !IsConverterResolution(err) {
				t.Error("IsConverterResolution should return true")
			}
		})
	}
}

func TestFieldTypeMismatchError(t *testing.T) {
	err := NewFieldTypeMismatchError("active", "int64 0/1", "string")

	expected := `field "active": want int64 0/1, got string`
	if err.Error() != expected {
		t.Errorf("Expected %q, got %q", expected, err.Error())
	}

	if !errors.Is(err, ErrFieldTypeMismatch) {
		t.Error("FieldTypeMismatchError should match ErrFieldTypeMismatch")
	}

	if !IsFieldTypeMismatch(err) {
		t.Error("IsFieldTypeMismatch should return true")
	}
}

func TestVersionConflictError(t *testing.T) {
	t.Run("WithExpectedVersion", func(t *testing.T) {
		expected := int64(3)
		err := NewVersionConflictError("test/docs/k1", &expected)

		want := `record "test/docs/k1": stored version != expected 3`
		if err.Error() != want {
			t.Errorf("Expected %q, got %q", want, err.Error())
		}

		if !IsVersionConflict(err) {
			t.Error("IsVersionConflict should return true")
		}
	})

	t.Run("CreateOnly", func(t *testing.T) {
		err := NewVersionConflictError("test/docs/k1", nil)

		want := `record "test/docs/k1" already exists`
		if err.Error() != want {
			t.Errorf("Expected %q, got %q", want, err.Error())
		}

		if !IsVersionConflict(err) {
			t.Error("IsVersionConflict should return true")
		}
	})
}

func TestWrappedErrors(t *testing.T) {
	// Errors remain detectable through fmt.Errorf %w chains
	inner := NewVersionConflictError("test/docs/k1", nil)
	wrapped := fmt.Errorf("put failed: %w", inner)

	if !IsVersionConflict(wrapped) {
		t.Error("IsVersionConflict should see through wrapping")
	}
	if IsNotFound(wrapped) {
		t.Error("IsNotFound should not match a version conflict")
	}
}
