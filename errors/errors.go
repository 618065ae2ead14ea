/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package errors

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	// ErrNotFound is returned when a record is not found in the store
	ErrNotFound = errors.New("record not found")

	// ErrKeyParse is returned when a key string cannot be decoded
	ErrKeyParse = errors.New("key parse failed")

	// ErrConverterResolution is returned when converter registration or
	// lookup cannot produce exactly one applicable converter
	ErrConverterResolution = errors.New("converter resolution failed")

	// ErrFieldTypeMismatch is returned when a stored attribute is
	// incompatible with the declared field type
	ErrFieldTypeMismatch = errors.New("field type mismatch")

	// ErrVersionConflict is returned when a conditional write observes a
	// stored version different from the expected one
	ErrVersionConflict = errors.New("version conflict")
)

// NotFoundError represents an error when a record is not found
type NotFoundError struct {
	Type string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with key %q not found", e.Type, e.Key)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// KeyParseError represents a malformed key string observed on decode.
// It always carries the original input.
type KeyParseError struct {
	Input  string
	Reason string
}

func (e *KeyParseError) Error() string {
	return fmt.Sprintf("cannot parse key %q: %s", e.Input, e.Reason)
}

func (e *KeyParseError) Is(target error) bool {
	return target == ErrKeyParse
}

// ConverterResolutionError represents a missing or ambiguous converter
// for a type and direction
type ConverterResolutionError struct {
	Type      string
	Direction string
	Reason    string
}

func (e *ConverterResolutionError) Error() string {
	return fmt.Sprintf("converter resolution for %s (%s): %s", e.Type, e.Direction, e.Reason)
}

func (e *ConverterResolutionError) Is(target error) bool {
	return target == ErrConverterResolution
}

// FieldTypeMismatchError represents a stored attribute whose shape is
// incompatible with the declared field type
type FieldTypeMismatchError struct {
	Field string
	Want  string
	Got   string
}

func (e *FieldTypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: want %s, got %s", e.Field, e.Want, e.Got)
}

func (e *FieldTypeMismatchError) Is(target error) bool {
	return target == ErrFieldTypeMismatch
}

// VersionConflictError represents a conditional write rejected because
// the stored version did not match the expected one
type VersionConflictError struct {
	Key      string
	Expected *int64
}

func (e *VersionConflictError) Error() string {
	if e.Expected == nil {
		return fmt.Sprintf("record %q already exists", e.Key)
	}
	return fmt.Sprintf("record %q: stored version != expected %d", e.Key, *e.Expected)
}

func (e *VersionConflictError) Is(target error) bool {
	return target == ErrVersionConflict
}

// Helper functions for creating errors

// NewNotFoundError creates a new NotFoundError
func NewNotFoundError(entityType, key string) error {
	return &NotFoundError{Type: entityType, Key: key}
}

// NewKeyParseError creates a new KeyParseError
func NewKeyParseError(input, reason string) error {
	return &KeyParseError{Input: input, Reason: reason}
}

// NewConverterResolutionError creates a new ConverterResolutionError
func NewConverterResolutionError(typeName, direction, reason string) error {
	return &ConverterResolutionError{Type: typeName, Direction: direction, Reason: reason}
}

// NewFieldTypeMismatchError creates a new FieldTypeMismatchError
func NewFieldTypeMismatchError(field, want, got string) error {
	return &FieldTypeMismatchError{Field: field, Want: want, Got: got}
}

// NewVersionConflictError creates a new VersionConflictError
func NewVersionConflictError(key string, expected *int64) error {
	return &VersionConflictError{Key: key, Expected: expected}
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsKeyParse checks if an error is a key parse error
func IsKeyParse(err error) bool {
	return errors.Is(err, ErrKeyParse)
}

// IsConverterResolution checks if an error is a converter resolution error
func IsConverterResolution(err error) bool {
	return errors.Is(err, ErrConverterResolution)
}

// IsFieldTypeMismatch checks if an error is a field type mismatch error
func IsFieldTypeMismatch(err error) bool {
	return errors.Is(err, ErrFieldTypeMismatch)
}

// IsVersionConflict checks if an error is a version conflict error
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}
