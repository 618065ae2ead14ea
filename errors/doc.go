/*
Package errors provides semantic error types for the record conversion
layer.

The package defines the conversion-layer failure kinds with specific
types that can be checked using the standard errors.Is() function or
the provided helper functions.

Common Errors:

	var (
	    ErrNotFound            = errors.New("record not found")
	    ErrKeyParse            = errors.New("key parse failed")
	    ErrConverterResolution = errors.New("converter resolution failed")
	    ErrFieldTypeMismatch   = errors.New("field type mismatch")
	    ErrVersionConflict     = errors.New("version conflict")
	)

Usage:

	// Check error type
	doc, err := store.Get(ctx, key)
	if err != nil {
	    if errors.IsNotFound(err) {
	        // Handle not found case
	        return nil, fmt.Errorf("document %v does not exist", key)
	    }
	    return nil, err
	}

	// Create typed errors
	err := errors.NewKeyParseError("comments::10", "expected 3 tokens, got 2")
	err := errors.NewVersionConflictError("test/docs/k1", record.VersionOf(3))

Version conflicts are surfaced distinctly from generic store errors so
callers can implement read-reapply-rewrite retry loops; the conversion
engine itself never retries. Opaque store failures are passed through
wrapped with %w and are not represented here.

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
