/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package record

import "fmt"

// Expect is the version expectation presented to the store's
// conditional-write primitive.
//
//   - ExpectNone: unconditional upsert; the entity does not participate
//     in optimistic locking.
//   - ExpectCreate: create the record, fail if it already exists.
//   - ExpectVersion(n): replace the record, fail unless the stored
//     version equals n.
type Expect struct {
	conditional bool
	version     *int64
}

// ExpectNone returns the unconditional write expectation.
func ExpectNone() Expect {
	return Expect{}
}

// ExpectCreate returns the create-only expectation.
func ExpectCreate() Expect {
	return Expect{conditional: true}
}

// ExpectVersion returns the compare-and-swap expectation for version v.
func ExpectVersion(v int64) Expect {
	return Expect{conditional: true, version: &v}
}

// Conditional reports whether the write carries any condition.
func (e Expect) Conditional() bool {
	return e.conditional
}

// Version returns the expected stored version, or nil for
// unconditional and create-only writes.
func (e Expect) Version() *int64 {
	return e.version
}

func (e Expect) String() string {
	switch {
	case !e.conditional:
		return "none"
	case e.version == nil:
		return "create"
	default:
		return fmt.Sprintf("version=%d", *e.version)
	}
}
