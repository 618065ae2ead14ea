/*
Package recordconv is a bidirectional conversion layer between typed
domain entities and the flat record representation of a key-value
store: a record identified by a key, holding named attributes, an
optional expiration and an optional version stamp used for optimistic
locking.

The library follows a setup → runtime workflow:
  - Setup: build a Descriptor per entity type, register converters and
    nested mappings, bind each descriptor to a namespace/set
  - Runtime: convert entities with EntityCodec, or use the typed Store
    binding for full read-modify-write cycles with optimistic locking

Key Features:
  - Type-safe descriptors using Go generics, no reflection over entity
    values in the conversion path
  - Composite identifiers encoded as "<tag>::<f1>::...::<fN>" with
    exact round-tripping and all-or-nothing parsing
  - Entity-level and field-level converter overrides with deterministic
    precedence and build-time ambiguity detection
  - Boolean fields carried as 0/1 integers for stores without a native
    boolean type
  - Optimistic locking: create-only and compare-and-swap writes driven
    by the version carried on the entity
  - DynamoDB repository implementation and an in-memory mock

Basic Usage:

	reg := registry.New()
	fields := codec.NewFieldCodec(reg)
	ec, _ := codec.NewEntityCodec(desc, fields, "test", "docs")

	store := recordconv.NewStore(ec, mock.New())
	doc := &VersionedDocument{Key: "vdoc-1", AvailableOptions: []int64{10, 5}}
	_ = store.Put(ctx, doc)   // create, version becomes 1
	_ = store.Put(ctx, doc)   // CAS on 1, version becomes 2

For more information, see the documentation at https://github.com/suparena/recordconv
*/
package recordconv
