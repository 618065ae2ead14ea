/*
Package codec implements the conversion engine between typed domain
entities and flat store records.

An entity type is described once, at setup, by a Descriptor: which
field identifies it, which field (if any) carries the optimistic-lock
version, and the attribute name for every remaining field. Accessors
are plain closures, so the conversion path performs no reflection over
entity values.

	commentKey := codec.CompositeKey[CommentKey]("comments",
	    codec.IntKeyField("pageId", func(k *CommentKey) int64 { return k.PageID },
	        func(k *CommentKey, v int64) { k.PageID = v }),
	    codec.IntKeyField("threadId", func(k *CommentKey) int64 { return k.ThreadID },
	        func(k *CommentKey, v int64) { k.ThreadID = v }),
	)

	desc := &codec.Descriptor[Comment]{
	    Name: "Comment",
	    Key: codec.Identifier(commentKey,
	        func(c *Comment) CommentKey { return c.Key },
	        func(c *Comment, k CommentKey) { c.Key = k }),
	    Fields: []codec.Field[Comment]{
	        codec.Attr("body",
	            func(c *Comment) string { return c.Body },
	            func(c *Comment, v string) { c.Body = v }).AsRequired(),
	    },
	}

	fields := codec.NewFieldCodec(reg)
	ec, err := codec.NewEntityCodec(desc, fields, "test", "comments")

Composite identifiers encode as "<tag>::<field1>::...::<fieldN>" and
round-trip exactly; decoding rejects a wrong token count or an
unparsable field with a key parse error carrying the offending input.

Field conversion consults the converter registry first; without a
converter, built-in defaults apply: scalars map directly, booleans map
to 0/1 integers (the store has no native boolean), slices map to
lists, maps and registered nested struct types map to nested attribute
maps recursively. Absent optional attributes take the field's declared
fallback; absent required attributes fail the whole decode.

The VersionManager carries the optimistic-locking protocol on the
entity side: a fresh entity writes with a create-only expectation, a
read entity writes with a compare-and-swap on the version it was read
at, and a confirmed write advances the carried version in place. The
conditional write itself is the store repository's job.

All conversions are pure, synchronous, in-memory transforms; every
component here is safe for concurrent use once setup has completed.
*/
package codec
