/*
Package record defines the flat record representation exchanged with
the key-value store.

A Record is {Key, Attributes, Expiration, Version}:

	rec := record.NewRecord(record.Key{
	    Namespace: "test",
	    Set:       "users",
	    UserKey:   "user-123",
	})
	rec.Attributes["name"] = "Ada"
	rec.Attributes["active"] = int64(1) // booleans travel as 0/1
	rec.Expiration = record.NeverExpire

Attribute values are restricted to the store's scalar and collection
shapes: int64, float64, string, []byte, []any and map[string]any.
There is no native boolean type; the codec layer converts booleans to
0/1 integers on write and back on read.

Version is optional and only present for entities participating in
optimistic locking. A nil Version on write instructs the repository to
create the record and fail if it already exists.
*/
package record
