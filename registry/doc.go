/*
Package registry manages the converter set for the record conversion
layer.

A Registry holds entity-level and field-level converter entries,
indexed by source/target type and direction. Entries are built through
typed constructors:

	reg := registry.New()

	// Field-level: upper-case a name on write, restore on read
	reg.MustRegister(
	    registry.FieldWrite(func(n Name) (any, error) {
	        return strings.ToUpper(string(n)), nil
	    }),
	    registry.FieldRead(func(v any) (Name, error) {
	        s, ok := v.(string)
	        if !ok {
	            return "", errors.NewFieldTypeMismatchError("name", "string", fmt.Sprintf("%T", v))
	        }
	        return Name(strings.ToLower(s)), nil
	    }),
	)

	// Entity-level: full control over the record
	reg.MustRegister(registry.EntityWrite(func(u *User, key record.Key) (*record.Record, error) {
	    ...
	}))

Resolution precedence is fixed: an entity-level converter for a type
and direction supersedes all field-level converters for that type's
fields. Registering two entity-level converters for the same
(type, direction) pair is a configuration error surfaced at Register
time; last-write-wins is deliberately not supported. Registering the
same converter for both directions as two entries is valid.

Registration is expected to complete during setup, before any
concurrent resolution begins. After that the registry is read-only and
safe for unsynchronized concurrent readers; the internal lock exists
only to keep misuse defined.

Validate enforces the build-time completeness rule: a field type with
a converter in one direction must have either a converter for the
opposite direction or a derivable built-in default.
*/
package registry
