/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"fmt"
	"reflect"

	"github.com/suparena/recordconv/errors"
	"github.com/suparena/recordconv/registry"
)

// FieldCodec converts individual field values to and from store-native
// attribute values. Resolution order per field: a field-level converter
// registered for the declared type and direction, then a registered
// nested descriptor for struct types, then the built-in defaults
// (scalars direct, booleans as 0/1 integers, slices as lists, maps and
// nested structs as nested attribute maps).
type FieldCodec struct {
	reg    *registry.Registry
	nested map[reflect.Type]nestedCodec
}

type nestedCodec struct {
	encode func(fc *FieldCodec, v any) (map[string]any, error)
	decode func(fc *FieldCodec, m map[string]any) (any, error)
}

// NewFieldCodec creates a FieldCodec backed by the given converter
// registry.
func NewFieldCodec(reg *registry.Registry) *FieldCodec {
	return &FieldCodec{
		reg:    reg,
		nested: make(map[reflect.Type]nestedCodec),
	}
}

// RegisterNested teaches the codec to map the plain struct type N to a
// nested attribute map using the given field specs. Registration
// happens during setup, alongside converter registration.
func RegisterNested[N any](fc *FieldCodec, fields ...Field[N]) error {
	nt := typeOf[N]()
	if _, exists := fc.nested[nt]; exists {
		return fmt.Errorf("nested mapping for %s already registered", nt)
	}
	fc.nested[nt] = nestedCodec{
		encode: func(fc *FieldCodec, v any) (map[string]any, error) {
			var n *N
			switch t := v.(type) {
			case *N:
				n = t
			case N:
				n = &t
			default:
				return nil, errors.NewFieldTypeMismatchError(nt.String(), nt.String(), fmt.Sprintf("%T", v))
			}
			out := make(map[string]any, len(fields))
			for _, f := range fields {
				av, present, err := fc.Encode(f.Attribute, f.Type, f.Get(n))
				if err != nil {
					return nil, err
				}
				if present {
					out[f.Attribute] = av
				}
			}
			return out, nil
		},
		decode: func(fc *FieldCodec, m map[string]any) (any, error) {
			n := new(N)
			for _, f := range fields {
				raw, present := m[f.Attribute]
				dv, set, err := fc.Decode(f.Attribute, f.Type, raw, present, f.Required, f.Fallback)
				if err != nil {
					return nil, err
				}
				if !set {
					continue
				}
				if err := f.Set(n, dv); err != nil {
					return nil, err
				}
			}
			return *n, nil
		},
	}
	return nil
}

// HasDefault reports whether the built-in defaults can convert the
// declared type in both directions without a registered converter.
// Used by registry validation to decide whether a one-direction custom
// converter leaves the opposite direction derivable.
func (fc *FieldCodec) HasDefault(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Float32, reflect.Float64:
		return true
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return true // []byte
		}
		return fc.HasDefault(t.Elem())
	case reflect.Map:
		return t.Key().Kind() == reflect.String && fc.HasDefault(t.Elem())
	case reflect.Pointer:
		return fc.HasDefault(t.Elem())
	case reflect.Struct:
		_, ok := fc.nested[t]
		return ok
	case reflect.Interface:
		// any-typed fields pass through unchecked
		return t.NumMethod() == 0
	default:
		return false
	}
}

// Encode converts one field value into an attribute value. The second
// return value is false when the attribute should be omitted from the
// record (nil pointer fields).
func (fc *FieldCodec) Encode(attr string, declared reflect.Type, value any) (any, bool, error) {
	if conv, ok := fc.reg.ResolveField(declared, registry.Write); ok {
		out, err := conv(value)
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}
	return fc.encodeDefault(attr, declared, value)
}

// Decode converts one attribute value back into a field value. present
// reports whether the attribute existed on the record. The second
// return value is false when the field should keep its zero value
// (optional attribute absent with no declared fallback).
func (fc *FieldCodec) Decode(attr string, declared reflect.Type, value any, present, required bool, fallback any) (any, bool, error) {
	if !present {
		if required {
			return nil, false, errors.NewFieldTypeMismatchError(attr, declared.String(), "absent")
		}
		if fallback != nil {
			return fallback, true, nil
		}
		return nil, false, nil
	}
	if conv, ok := fc.reg.ResolveField(declared, registry.Read); ok {
		out, err := conv(value)
		if err != nil {
			return nil, false, err
		}
		return out, true, nil
	}
	out, err := fc.decodeDefault(attr, declared, value)
	if err != nil {
		return nil, false, err
	}
	return out, true, nil
}

func (fc *FieldCodec) encodeDefault(attr string, declared reflect.Type, value any) (any, bool, error) {
	if value == nil {
		return nil, false, nil
	}
	rv := reflect.ValueOf(value)

	switch declared.Kind() {
	case reflect.Bool:
		if rv.Bool() {
			return int64(1), true, nil
		}
		return int64(0), true, nil
	case reflect.String:
		return rv.String(), true, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return int64(rv.Uint()), true, nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true, nil
	case reflect.Pointer:
		if rv.IsNil() {
			return nil, false, nil
		}
		// route through Encode so converters for the element type apply
		return fc.Encode(attr, declared.Elem(), rv.Elem().Interface())
	case reflect.Slice:
		if declared.Elem().Kind() == reflect.Uint8 {
			return rv.Bytes(), true, nil
		}
		if rv.IsNil() {
			return nil, false, nil
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			ev, present, err := fc.Encode(attr, declared.Elem(), rv.Index(i).Interface())
			if err != nil {
				return nil, false, err
			}
			if !present {
				return nil, false, errors.NewFieldTypeMismatchError(attr, declared.String(), "list with omitted element")
			}
			out[i] = ev
		}
		return out, true, nil
	case reflect.Map:
		if declared.Key().Kind() != reflect.String {
			return nil, false, errors.NewFieldTypeMismatchError(attr, "map with string keys", declared.String())
		}
		if rv.IsNil() {
			return nil, false, nil
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			ev, present, err := fc.Encode(attr, declared.Elem(), iter.Value().Interface())
			if err != nil {
				return nil, false, err
			}
			if present {
				out[iter.Key().String()] = ev
			}
		}
		return out, true, nil
	case reflect.Struct:
		nc, ok := fc.nested[declared]
		if !ok {
			return nil, false, errors.NewConverterResolutionError(declared.String(), "write",
				"no converter, nested mapping or default")
		}
		m, err := nc.encode(fc, value)
		if err != nil {
			return nil, false, err
		}
		return m, true, nil
	case reflect.Interface:
		// any-typed fields carry their value unmodified
		return value, true, nil
	default:
		return nil, false, errors.NewConverterResolutionError(declared.String(), "write",
			"no converter, nested mapping or default")
	}
}

func (fc *FieldCodec) decodeDefault(attr string, declared reflect.Type, value any) (any, error) {
	switch declared.Kind() {
	case reflect.Bool:
		n, ok := asInt64(value)
		if !ok {
			return nil, errors.NewFieldTypeMismatchError(attr, "int64 0/1", fmt.Sprintf("%T", value))
		}
		switch n {
		case 0:
			return convertTo(declared, false), nil
		case 1:
			return convertTo(declared, true), nil
		default:
			return nil, errors.NewFieldTypeMismatchError(attr, "int64 0/1", fmt.Sprintf("%d", n))
		}
	case reflect.String:
		s, ok := value.(string)
		if !ok {
			return nil, errors.NewFieldTypeMismatchError(attr, "string", fmt.Sprintf("%T", value))
		}
		return convertTo(declared, s), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		n, ok := asInt64(value)
		if !ok {
			return nil, errors.NewFieldTypeMismatchError(attr, "int64", fmt.Sprintf("%T", value))
		}
		return convertTo(declared, n), nil
	case reflect.Float32, reflect.Float64:
		switch v := value.(type) {
		case float64:
			return convertTo(declared, v), nil
		case int64:
			return convertTo(declared, v), nil
		case int:
			return convertTo(declared, v), nil
		default:
			return nil, errors.NewFieldTypeMismatchError(attr, "float64", fmt.Sprintf("%T", value))
		}
	case reflect.Pointer:
		inner, err := fc.decodeElement(attr, declared.Elem(), value)
		if err != nil {
			return nil, err
		}
		p := reflect.New(declared.Elem())
		p.Elem().Set(reflect.ValueOf(inner))
		return p.Interface(), nil
	case reflect.Slice:
		if declared.Elem().Kind() == reflect.Uint8 {
			b, ok := value.([]byte)
			if !ok {
				return nil, errors.NewFieldTypeMismatchError(attr, "[]byte", fmt.Sprintf("%T", value))
			}
			return convertTo(declared, b), nil
		}
		list, ok := value.([]any)
		if !ok {
			return nil, errors.NewFieldTypeMismatchError(attr, "list", fmt.Sprintf("%T", value))
		}
		out := reflect.MakeSlice(declared, len(list), len(list))
		for i, ev := range list {
			dv, err := fc.decodeElement(attr, declared.Elem(), ev)
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(reflect.ValueOf(dv))
		}
		return out.Interface(), nil
	case reflect.Map:
		if declared.Key().Kind() != reflect.String {
			return nil, errors.NewFieldTypeMismatchError(attr, "map with string keys", declared.String())
		}
		m, ok := value.(map[string]any)
		if !ok {
			return nil, errors.NewFieldTypeMismatchError(attr, "map", fmt.Sprintf("%T", value))
		}
		out := reflect.MakeMapWithSize(declared, len(m))
		for k, ev := range m {
			dv, err := fc.decodeElement(attr, declared.Elem(), ev)
			if err != nil {
				return nil, err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(declared.Key()), reflect.ValueOf(dv))
		}
		return out.Interface(), nil
	case reflect.Struct:
		nc, ok := fc.nested[declared]
		if !ok {
			return nil, errors.NewConverterResolutionError(declared.String(), "read",
				"no converter, nested mapping or default")
		}
		m, ok2 := value.(map[string]any)
		if !ok2 {
			return nil, errors.NewFieldTypeMismatchError(attr, "nested map", fmt.Sprintf("%T", value))
		}
		return nc.decode(fc, m)
	case reflect.Interface:
		return value, nil
	default:
		return nil, errors.NewConverterResolutionError(declared.String(), "read",
			"no converter, nested mapping or default")
	}
}

// decodeElement routes list/map elements through converter resolution
// the same way top-level field values are.
func (fc *FieldCodec) decodeElement(attr string, declared reflect.Type, value any) (any, error) {
	if conv, ok := fc.reg.ResolveField(declared, registry.Read); ok {
		return conv(value)
	}
	return fc.decodeDefault(attr, declared, value)
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	default:
		return 0, false
	}
}

// convertTo renames a plain scalar to the declared (possibly named)
// type, e.g. string → Status.
func convertTo(declared reflect.Type, v any) any {
	return reflect.ValueOf(v).Convert(declared).Interface()
}
