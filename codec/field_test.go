/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"reflect"
	"strings"
	"testing"

	"github.com/suparena/recordconv/errors"
	"github.com/suparena/recordconv/registry"
)

func newTestFieldCodec(t *testing.T) *FieldCodec {
	t.Helper()
	return NewFieldCodec(registry.New())
}

func TestBooleanMapping(t *testing.T) {
	fc := newTestFieldCodec(t)
	boolType := reflect.TypeOf(false)

	t.Run("TrueEncodesToOne", func(t *testing.T) {
		av, present, err := fc.Encode("active", boolType, true)
		if err != nil || !present {
			t.Fatalf("encode failed: %v", err)
		}
		if av != int64(1) {
			t.Errorf("expected int64 1, got %T %v", av, av)
		}
	})

	t.Run("FalseEncodesToZero", func(t *testing.T) {
		av, present, err := fc.Encode("active", boolType, false)
		if err != nil || !present {
			t.Fatalf("encode failed: %v", err)
		}
		if av != int64(0) {
			t.Errorf("expected int64 0, got %T %v", av, av)
		}
	})

	t.Run("ZeroDecodesToFalse", func(t *testing.T) {
		v, set, err := fc.Decode("active", boolType, int64(0), true, false, nil)
		if err != nil || !set {
			t.Fatalf("decode failed: %v", err)
		}
		if v != false {
			t.Errorf("expected false, got %v", v)
		}
	})

	t.Run("OneDecodesToTrue", func(t *testing.T) {
		v, set, err := fc.Decode("active", boolType, int64(1), true, false, nil)
		if err != nil || !set {
			t.Fatalf("decode failed: %v", err)
		}
		if v != true {
			t.Errorf("expected true, got %v", v)
		}
	})

	t.Run("OtherIntegersAreMismatches", func(t *testing.T) {
		for _, n := range []int64{-1, 2, 42} {
			_, _, err := fc.Decode("active", boolType, n, true, false, nil)
			if !errors.IsFieldTypeMismatch(err) {
				t.Errorf("decoding %d: expected field type mismatch, got %v", n, err)
			}
		}
	})

	t.Run("NonIntegerIsMismatch", func(t *testing.T) {
		_, _, err := fc.Decode("active", boolType, "true", true, false, nil)
		if !errors.IsFieldTypeMismatch(err) {
			t.Errorf("expected field type mismatch, got %v", err)
		}
	})
}

func TestScalarDefaults(t *testing.T) {
	fc := newTestFieldCodec(t)

	t.Run("String", func(t *testing.T) {
		av, _, err := fc.Encode("name", reflect.TypeOf(""), "Ada")
		if err != nil || av != "Ada" {
			t.Fatalf("expected Ada, got %v, %v", av, err)
		}
		v, _, err := fc.Decode("name", reflect.TypeOf(""), "Ada", true, false, nil)
		if err != nil || v != "Ada" {
			t.Fatalf("expected Ada, got %v, %v", v, err)
		}
	})

	t.Run("IntWidths", func(t *testing.T) {
		av, _, err := fc.Encode("n", reflect.TypeOf(int32(0)), int32(7))
		if err != nil || av != int64(7) {
			t.Fatalf("expected int64 7, got %T %v, %v", av, av, err)
		}
		v, _, err := fc.Decode("n", reflect.TypeOf(int32(0)), int64(7), true, false, nil)
		if err != nil || v != int32(7) {
			t.Fatalf("expected int32 7, got %T %v, %v", v, v, err)
		}
	})

	t.Run("Float", func(t *testing.T) {
		av, _, err := fc.Encode("r", reflect.TypeOf(0.0), 0.25)
		if err != nil || av != 0.25 {
			t.Fatalf("expected 0.25, got %v, %v", av, err)
		}
		v, _, err := fc.Decode("r", reflect.TypeOf(0.0), 0.25, true, false, nil)
		if err != nil || v != 0.25 {
			t.Fatalf("expected 0.25, got %v, %v", v, err)
		}
	})

	t.Run("NamedStringType", func(t *testing.T) {
		type status string
		av, _, err := fc.Encode("status", reflect.TypeOf(status("")), status("open"))
		if err != nil || av != "open" {
			t.Fatalf("expected open, got %v, %v", av, err)
		}
		v, _, err := fc.Decode("status", reflect.TypeOf(status("")), "open", true, false, nil)
		if err != nil || v != status("open") {
			t.Fatalf("expected status open, got %T %v, %v", v, v, err)
		}
	})

	t.Run("WrongShapeFails", func(t *testing.T) {
		_, _, err := fc.Decode("name", reflect.TypeOf(""), int64(5), true, false, nil)
		if !errors.IsFieldTypeMismatch(err) {
			t.Errorf("expected field type mismatch, got %v", err)
		}
	})
}

func TestListDefaults(t *testing.T) {
	fc := newTestFieldCodec(t)
	listType := reflect.TypeOf([]int64{})

	av, present, err := fc.Encode("avlOpts", listType, []int64{10, 5})
	if err != nil || !present {
		t.Fatalf("encode failed: %v", err)
	}
	list, ok := av.([]any)
	if !ok || len(list) != 2 || list[0] != int64(10) || list[1] != int64(5) {
		t.Fatalf("unexpected encoded list: %v", av)
	}

	v, set, err := fc.Decode("avlOpts", listType, []any{int64(10), int64(5)}, true, false, nil)
	if err != nil || !set {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(v, []int64{10, 5}) {
		t.Errorf("expected [10 5], got %v", v)
	}

	// A list with an element of the wrong shape aborts the decode
	_, _, err = fc.Decode("avlOpts", listType, []any{int64(10), "5"}, true, false, nil)
	if !errors.IsFieldTypeMismatch(err) {
		t.Errorf("expected field type mismatch, got %v", err)
	}
}

func TestMapDefaults(t *testing.T) {
	fc := newTestFieldCodec(t)
	mapType := reflect.TypeOf(map[string]int64{})

	av, _, err := fc.Encode("scores", mapType, map[string]int64{"a": 1, "b": 2})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	m, ok := av.(map[string]any)
	if !ok || m["a"] != int64(1) || m["b"] != int64(2) {
		t.Fatalf("unexpected encoded map: %v", av)
	}

	v, _, err := fc.Decode("scores", mapType, map[string]any{"a": int64(1)}, true, false, nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if !reflect.DeepEqual(v, map[string]int64{"a": 1}) {
		t.Errorf("expected map[a:1], got %v", v)
	}
}

type address struct {
	City    string
	Country string
}

func TestNestedStructMapping(t *testing.T) {
	fc := newTestFieldCodec(t)
	if err := RegisterNested(fc,
		Attr("city",
			func(a *address) string { return a.City },
			func(a *address, v string) { a.City = v }),
		Attr("country",
			func(a *address) string { return a.Country },
			func(a *address, v string) { a.Country = v }).WithFallback("N/A"),
	); err != nil {
		t.Fatalf("RegisterNested failed: %v", err)
	}

	addrType := reflect.TypeOf(address{})

	av, _, err := fc.Encode("address", addrType, address{City: "Oslo", Country: "NO"})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	m, ok := av.(map[string]any)
	if !ok || m["city"] != "Oslo" || m["country"] != "NO" {
		t.Fatalf("unexpected nested map: %v", av)
	}

	v, _, err := fc.Decode("address", addrType, map[string]any{"city": "Oslo"}, true, false, nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if v != (address{City: "Oslo", Country: "N/A"}) {
		t.Errorf("expected nested fallback to apply, got %+v", v)
	}

	// Unregistered struct types have no default mapping
	type unregistered struct{ X int }
	_, _, err = fc.Encode("u", reflect.TypeOf(unregistered{}), unregistered{X: 1})
	if !errors.IsConverterResolution(err) {
		t.Errorf("expected converter resolution error, got %v", err)
	}
}

func TestMissingAttributePolicy(t *testing.T) {
	fc := newTestFieldCodec(t)
	strType := reflect.TypeOf("")

	t.Run("OptionalWithFallback", func(t *testing.T) {
		v, set, err := fc.Decode("country", strType, nil, false, false, "N/A")
		if err != nil || !set {
			t.Fatalf("decode failed: %v", err)
		}
		if v != "N/A" {
			t.Errorf("expected fallback N/A, got %v", v)
		}
	})

	t.Run("OptionalWithoutFallback", func(t *testing.T) {
		_, set, err := fc.Decode("country", strType, nil, false, false, nil)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		if set {
			t.Error("expected the field to keep its zero value")
		}
	})

	t.Run("RequiredAbsent", func(t *testing.T) {
		_, _, err := fc.Decode("name", strType, nil, false, true, nil)
		if !errors.IsFieldTypeMismatch(err) {
			t.Errorf("expected a conversion error for a missing required field, got %v", err)
		}
	})
}

type loudString string

func TestFieldConverterPrecedence(t *testing.T) {
	reg := registry.New()
	reg.MustRegister(
		registry.FieldWrite(func(v loudString) (any, error) {
			return strings.ToUpper(string(v)), nil
		}),
		registry.FieldRead(func(v any) (loudString, error) {
			s, ok := v.(string)
			if !ok {
				return "", errors.NewFieldTypeMismatchError("loud", "string", "other")
			}
			return loudString(strings.ToLower(s)), nil
		}),
	)
	fc := NewFieldCodec(reg)
	loudType := reflect.TypeOf(loudString(""))

	// The converter, not the built-in string default, must apply
	av, _, err := fc.Encode("greeting", loudType, loudString("hello"))
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if av != "HELLO" {
		t.Errorf("expected converter output HELLO, got %v", av)
	}

	v, _, err := fc.Decode("greeting", loudType, "HELLO", true, false, nil)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if v != loudString("hello") {
		t.Errorf("expected converter output hello, got %v", v)
	}
}

func TestPointerFields(t *testing.T) {
	fc := newTestFieldCodec(t)
	ptrType := reflect.TypeOf((*string)(nil))

	t.Run("NilIsOmitted", func(t *testing.T) {
		var p *string
		_, present, err := fc.Encode("note", ptrType, p)
		if err != nil {
			t.Fatalf("encode failed: %v", err)
		}
		if present {
			t.Error("expected nil pointer to be omitted")
		}
	})

	t.Run("ValueRoundTrips", func(t *testing.T) {
		s := "hi"
		av, present, err := fc.Encode("note", ptrType, &s)
		if err != nil || !present {
			t.Fatalf("encode failed: %v", err)
		}
		if av != "hi" {
			t.Errorf("expected hi, got %v", av)
		}

		v, _, err := fc.Decode("note", ptrType, "hi", true, false, nil)
		if err != nil {
			t.Fatalf("decode failed: %v", err)
		}
		p, ok := v.(*string)
		if !ok || p == nil || *p != "hi" {
			t.Errorf("expected *string hi, got %T %v", v, v)
		}
	})
}

func TestHasDefault(t *testing.T) {
	fc := newTestFieldCodec(t)

	yes := []reflect.Type{
		reflect.TypeOf(false),
		reflect.TypeOf(""),
		reflect.TypeOf(int64(0)),
		reflect.TypeOf(0.0),
		reflect.TypeOf([]int64{}),
		reflect.TypeOf(map[string]string{}),
		reflect.TypeOf([]byte{}),
	}
	for _, typ := range yes {
		if !fc.HasDefault(typ) {
			t.Errorf("expected a default for %s", typ)
		}
	}

	type unregistered struct{ X int }
	no := []reflect.Type{
		reflect.TypeOf(unregistered{}),
		reflect.TypeOf(make(chan int)),
		reflect.TypeOf(map[int]string{}),
	}
	for _, typ := range no {
		if fc.HasDefault(typ) {
			t.Errorf("expected no default for %s", typ)
		}
	}
}
