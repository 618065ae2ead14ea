/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package codec

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/suparena/recordconv/errors"
)

// KeyDelimiter separates the tag and field tokens of a composite key.
// Field types used in composite keys are restricted to representations
// that cannot contain it.
const KeyDelimiter = "::"

// KeyCodec converts a domain identifier to and from the store's
// user-key string. Implementations exist for plain scalars and for
// composite identifiers; custom identifier types supply their own.
type KeyCodec interface {
	EncodeKey(id any) (string, error)
	DecodeKey(s string) (any, error)
}

// StringKey returns the identity codec for string identifiers.
func StringKey() KeyCodec { return stringKeyCodec{} }

type stringKeyCodec struct{}

func (stringKeyCodec) EncodeKey(id any) (string, error) {
	s, ok := id.(string)
	if !ok {
		return "", fmt.Errorf("string key codec applied to %T", id)
	}
	return s, nil
}

func (stringKeyCodec) DecodeKey(s string) (any, error) {
	return s, nil
}

// Int64Key returns the codec for integer identifiers, rendered in
// their canonical decimal form.
func Int64Key() KeyCodec { return int64KeyCodec{} }

type int64KeyCodec struct{}

func (int64KeyCodec) EncodeKey(id any) (string, error) {
	n, ok := id.(int64)
	if !ok {
		return "", fmt.Errorf("int64 key codec applied to %T", id)
	}
	return strconv.FormatInt(n, 10), nil
}

func (int64KeyCodec) DecodeKey(s string) (any, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return nil, errors.NewKeyParseError(s, "not an integer")
	}
	return n, nil
}

// KeyField declares one ordered field of a composite key type K.
type KeyField[K any] struct {
	Name   string
	encode func(k *K) (string, error)
	decode func(k *K, token string) error
}

// IntKeyField declares an integer composite-key field.
func IntKeyField[K any](name string, get func(*K) int64, set func(*K, int64)) KeyField[K] {
	return KeyField[K]{
		Name: name,
		encode: func(k *K) (string, error) {
			return strconv.FormatInt(get(k), 10), nil
		},
		decode: func(k *K, token string) error {
			n, err := strconv.ParseInt(token, 10, 64)
			if err != nil {
				return fmt.Errorf("field %q is not an integer", name)
			}
			set(k, n)
			return nil
		},
	}
}

// StringKeyField declares a string composite-key field. The value must
// not contain the key delimiter; encoding fails if it does.
func StringKeyField[K any](name string, get func(*K) string, set func(*K, string)) KeyField[K] {
	return KeyField[K]{
		Name: name,
		encode: func(k *K) (string, error) {
			v := get(k)
			if strings.Contains(v, KeyDelimiter) {
				return "", fmt.Errorf("field %q contains the key delimiter", name)
			}
			return v, nil
		},
		decode: func(k *K, token string) error {
			set(k, token)
			return nil
		},
	}
}

type compositeKeyCodec[K any] struct {
	tag    string
	fields []KeyField[K]
}

// CompositeKey builds a codec for the composite identifier type K.
// The encoding is "<tag>::<field1>::...::<fieldN>" with fields in
// declared order. Decoding is all-or-nothing: a wrong token count, a
// wrong tag or an unparsable field fails with a key parse error that
// carries the offending input.
func CompositeKey[K any](tag string, fields ...KeyField[K]) KeyCodec {
	return &compositeKeyCodec[K]{tag: tag, fields: fields}
}

func (c *compositeKeyCodec[K]) EncodeKey(id any) (string, error) {
	var k *K
	switch v := id.(type) {
	case *K:
		k = v
	case K:
		k = &v
	default:
		return "", fmt.Errorf("composite key codec for %T applied to %T", k, id)
	}

	tokens := make([]string, 0, len(c.fields)+1)
	tokens = append(tokens, c.tag)
	for _, f := range c.fields {
		token, err := f.encode(k)
		if err != nil {
			return "", err
		}
		tokens = append(tokens, token)
	}
	return strings.Join(tokens, KeyDelimiter), nil
}

func (c *compositeKeyCodec[K]) DecodeKey(s string) (any, error) {
	tokens := strings.Split(s, KeyDelimiter)
	if len(tokens) != len(c.fields)+1 {
		return nil, errors.NewKeyParseError(s,
			fmt.Sprintf("expected %d tokens, got %d", len(c.fields)+1, len(tokens)))
	}
	if tokens[0] != c.tag {
		return nil, errors.NewKeyParseError(s, fmt.Sprintf("expected tag %q", c.tag))
	}

	k := new(K)
	for i, f := range c.fields {
		if err := f.decode(k, tokens[i+1]); err != nil {
			return nil, errors.NewKeyParseError(s, err.Error())
		}
	}
	return *k, nil
}
