/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/recordconv/record"
)

// recordToItem renders a record's attributes as a DynamoDB item,
// including the PK/SK pair. attributevalue handles the value shapes
// the record model allows (int64, float64, string, []byte, lists,
// nested maps).
func recordToItem(rec *record.Record) (map[string]types.AttributeValue, error) {
	item := itemKey(rec.Key)
	for name, v := range rec.Attributes {
		switch name {
		case attrPK, attrSK, attrVersion, attrExpiresAt:
			return nil, fmt.Errorf("attribute name %q is reserved", name)
		}
		av, err := attributevalue.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		item[name] = av
	}
	return item, nil
}

// attributeToValue is the hand-rolled inverse of recordToItem.
// attributevalue is not used on this path: unmarshaling into any loses
// the int64/float64 distinction the record model preserves.
func attributeToValue(av types.AttributeValue) (any, error) {
	switch tv := av.(type) {
	case *types.AttributeValueMemberS:
		return tv.Value, nil
	case *types.AttributeValueMemberN:
		return parseNumber(av)
	case *types.AttributeValueMemberB:
		return tv.Value, nil
	case *types.AttributeValueMemberL:
		out := make([]any, len(tv.Value))
		for i, ev := range tv.Value {
			v, err := attributeToValue(ev)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case *types.AttributeValueMemberM:
		out := make(map[string]any, len(tv.Value))
		for k, ev := range tv.Value {
			v, err := attributeToValue(ev)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case *types.AttributeValueMemberNULL:
		return nil, fmt.Errorf("null attribute values are not part of the record model")
	case *types.AttributeValueMemberBOOL:
		return nil, fmt.Errorf("boolean attribute values are not part of the record model")
	default:
		return nil, fmt.Errorf("unsupported attribute value type %T", av)
	}
}

func parseNumber(av types.AttributeValue) (any, error) {
	n, ok := av.(*types.AttributeValueMemberN)
	if !ok {
		return nil, fmt.Errorf("expected a number, got %T", av)
	}
	if !strings.ContainsAny(n.Value, ".eE") {
		i, err := strconv.ParseInt(n.Value, 10, 64)
		if err == nil {
			return i, nil
		}
	}
	f, err := strconv.ParseFloat(n.Value, 64)
	if err != nil {
		return nil, fmt.Errorf("unparsable number %q", n.Value)
	}
	return f, nil
}
