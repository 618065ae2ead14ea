/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/suparena/recordconv/record"
)

func TestRecordToItem(t *testing.T) {
	rec := record.NewRecord(record.Key{Namespace: "test", Set: "docs", UserKey: "k1"})
	rec.Attributes["body"] = "hello"
	rec.Attributes["count"] = int64(42)
	rec.Attributes["ratio"] = 0.5
	rec.Attributes["opts"] = []any{int64(1), int64(2)}
	rec.Attributes["meta"] = map[string]any{"lang": "en"}

	item, err := recordToItem(rec)
	if err != nil {
		t.Fatalf("recordToItem failed: %v", err)
	}

	pk, ok := item[attrPK].(*types.AttributeValueMemberS)
	if !ok || pk.Value != "docs#k1" {
		t.Errorf("unexpected PK: %v", item[attrPK])
	}
	if s, ok := item["body"].(*types.AttributeValueMemberS); !ok || s.Value != "hello" {
		t.Errorf("unexpected body: %v", item["body"])
	}
	if n, ok := item["count"].(*types.AttributeValueMemberN); !ok || n.Value != "42" {
		t.Errorf("unexpected count: %v", item["count"])
	}
	if l, ok := item["opts"].(*types.AttributeValueMemberL); !ok || len(l.Value) != 2 {
		t.Errorf("unexpected opts: %v", item["opts"])
	}
	if m, ok := item["meta"].(*types.AttributeValueMemberM); !ok || len(m.Value) != 1 {
		t.Errorf("unexpected meta: %v", item["meta"])
	}
}

func TestRecordToItemReservedName(t *testing.T) {
	rec := record.NewRecord(record.Key{Namespace: "test", Set: "docs", UserKey: "k1"})
	rec.Attributes["_version"] = int64(1)

	if _, err := recordToItem(rec); err == nil {
		t.Fatal("expected reserved attribute name to be rejected")
	}
}

func TestAttributeToValueRoundTrip(t *testing.T) {
	rec := record.NewRecord(record.Key{Namespace: "test", Set: "docs", UserKey: "k1"})
	rec.Attributes["body"] = "hello"
	rec.Attributes["count"] = int64(42)
	rec.Attributes["ratio"] = 0.5
	rec.Attributes["opts"] = []any{int64(10), int64(5)}
	rec.Attributes["meta"] = map[string]any{"lang": "en", "stars": int64(3)}

	item, err := recordToItem(rec)
	if err != nil {
		t.Fatalf("recordToItem failed: %v", err)
	}

	for name, av := range item {
		if name == attrPK || name == attrSK {
			continue
		}
		got, err := attributeToValue(av)
		if err != nil {
			t.Fatalf("attributeToValue(%s) failed: %v", name, err)
		}
		switch name {
		case "count":
			if got != int64(42) {
				t.Errorf("count: expected int64 42, got %T %v", got, got)
			}
		case "ratio":
			if got != 0.5 {
				t.Errorf("ratio: expected float64 0.5, got %T %v", got, got)
			}
		case "opts":
			list, ok := got.([]any)
			if !ok || len(list) != 2 || list[0] != int64(10) || list[1] != int64(5) {
				t.Errorf("opts: unexpected %v", got)
			}
		case "meta":
			m, ok := got.(map[string]any)
			if !ok || m["lang"] != "en" || m["stars"] != int64(3) {
				t.Errorf("meta: unexpected %v", got)
			}
		}
	}
}

func TestAttributeToValueRejectsForeignShapes(t *testing.T) {
	if _, err := attributeToValue(&types.AttributeValueMemberBOOL{Value: true}); err == nil {
		t.Error("expected BOOL attribute to be rejected")
	}
	if _, err := attributeToValue(&types.AttributeValueMemberNULL{Value: true}); err == nil {
		t.Error("expected NULL attribute to be rejected")
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in   string
		want any
	}{
		{"42", int64(42)},
		{"-7", int64(-7)},
		{"0.5", 0.5},
		{"1e3", float64(1000)},
	}
	for _, tt := range tests {
		got, err := parseNumber(&types.AttributeValueMemberN{Value: tt.in})
		if err != nil {
			t.Errorf("parseNumber(%q) failed: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseNumber(%q): expected %T %v, got %T %v", tt.in, tt.want, tt.want, got, got)
		}
	}

	if _, err := parseNumber(&types.AttributeValueMemberN{Value: "abc"}); err == nil {
		t.Error("expected unparsable number to fail")
	}
}
