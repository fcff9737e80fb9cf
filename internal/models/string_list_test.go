package models

import (
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNewStringListNormalizesInput(t *testing.T) {
	got := NewStringList([]string{" excavation ", "", "grading", "   "})
	want := StringList{"excavation", "grading"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestStringListDecodesLegacyStringValue(t *testing.T) {
	raw, err := bson.Marshal(bson.M{"details": "Mon-Sat 9:00-18:00"})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var doc struct {
		Details StringList `bson:"details"`
	}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(doc.Details) != 1 || doc.Details[0] != "Mon-Sat 9:00-18:00" {
		t.Fatalf("expected single-element list, got %v", doc.Details)
	}
}
