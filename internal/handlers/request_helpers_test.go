package handlers

import (
	"reflect"
	"testing"
)

func TestParseListFieldJSONArray(t *testing.T) {
	got := parseListField(`["excavation", " grading ", ""]`)
	want := []string{"excavation", "grading"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseListFieldCommaSeparated(t *testing.T) {
	got := parseListField("excavation, grading ,, demolition")
	want := []string{"excavation", "grading", "demolition"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestParseListFieldEmpty(t *testing.T) {
	if got := parseListField("   "); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestParseBoolValueAcceptsCheckboxOn(t *testing.T) {
	got, err := parseBoolValue("on")
	if err != nil || !got {
		t.Fatalf("expected on=true, got %v err=%v", got, err)
	}
}

func TestParseBoolValueRejectsGarbage(t *testing.T) {
	if _, err := parseBoolValue("maybe"); err == nil {
		t.Fatal("expected error for non-boolean value")
	}
}
