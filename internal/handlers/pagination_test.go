package handlers

import "testing"

func TestParsePaginationParamsDefaults(t *testing.T) {
	page, limit, err := parsePaginationParams("", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 1 || limit != 10 {
		t.Fatalf("expected defaults 1/10, got %d/%d", page, limit)
	}
}

func TestParsePaginationParamsExplicitValues(t *testing.T) {
	page, limit, err := parsePaginationParams("3", "25")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page != 3 || limit != 25 {
		t.Fatalf("expected 3/25, got %d/%d", page, limit)
	}
}

func TestParsePaginationParamsRejectsBadValues(t *testing.T) {
	if _, _, err := parsePaginationParams("0", ""); err == nil {
		t.Fatal("expected error for page=0")
	}
	if _, _, err := parsePaginationParams("abc", ""); err == nil {
		t.Fatal("expected error for non-numeric page")
	}
	if _, _, err := parsePaginationParams("", "-5"); err == nil {
		t.Fatal("expected error for negative limit")
	}
}

func TestPageCount(t *testing.T) {
	if got := pageCount(0, 10); got != 0 {
		t.Fatalf("expected 0 pages for empty set, got %d", got)
	}
	if got := pageCount(10, 10); got != 1 {
		t.Fatalf("expected 1 page, got %d", got)
	}
	if got := pageCount(11, 10); got != 2 {
		t.Fatalf("expected 2 pages, got %d", got)
	}
}
