package handlers

import "testing"

func TestParseViewLimitDefault(t *testing.T) {
	limit, err := parseViewLimit("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if limit != defaultViewLimit {
		t.Fatalf("expected default %d, got %d", defaultViewLimit, limit)
	}
}

func TestParseViewLimitRejectsBadValues(t *testing.T) {
	for _, raw := range []string{"0", "-2", "six"} {
		if _, err := parseViewLimit(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}
