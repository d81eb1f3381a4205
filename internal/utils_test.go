package internal

import (
	"regexp"
	"testing"
)

func TestGenerateRequestID(t *testing.T) {
	id := GenerateRequestID("Xin chào")

	if !regexp.MustCompile(`^\d+_[0-9a-f]{8}$`).MatchString(id) {
		t.Errorf("Unexpected request ID format: %s", id)
	}

	// md5("Xin chào") prefix is stable across calls
	other := GenerateRequestID("Xin chào")
	if id[len(id)-8:] != other[len(other)-8:] {
		t.Errorf("Expected identical hash suffix, got %s and %s", id, other)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		in       string
		n        int
		expected string
	}{
		{"Hallo", 10, "Hallo"},
		{"Hallo", 5, "Hallo"},
		{"Hallo Welt", 6, "Hallo…"},
		{"Tiếng Việt", 4, "Tiế…"},
		{"abc", 1, "…"},
		{"abc", 0, "abc"},
	}

	for _, tt := range tests {
		if got := Truncate(tt.in, tt.n); got != tt.expected {
			t.Errorf("Truncate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.expected)
		}
	}
}
