package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type objectID string

func TestDedupe(t *testing.T) {
	tests := []struct {
		name     string
		input    []string
		expected []string
	}{
		{
			name:     "nil slice",
			input:    nil,
			expected: nil,
		},
		{
			name:     "empty slice",
			input:    []string{},
			expected: []string{},
		},
		{
			name:     "removes duplicates preserving order",
			input:    []string{"7", "3", "7", "9", "3"},
			expected: []string{"7", "3", "9"},
		},
		{
			name:     "removes empty values",
			input:    []string{"", "7", ""},
			expected: []string{"7"},
		},
		{
			name:     "whitespace is part of the value",
			input:    []string{"  7 ", "3", "7", "", "  7 ", "3"},
			expected: []string{"  7 ", "3", "7"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Dedupe(tt.input))
		})
	}

	t.Run("typed identifiers", func(t *testing.T) {
		got := Dedupe([]objectID{" a", "b", "a", " a"})
		assert.Equal(t, []objectID{" a", "b", "a"}, got)
	})
}

func TestHumanize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"has_positive_total", "Has positive total"},
		{"no_duplicate_emails", "No duplicate emails"},
		{"Check_VAT_number", "Check vat number"},
		{"x", "X"},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Humanize(tt.input))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "", Truncate("abc", 0))
	assert.Equal(t, "héé", Truncate("hééllo", 3))
}
