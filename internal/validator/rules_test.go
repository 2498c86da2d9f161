package validator

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotBlank(t *testing.T) {
	assert.True(t, NotBlank("market-1"))
	assert.False(t, NotBlank(""))
	assert.False(t, NotBlank(" \t\n"))
}

func TestRuneCounts(t *testing.T) {
	assert.True(t, MinRunes("Ada", 2))
	assert.False(t, MinRunes("A", 2))
	// runes, not bytes
	assert.True(t, RunesBetween("Ẹmẹka", 5, 5))

	tests := []struct {
		value string
		want  bool
	}{
		{"A", false},
		{"Al", true},
		{strings.Repeat("x", 100), true},
		{strings.Repeat("x", 101), false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RunesBetween(tt.value, 2, 100), tt.value)
	}
}

func TestMatches(t *testing.T) {
	rx := regexp.MustCompile(`^[a-z0-9-]+$`)
	assert.True(t, Matches("epl-2025-ars-che", rx))
	assert.False(t, Matches("EPL 2025", rx))
}

func TestIn(t *testing.T) {
	assert.True(t, In("settled", "open", "locked", "settled"))
	assert.False(t, In("void", "open", "locked", "settled"))
	assert.False(t, In(3))
}

func TestIsEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		{"ada@example.com", true},
		{"first.last+tag@sub.example.org", true},
		{"no-at-sign.example.com", false},
		{"ada@", false},
		{"@example.com", false},
		{strings.Repeat("a", 250) + "@x.io", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsEmail(tt.email), tt.email)
	}
}
