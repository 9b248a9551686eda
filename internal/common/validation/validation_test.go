package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollector(t *testing.T) {
	c := NewCollector()
	c.RequireNonEmpty("location", "  ")
	c.OneOf("remote", "sometimes", []string{"any", "remote_only"})
	c.OneOf("level", "senior", []string{"junior", "senior"})

	result := c.Result()
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)

	details := result.Details()
	assert.Contains(t, details[0], "location")
	assert.Contains(t, details[1], "remote")
	assert.Contains(t, details[1], "must be one of")
}

func TestCollector_Valid(t *testing.T) {
	c := NewCollector()
	c.RequireNonEmpty("location", "Milan")
	c.OneOf("remote", "any", []string{"any", "remote_only"})
	// Empty optional enum values pass.
	c.OneOf("level", "", []string{"junior", "senior"})

	result := c.Result()
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
}

func TestParseCSVSet(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "whitespace only", raw: "  ", want: nil},
		{name: "single value", raw: "full-time", want: []string{"full-time"}},
		{name: "trims and splits", raw: " full-time , part-time ", want: []string{"full-time", "part-time"}},
		{name: "drops duplicates", raw: "senior,senior,junior", want: []string{"senior", "junior"}},
		{name: "drops empty segments", raw: "full-time,,part-time,", want: []string{"full-time", "part-time"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCSVSet(tt.raw))
		})
	}
}
