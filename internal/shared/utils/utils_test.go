package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSplitTags(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{name: "trims and drops empties", input: "AI, ,Tech,", want: []string{"AI", "Tech"}},
		{name: "plain list", input: "Politik,Ekonomi", want: []string{"Politik", "Ekonomi"}},
		{name: "surrounding whitespace", input: "  Bola ,  Liga 1  ", want: []string{"Bola", "Liga 1"}},
		{name: "empty input yields empty slice", input: "", want: []string{}},
		{name: "only separators yields empty slice", input: ", , ,", want: []string{}},
		{name: "single tag", input: "Teknologi", want: []string{"Teknologi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitTags(tt.input)
			assert.Equal(t, tt.want, got)
			// Never [""] for an empty field.
			assert.NotContains(t, got, "")
		})
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID(uuid.New().String()))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID("123e4567e89b12d3a456426614174000"))
}

func TestParseStringToUUID(t *testing.T) {
	id := uuid.New()
	assert.Equal(t, id, ParseStringToUUID(id.String()))
	assert.Equal(t, uuid.Nil, ParseStringToUUID("garbage"))
	assert.Equal(t, uuid.Nil, ParseStringToUUID(""))
}
