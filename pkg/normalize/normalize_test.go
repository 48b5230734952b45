package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "strips legal form and honorific",
			input: "Real Valladolid CF",
			want:  "valladolid",
		},
		{
			name:  "strips diacritics",
			input: "Atlético de Madrid",
			want:  "de madrid",
		},
		{
			name:  "plain name unchanged",
			input: "Celta de Vigo",
			want:  "celta de vigo",
		},
		{
			name:  "tokens at both edges",
			input: "CD Mirandés SD",
			want:  "mirandes",
		},
		{
			name:  "collapses whitespace",
			input: "  Racing   Santander ",
			want:  "racing santander",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.input))
		})
	}
}

func TestKeyDeterministic(t *testing.T) {
	assert.Equal(t, Key("Real Valladolid CF"), Key("Real Valladolid CF"))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("Real Valladolid CF", "Valladolid"))
	assert.True(t, Equal("Atlético Osasuna", "Atletico Osasuna"))
	assert.False(t, Equal("Valladolid", "Villarreal"))
}
