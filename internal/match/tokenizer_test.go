package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{"lowercases", "BATTERY Range", []string{"battery", "range"}},
		{"strips punctuation", "waterproof?!", []string{"waterproof"}},
		{"drops stop words", "what is the battery range", []string{"battery", "range"}},
		{"drops short tokens", "go up to it", []string{}},
		{"empty input", "", []string{}},
		{"keeps hyphenated words", "money-back guarantee", []string{"money-back", "guarantee"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.input))
		})
	}
}

func TestSimilar(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"speed", "fast", true},
		{"fast", "speed", true}, // symmetric
		{"fast", "mph", true},   // both in the same list
		{"battery", "charging", true},
		{"return", "refund", true},
		{"speed", "battery", false},
		{"helmet", "warranty", false},
		{"same", "same", true},
	}
	for _, tt := range tests {
		t.Run(tt.a+"/"+tt.b, func(t *testing.T) {
			assert.Equal(t, tt.want, Similar(tt.a, tt.b))
		})
	}
}
