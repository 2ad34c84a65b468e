package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitMessage(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		limit     int
		wantParts int
	}{
		{
			name:      "Texto vazio não gera partes",
			text:      "",
			limit:     4000,
			wantParts: 0,
		},
		{
			name:      "Texto dentro do limite fica inteiro",
			text:      strings.Repeat("a", 4000),
			limit:     4000,
			wantParts: 1,
		},
		{
			name:      "Texto de 8500 caracteres vira três partes",
			text:      strings.Repeat("a", 8500),
			limit:     4000,
			wantParts: 3,
		},
		{
			name:      "Um caractere além do limite vira duas partes",
			text:      strings.Repeat("a", 4001),
			limit:     4000,
			wantParts: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := SplitMessage(tt.text, tt.limit)

			assert.Len(t, parts, tt.wantParts)
			assert.Equal(t, tt.text, strings.Join(parts, ""))

			for _, part := range parts {
				assert.LessOrEqual(t, len([]rune(part)), tt.limit)
			}
		})
	}
}

func TestSplitMessageDoesNotCutMultibyteRunes(t *testing.T) {
	text := strings.Repeat("é", 10)

	parts := SplitMessage(text, 3)

	assert.Equal(t, text, strings.Join(parts, ""))
	for _, part := range parts {
		assert.True(t, strings.HasPrefix(part, "é"))
		assert.LessOrEqual(t, len([]rune(part)), 3)
	}
}
