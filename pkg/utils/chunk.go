package utils

import "strings"

// SplitMessage divide text em pedaços com no máximo limit caracteres cada um.
// A iteração é feita por runas, então um caractere multibyte nunca é cortado
// ao meio. A concatenação dos pedaços reproduz o texto original.
func SplitMessage(text string, limit int) []string {
	if text == "" {
		return nil
	}

	if limit <= 0 || len(text) <= limit {
		return []string{text}
	}

	var parts []string
	var chunk strings.Builder
	count := 0

	for _, r := range text {
		if count == limit {
			parts = append(parts, chunk.String())
			chunk.Reset()
			count = 0
		}
		chunk.WriteRune(r)
		count++
	}

	if chunk.Len() > 0 {
		parts = append(parts, chunk.String())
	}

	return parts
}
