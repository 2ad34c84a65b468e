package utils

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrInvalidDateRange indica texto de intervalo fora do formato
// "YYYY-MM-DD to YYYY-MM-DD" ou com data inicial posterior à final.
var ErrInvalidDateRange = errors.New("intervalo de datas inválido")

const rangeSeparator = " to "

// ParseDate interpreta uma data no formato YYYY-MM-DD. Texto vazio vira o
// zero de time.Time, tratado pelos chamadores como "sem data".
func ParseDate(dateStr string) (time.Time, error) {
	if dateStr == "" {
		return time.Time{}, nil
	}

	return time.Parse(time.DateOnly, dateStr)
}

// ParseDateRange interpreta o texto livre enviado pelo usuário no formato
// "YYYY-MM-DD to YYYY-MM-DD", com espaços extras tolerados em volta das datas.
func ParseDateRange(text string) (time.Time, time.Time, error) {
	if !strings.Contains(text, rangeSeparator) {
		return time.Time{}, time.Time{}, errors.Wrap(ErrInvalidDateRange, "separador \" to \" ausente")
	}

	parts := strings.SplitN(text, rangeSeparator, 2)

	start, err := time.Parse(time.DateOnly, strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(ErrInvalidDateRange, "data inicial ilegível")
	}

	end, err := time.Parse(time.DateOnly, strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, time.Time{}, errors.Wrap(ErrInvalidDateRange, "data final ilegível")
	}

	if start.After(end) {
		return time.Time{}, time.Time{}, errors.Wrap(ErrInvalidDateRange, "data inicial posterior à final")
	}

	return start, end, nil
}
