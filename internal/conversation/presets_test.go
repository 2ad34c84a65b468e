package conversation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestResolvePreset(t *testing.T) {
	// Sexta-feira, 15 de março de 2024
	today := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		preset    string
		wantStart string
		wantEnd   string
	}{
		{
			name:      "Hoje",
			preset:    PresetToday,
			wantStart: "2024-03-15",
			wantEnd:   "2024-03-15",
		},
		{
			name:      "Ontem",
			preset:    PresetYesterday,
			wantStart: "2024-03-14",
			wantEnd:   "2024-03-14",
		},
		{
			name:      "Últimos 7 dias incluem hoje",
			preset:    PresetLast7,
			wantStart: "2024-03-09",
			wantEnd:   "2024-03-15",
		},
		{
			name:      "Últimos 30 dias incluem hoje",
			preset:    PresetLast30,
			wantStart: "2024-02-15",
			wantEnd:   "2024-03-15",
		},
		{
			name:      "Este mês começa no dia primeiro",
			preset:    PresetThisMonth,
			wantStart: "2024-03-01",
			wantEnd:   "2024-03-15",
		},
		{
			name:      "Este ano começa em primeiro de janeiro",
			preset:    PresetThisYear,
			wantStart: "2024-01-01",
			wantEnd:   "2024-03-15",
		},
		{
			name:      "Preset desconhecido cai no dia corrente",
			preset:    "fortnight",
			wantStart: "2024-03-15",
			wantEnd:   "2024-03-15",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ResolvePreset(tt.preset, today)

			assert.Equal(t, tt.wantStart, start.Format(time.DateOnly))
			assert.Equal(t, tt.wantEnd, end.Format(time.DateOnly))
		})
	}
}

func TestResolvePresetAcrossYearBoundary(t *testing.T) {
	today := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)

	start, end := ResolvePreset(PresetLast7, today)
	assert.Equal(t, "2023-12-27", start.Format(time.DateOnly))
	assert.Equal(t, "2024-01-02", end.Format(time.DateOnly))

	start, _ = ResolvePreset(PresetThisYear, today)
	assert.Equal(t, "2024-01-01", start.Format(time.DateOnly))
}
