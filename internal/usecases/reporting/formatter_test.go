package reporting

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

func TestFormatSummary(t *testing.T) {
	summary := domain.Summary{
		Revenue:    decimal.RequireFromString("5.5"),
		Impression: 1234567,
		Clicks:     8901,
		CTR:        1.0,
		CPM:        5.5,
	}

	text := FormatSummary(summary, "2024-03-01", "2024-03-07")

	assert.Contains(t, text, "💵 Earnings: $5.500")
	assert.Contains(t, text, "👀 Impressions: 1,234,567")
	assert.Contains(t, text, "🖱 Clicks: 8,901")
	assert.Contains(t, text, "🎯 CTR: 1.00%")
	assert.Contains(t, text, "📊 CPM: $5.500")
	assert.Contains(t, text, "📆 2024-03-01 to 2024-03-07")
}

func TestFormatSummaryWithoutPeriodFooter(t *testing.T) {
	summary := domain.Summary{Revenue: decimal.Zero}

	assert.NotContains(t, FormatSummary(summary, "", ""), "📆")
	assert.NotContains(t, FormatSummary(summary, "2024-03-01", ""), "📆")
}

func TestFormatDetail(t *testing.T) {
	tests := []struct {
		name     string
		rows     []domain.StatRow
		groupBy  string
		validate func(t *testing.T, text string)
	}{
		{
			name:    "Sem linhas vira a sentinela de vazio",
			rows:    nil,
			groupBy: domain.GroupByDate,
			validate: func(t *testing.T, text string) {
				assert.Equal(t, NoDataText, text)
			},
		},
		{
			name: "Agrupado por data, cabeçalho é a data e CTR e CPM vêm dos números da linha",
			rows: []domain.StatRow{
				{
					Date:       "2024-03-15",
					Impression: 1000,
					Clicks:     10,
					Revenue:    decimal.RequireFromString("5.5"),
					CTR:        99.9,
					CPM:        99.9,
				},
			},
			groupBy: domain.GroupByDate,
			validate: func(t *testing.T, text string) {
				assert.Contains(t, text, "📅 2024-03-15")
				assert.Contains(t, text, "Impressions: 1,000")
				assert.Contains(t, text, "Clicks: 10")
				assert.Contains(t, text, "CTR: 1.00%")
				assert.Contains(t, text, "Earnings: $5.500")
				assert.Contains(t, text, "CPM: $5.500")
			},
		},
		{
			name: "Agrupado por país, cabeçalho é o país",
			rows: []domain.StatRow{
				{Country: "ID", Impression: 100, Clicks: 1, Revenue: decimal.RequireFromString("0.100")},
			},
			groupBy: domain.GroupByCountry,
			validate: func(t *testing.T, text string) {
				assert.Contains(t, text, "🌍 ID")
				assert.NotContains(t, text, "📅")
			},
		},
		{
			name: "Cabeçalho ausente vira N/A",
			rows: []domain.StatRow{
				{Impression: 100, Clicks: 1, Revenue: decimal.Zero},
			},
			groupBy: domain.GroupByDate,
			validate: func(t *testing.T, text string) {
				assert.Contains(t, text, "📅 N/A")
			},
		},
		{
			name: "Linha sem impressões mantém CTR e CPM informados pela API",
			rows: []domain.StatRow{
				{Date: "2024-03-15", Impression: 0, Clicks: 0, Revenue: decimal.Zero, CTR: 2.5, CPM: 1.25},
			},
			groupBy: domain.GroupByDate,
			validate: func(t *testing.T, text string) {
				assert.Contains(t, text, "CTR: 2.50%")
				assert.Contains(t, text, "CPM: $1.250")
			},
		},
		{
			name: "Linhas aparecem na ordem em que a API devolveu",
			rows: []domain.StatRow{
				{Date: "2024-03-14", Revenue: decimal.Zero},
				{Date: "2024-03-13", Revenue: decimal.Zero},
				{Date: "2024-03-15", Revenue: decimal.Zero},
			},
			groupBy: domain.GroupByDate,
			validate: func(t *testing.T, text string) {
				first := strings.Index(text, "2024-03-14")
				second := strings.Index(text, "2024-03-13")
				third := strings.Index(text, "2024-03-15")

				assert.True(t, first < second)
				assert.True(t, second < third)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, FormatDetail(tt.rows, tt.groupBy))
		})
	}
}
