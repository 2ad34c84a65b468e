package reporting

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

func TestSummarize(t *testing.T) {
	tests := []struct {
		name     string
		stats    *domain.StatsResponse
		validate func(t *testing.T, summary domain.Summary)
	}{
		{
			name:  "Resposta nula vira resumo zerado",
			stats: nil,
			validate: func(t *testing.T, summary domain.Summary) {
				assert.True(t, summary.Revenue.IsZero())
				assert.Zero(t, summary.Impression)
				assert.Zero(t, summary.Clicks)
				assert.Zero(t, summary.CTR)
				assert.Zero(t, summary.CPM)
			},
		},
		{
			name: "Sem linhas, os agregados de nível superior valem verbatim",
			stats: &domain.StatsResponse{
				Revenue:    decimal.RequireFromString("12.345"),
				Impression: 1000,
				Clicks:     10,
				CTR:        9.99,
				CPM:        7.77,
			},
			validate: func(t *testing.T, summary domain.Summary) {
				assert.Equal(t, "12.345", summary.Revenue.StringFixed(3))
				assert.Equal(t, int64(1000), summary.Impression)
				assert.Equal(t, int64(10), summary.Clicks)
				assert.Equal(t, 9.99, summary.CTR)
				assert.Equal(t, 7.77, summary.CPM)
			},
		},
		{
			name: "Linhas são somadas e CTR e CPM derivados dos totais",
			stats: &domain.StatsResponse{
				Items: []domain.StatRow{
					{Impression: 600, Clicks: 6, Revenue: decimal.RequireFromString("3.000")},
					{Impression: 400, Clicks: 4, Revenue: decimal.RequireFromString("2.500")},
				},
			},
			validate: func(t *testing.T, summary domain.Summary) {
				assert.Equal(t, "5.500", summary.Revenue.StringFixed(3))
				assert.Equal(t, int64(1000), summary.Impression)
				assert.Equal(t, int64(10), summary.Clicks)
				assert.InDelta(t, 1.00, summary.CTR, 0.0001)
				assert.InDelta(t, 5.500, summary.CPM, 0.0001)
			},
		},
		{
			name: "Sem impressões, CTR e CPM ficam em zero",
			stats: &domain.StatsResponse{
				Items: []domain.StatRow{
					{Impression: 0, Clicks: 0, Revenue: decimal.RequireFromString("1.000")},
				},
			},
			validate: func(t *testing.T, summary domain.Summary) {
				assert.Equal(t, "1.000", summary.Revenue.StringFixed(3))
				assert.Zero(t, summary.CTR)
				assert.Zero(t, summary.CPM)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.validate(t, Summarize(tt.stats))
		})
	}
}

// A soma tem de dar o mesmo resultado em qualquer ordem das linhas.
func TestSummarizeIsOrderIndependent(t *testing.T) {
	rows := []domain.StatRow{
		{Impression: 100, Clicks: 3, Revenue: decimal.RequireFromString("0.101")},
		{Impression: 250, Clicks: 1, Revenue: decimal.RequireFromString("0.033")},
		{Impression: 75, Clicks: 0, Revenue: decimal.RequireFromString("1.450")},
	}
	reversed := []domain.StatRow{rows[2], rows[1], rows[0]}

	a := Summarize(&domain.StatsResponse{Items: rows})
	b := Summarize(&domain.StatsResponse{Items: reversed})

	assert.True(t, a.Revenue.Equal(b.Revenue))
	assert.Equal(t, a.Impression, b.Impression)
	assert.Equal(t, a.Clicks, b.Clicks)
	assert.Equal(t, a.CTR, b.CTR)
	assert.Equal(t, a.CPM, b.CPM)
}
