package reporting

import (
	"github.com/shopspring/decimal"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

// Summarize reduz as linhas de estatísticas a um resumo único. Receita é
// somada como decimal; CTR e CPM são derivados apenas quando há impressões.
//
// Caso degenerado: a API às vezes devolve zero linhas mas preenche os
// agregados no nível superior da resposta; nesse caso eles valem verbatim
// como resumo.
func Summarize(stats *domain.StatsResponse) domain.Summary {
	if stats == nil {
		return domain.Summary{Revenue: decimal.Zero}
	}

	if len(stats.Items) == 0 {
		return domain.Summary{
			Revenue:    stats.Revenue,
			Impression: stats.Impression,
			Clicks:     stats.Clicks,
			CTR:        stats.CTR,
			CPM:        stats.CPM,
		}
	}

	summary := domain.Summary{Revenue: decimal.Zero}

	for _, row := range stats.Items {
		summary.Revenue = summary.Revenue.Add(row.Revenue)
		summary.Impression += row.Impression
		summary.Clicks += row.Clicks
	}

	summary.CTR = deriveCTR(summary.Clicks, summary.Impression)
	summary.CPM = deriveCPM(summary.Revenue, summary.Impression)

	return summary
}

// deriveCTR calcula clicks/impressões*100, ou 0 sem impressões.
func deriveCTR(clicks, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}
	return float64(clicks) / float64(impressions) * 100
}

// deriveCPM calcula receita/impressões*1000, ou 0 sem impressões.
func deriveCPM(revenue decimal.Decimal, impressions int64) float64 {
	if impressions <= 0 {
		return 0
	}

	cpm, _ := revenue.
		Div(decimal.NewFromInt(impressions)).
		Mul(decimal.NewFromInt(1000)).
		Float64()

	return cpm
}
