package reporting

import (
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

// NoDataText é a sentinela exibida quando a consulta não devolve linhas.
const NoDataText = "No data available for the selected filters."

// FormatSummary renderiza o resumo: receita com 3 casas, impressões e clicks
// com separador de milhar, CTR com 2 casas e CPM com 3. O rodapé com o
// período só aparece quando as duas datas foram informadas.
func FormatSummary(summary domain.Summary, startDate, endDate string) string {
	text := fmt.Sprintf(
		"💵 Earnings: $%s\n"+
			"👀 Impressions: %s\n"+
			"🖱 Clicks: %s\n"+
			"🎯 CTR: %.2f%%\n"+
			"📊 CPM: $%.3f",
		summary.Revenue.StringFixed(3),
		humanize.Comma(summary.Impression),
		humanize.Comma(summary.Clicks),
		summary.CTR,
		summary.CPM,
	)

	if startDate != "" && endDate != "" {
		text += fmt.Sprintf("\n\n📆 %s to %s", startDate, endDate)
	}

	return text
}

// FormatDetail renderiza um bloco por linha de estatística, na ordem em que a
// API devolveu, sem reordenação. O cabeçalho do bloco é a data ou o país,
// conforme a dimensão de agrupamento.
func FormatDetail(rows []domain.StatRow, groupBy string) string {
	if len(rows) == 0 {
		return NoDataText
	}

	var message strings.Builder

	for _, row := range rows {
		icon := "📅"
		header := row.Date

		if groupBy == domain.GroupByCountry {
			icon = "🌍"
			header = row.Country
		}
		if header == "" {
			header = "N/A"
		}

		// CTR e CPM são rederivados dos números da linha quando há
		// impressões; linhas sem impressões mantêm o que a API informou.
		ctr := row.CTR
		cpm := row.CPM
		if row.Impression > 0 {
			ctr = deriveCTR(row.Clicks, row.Impression)
			cpm = deriveCPM(row.Revenue, row.Impression)
		}

		message.WriteString(fmt.Sprintf(
			"\n%s %s\n"+
				"Impressions: %s\n"+
				"Clicks: %s\n"+
				"CTR: %.2f%%\n"+
				"Earnings: $%s\n"+
				"CPM: $%.3f\n",
			icon,
			header,
			humanize.Comma(row.Impression),
			humanize.Comma(row.Clicks),
			ctr,
			row.Revenue.StringFixed(3),
			cpm,
		))
	}

	return message.String()
}
