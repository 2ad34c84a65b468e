package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contadores de operação do bot, expostos em /metrics pelo servidor HTTP.
var (
	EventsHandled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_events_handled_total",
		Help: "Total de updates do Telegram processados, por tipo de evento.",
	}, []string{"type"})

	ReportsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_reports_generated_total",
		Help: "Total de relatórios gerados, por resultado.",
	}, []string{"status"})

	UpstreamFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "bot_upstream_fetch_failures_total",
		Help: "Total de falhas ao consultar a API da Adsterra.",
	})
)
