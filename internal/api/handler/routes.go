package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/api/handler/router"
)

func Healthcheck(db Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
		{
			Path:    "/readiness",
			Method:  http.MethodGet,
			Handler: ReadinessHandler(db),
		},
	}
}

func Metrics() []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: promhttp.Handler(),
		},
	}
}

func Maintenance(services MaintenanceServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/maintenance/:type/run",
			Method:  http.MethodPost,
			Handler: RunMaintenanceJob(services),
		},
		{
			Path:    "/v1/maintenance/status",
			Method:  http.MethodGet,
			Handler: GetMaintenanceStatus(services),
		},
	}
}
