package handler

import (
	"context"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Pinger verifica se a dependência está alcançável.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthcheckHandler responde ao liveness probe.
func HealthcheckHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		err := json.NewEncoder(w).Encode(map[string]string{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
		if err != nil {
			logrus.WithError(err).Warn("Erro ao responder healthcheck")
		}
	})
}

// ReadinessHandler responde ao readiness probe checando o banco.
func ReadinessHandler(db Pinger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.Ping(ctx); err != nil {
			logrus.WithError(err).Warn("Readiness reprovado, banco inalcançável")
			w.WriteHeader(http.StatusServiceUnavailable)

			if encErr := json.NewEncoder(w).Encode(map[string]string{"status": "unavailable"}); encErr != nil {
				logrus.WithError(encErr).Warn("Erro ao responder readiness")
			}
			return
		}

		if err := json.NewEncoder(w).Encode(map[string]string{"status": "ready"}); err != nil {
			logrus.WithError(err).Warn("Erro ao responder readiness")
		}
	})
}
