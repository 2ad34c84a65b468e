// Package api expõe o servidor de operação: probes de saúde, métricas e
// disparo manual de jobs de manutenção. O atendimento ao usuário acontece
// pelo poller do Telegram, não por aqui.
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/database/postgres"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/api/handler"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/api/handler/router"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/scheduler"
	"github.com/tonxmedia/adsterra-dashboard-bot/pkg/middleware"
)

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	db postgres.Conn,
	sessionCleanupService *scheduler.SessionCleanupService,
) (*Server, error) {
	maintenanceServices := handler.MaintenanceServices{
		SessionCleanupService: sessionCleanupService,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck(db)...),
		router.WithRoutes(handler.Metrics()...),
		router.WithRoutes(handler.Maintenance(maintenanceServices)...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Run serve até o contexto ser cancelado e então desliga graciosamente.
func (s Server) Run(ctx context.Context) error {
	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor de operação iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Error("Erro durante a execução do servidor de operação")
		}
	}()

	<-ctx.Done()
	logrus.Info("Contexto de aplicação cancelado, desligando servidor de operação")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor de operação")
		return err
	}

	logrus.Info("Servidor de operação desligado com sucesso")
	return nil
}
