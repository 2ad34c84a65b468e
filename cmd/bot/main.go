package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/database/postgres"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/integrator/adsterra"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/integrator/adsterra/adsterraclient"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/repository"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/transport/telegram"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/api"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/conversation"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/scheduler"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/usecases/authenticating"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/usecases/reporting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go watchShutdownSignal(cancel)

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	sessionRepo := repository.NewSessionRepository(pgConn)
	filterRepo := repository.NewFilterRepository(pgConn)

	authenticator := authenticating.NewService(sessionRepo, cfg)

	adsterraClient := adsterraclient.NewClient(cfg)
	adsterraIntegrator := adsterra.New(cfg, adsterraClient)

	telegramClient := telegram.NewClient(cfg)

	reporter := reporting.NewService(cfg, adsterraIntegrator, filterRepo, telegramClient)

	engine := conversation.NewEngine(
		cfg,
		authenticator,
		filterRepo,
		adsterraIntegrator,
		reporter,
		telegramClient,
	)

	sessionCleanupService := scheduler.NewSessionCleanupService(sessionRepo, cfg)
	if err := sessionCleanupService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de limpeza de sessões")
	} else {
		logrus.Info("Agendador de limpeza de sessões iniciado com sucesso")
	}

	poller := telegram.NewPoller(telegramClient, engine)
	go poller.Run(ctx)

	server, err := api.New(cfg, pgConn, sessionCleanupService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func watchShutdownSignal(cancel context.CancelFunc) {
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	<-done
	logrus.Info("Sinal de interrupção recebido")
	cancel()
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
