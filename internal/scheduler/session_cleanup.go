// Package scheduler contém os serviços de agendamento de manutenção.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/repository"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
)

// SessionCleanupConfig representa a configuração do agendador de limpeza de
// sessões ociosas.
type SessionCleanupConfig struct {
	CronSchedule string
	MaxIdleDays  int
	Enabled      bool
}

// SessionCleanupService remove periodicamente sessões sem atividade além do
// limite configurado. Quem perder a sessão volta pelo /start.
type SessionCleanupService struct {
	scheduler           *gocron.Scheduler
	config              SessionCleanupConfig
	sessionRepo         repository.SessionRepository
	cleanupRunning      bool
	cleanupMutex        sync.Mutex
	lastRunStartedAt    time.Time
	lastRunCompletedAt  time.Time
	lastRemovedSessions int64
}

func NewSessionCleanupService(
	sessionRepo repository.SessionRepository,
	appConfig *config.Config,
) *SessionCleanupService {
	cleanupConfig := SessionCleanupConfig{
		CronSchedule: appConfig.SessionCleanup.CronSchedule,
		MaxIdleDays:  appConfig.SessionCleanup.MaxIdleDays,
		Enabled:      appConfig.SessionCleanup.Enabled,
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule":   cleanupConfig.CronSchedule,
		"max_idle_days":   cleanupConfig.MaxIdleDays,
		"cleanup_enabled": cleanupConfig.Enabled,
	}).Info("Configuração do agendador de limpeza de sessões carregada")

	return &SessionCleanupService{
		scheduler:   scheduler,
		config:      cleanupConfig,
		sessionRepo: sessionRepo,
	}
}

// Start inicia o agendador
func (s *SessionCleanupService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Limpeza de sessões desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de limpeza de sessões")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.cleanupIdleSessions(ctx)
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar limpeza de sessões: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de limpeza de sessões")
		s.scheduler.Stop()
	}()

	return nil
}

// cleanupIdleSessions apaga as sessões cuja última atividade é mais antiga
// que o limite. Execuções concorrentes são ignoradas.
func (s *SessionCleanupService) cleanupIdleSessions(ctx context.Context) {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Info("Limpeza de sessões já em andamento, ignorando")
		return
	}
	startTime := time.Now()
	s.cleanupRunning = true
	s.lastRunStartedAt = startTime
	s.cleanupMutex.Unlock()

	defer func() {
		s.cleanupMutex.Lock()
		s.cleanupRunning = false
		s.cleanupMutex.Unlock()
	}()

	cutoff := time.Now().AddDate(0, 0, -s.config.MaxIdleDays)

	logrus.WithFields(logrus.Fields{
		"cutoff":        cutoff.Format(time.DateOnly),
		"max_idle_days": s.config.MaxIdleDays,
	}).Info("Iniciando limpeza de sessões ociosas")

	removed, err := s.sessionRepo.DeleteIdleSince(ctx, cutoff)
	if err != nil {
		logrus.WithError(err).Error("Erro ao remover sessões ociosas")
		return
	}

	s.cleanupMutex.Lock()
	s.lastRemovedSessions = removed
	s.lastRunCompletedAt = time.Now()
	s.cleanupMutex.Unlock()

	logrus.WithFields(logrus.Fields{
		"removed":  removed,
		"duration": time.Since(startTime).String(),
	}).Info("Limpeza de sessões concluída")
}

// TriggerManualCleanup dispara manualmente uma rodada de limpeza. A rodada
// corre em segundo plano com contexto próprio, desacoplado da requisição que
// a disparou.
func (s *SessionCleanupService) TriggerManualCleanup() {
	s.cleanupMutex.Lock()
	if s.cleanupRunning {
		s.cleanupMutex.Unlock()
		logrus.Info("Limpeza de sessões já em andamento, ignorando solicitação manual")
		return
	}
	s.cleanupMutex.Unlock()

	logrus.Info("Iniciando limpeza manual de sessões")
	go s.cleanupIdleSessions(context.Background())
}

// GetStatus retorna o status atual do agendador
func (s *SessionCleanupService) GetStatus() map[string]any {
	s.cleanupMutex.Lock()
	startedAt := s.lastRunStartedAt
	completedAt := s.lastRunCompletedAt
	removed := s.lastRemovedSessions
	s.cleanupMutex.Unlock()

	return map[string]any{
		"cleanup_enabled":       s.config.Enabled,
		"cleanup_cron":          s.config.CronSchedule,
		"cleanup_max_idle_days": s.config.MaxIdleDays,
		"last_run_started_at":   startedAt,
		"last_run_completed_at": completedAt,
		"last_removed_sessions": removed,
	}
}
