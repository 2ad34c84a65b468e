package authenticating

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/repository"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

type Authenticator interface {
	Login(ctx context.Context, userID int64, credentials string) (*domain.Session, error)
	Logout(ctx context.Context, userID int64) error
	CurrentSession(ctx context.Context, userID int64) (*domain.Session, error)
	TouchActivity(ctx context.Context, userID int64, at time.Time)
}

type Service struct {
	sessionRepo repository.SessionRepository
	cfg         *config.Config
	now         func() time.Time
}

func NewService(sessionRepo repository.SessionRepository, cfg *config.Config) Authenticator {
	return &Service{
		sessionRepo: sessionRepo,
		cfg:         cfg,
		now:         time.Now,
	}
}

// ParseCredentials separa "username|password" no primeiro pipe, com trim nos
// dois lados. Texto sem pipe é erro de formato, não de credencial.
func ParseCredentials(text string) (string, string, error) {
	if !strings.Contains(text, "|") {
		return "", "", ErrInvalidFormat
	}

	parts := strings.SplitN(text, "|", 2)
	username := strings.TrimSpace(parts[0])
	password := strings.TrimSpace(parts[1])

	if username == "" {
		return "", "", ErrInvalidFormat
	}

	return username, password, nil
}

// Login valida as credenciais contra a lista permitida e grava a sessão.
// Um novo login do mesmo usuário sobrescreve a sessão anterior.
func (s *Service) Login(ctx context.Context, userID int64, credentials string) (*domain.Session, error) {
	username, password, err := ParseCredentials(credentials)
	if err != nil {
		return nil, err
	}

	expected, ok := s.cfg.AllowedUsers[username]
	if !ok || expected != password {
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,
			"username": username,
		}).Warn("auth: tentativa de login com credenciais inválidas")
		return nil, ErrInvalidCredentials
	}

	now := s.now()
	session := &domain.Session{
		UserID:       userID,
		Username:     username,
		LoginTime:    now,
		LastActivity: now,
	}

	if err := s.sessionRepo.Upsert(ctx, session); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  userID,
		"username": username,
	}).Info("auth: login realizado com sucesso")

	return session, nil
}

// Logout remove a sessão do usuário, se existir.
func (s *Service) Logout(ctx context.Context, userID int64) error {
	if err := s.sessionRepo.Delete(ctx, userID); err != nil {
		return err
	}

	logrus.WithField("user_id", userID).Info("auth: sessão encerrada")
	return nil
}

// CurrentSession retorna a sessão ativa do usuário, ou nil quando deslogado.
func (s *Service) CurrentSession(ctx context.Context, userID int64) (*domain.Session, error) {
	return s.sessionRepo.Get(ctx, userID)
}

// TouchActivity registra atividade do usuário. Falhas aqui nunca interrompem
// o atendimento do evento; apenas geram log.
func (s *Service) TouchActivity(ctx context.Context, userID int64, at time.Time) {
	if err := s.sessionRepo.Touch(ctx, userID, at); err != nil {
		logrus.WithError(err).WithField("user_id", userID).
			Warn("auth: falha ao registrar atividade da sessão")
	}
}
