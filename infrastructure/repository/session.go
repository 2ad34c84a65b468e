package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/database/postgres"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

const sessionsTable = "sessions"

type SessionRepository interface {
	Get(ctx context.Context, userID int64) (*domain.Session, error)
	Upsert(ctx context.Context, session *domain.Session) error
	Touch(ctx context.Context, userID int64, at time.Time) error
	Delete(ctx context.Context, userID int64) error
	DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error)
}

type sessionRepository struct {
	conn postgres.Conn
}

func NewSessionRepository(conn postgres.Conn) SessionRepository {
	return &sessionRepository{
		conn: conn,
	}
}

// Get retorna a sessão do usuário, ou nil quando ele não está logado.
func (r *sessionRepository) Get(ctx context.Context, userID int64) (*domain.Session, error) {
	queryBuilder := squirrel.
		Select("user_id", "username", "login_time", "last_activity").
		From(sessionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	sessionSQL, sessionArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta de sessão")
	}

	var session domain.Session
	err = r.conn.QueryRow(ctx, sessionSQL, sessionArgs...).Scan(
		&session.UserID,
		&session.Username,
		&session.LoginTime,
		&session.LastActivity,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar sessão")
	}

	return &session, nil
}

// Upsert grava a sessão, sobrescrevendo qualquer login anterior do usuário.
func (r *sessionRepository) Upsert(ctx context.Context, session *domain.Session) error {
	queryBuilder := squirrel.
		Insert(sessionsTable).
		Columns("user_id", "username", "login_time", "last_activity").
		Values(session.UserID, session.Username, session.LoginTime, session.LastActivity).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			username = EXCLUDED.username,
			login_time = EXCLUDED.login_time,
			last_activity = EXCLUDED.last_activity`).
		PlaceholderFormat(squirrel.Dollar)

	sessionSQL, sessionArgs, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir upsert de sessão")
	}

	_, err = r.conn.Exec(ctx, sessionSQL, sessionArgs...)
	if err != nil {
		return errors.Wrap(err, "erro ao gravar sessão")
	}

	return nil
}

// Touch atualiza o last_activity da sessão do usuário, se existir.
func (r *sessionRepository) Touch(ctx context.Context, userID int64, at time.Time) error {
	queryBuilder := squirrel.
		Update(sessionsTable).
		Set("last_activity", at).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	touchSQL, touchArgs, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir atualização de atividade")
	}

	_, err = r.conn.Exec(ctx, touchSQL, touchArgs...)
	if err != nil {
		return errors.Wrap(err, "erro ao atualizar atividade da sessão")
	}

	return nil
}

func (r *sessionRepository) Delete(ctx context.Context, userID int64) error {
	queryBuilder := squirrel.
		Delete(sessionsTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	deleteSQL, deleteArgs, err := queryBuilder.ToSql()
	if err != nil {
		return errors.Wrap(err, "erro ao construir remoção de sessão")
	}

	_, err = r.conn.Exec(ctx, deleteSQL, deleteArgs...)
	if err != nil {
		return errors.Wrap(err, "erro ao remover sessão")
	}

	return nil
}

// DeleteIdleSince remove sessões sem atividade desde o instante informado e
// retorna quantas foram removidas. Usado pelo agendador de limpeza.
func (r *sessionRepository) DeleteIdleSince(ctx context.Context, cutoff time.Time) (int64, error) {
	queryBuilder := squirrel.
		Delete(sessionsTable).
		Where(squirrel.Lt{"last_activity": cutoff}).
		PlaceholderFormat(squirrel.Dollar)

	deleteSQL, deleteArgs, err := queryBuilder.ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir limpeza de sessões")
	}

	result, err := r.conn.Exec(ctx, deleteSQL, deleteArgs...)
	if err != nil {
		return 0, errors.Wrap(err, "erro ao limpar sessões ociosas")
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	return removed, nil
}
