package repository

import (
	"context"
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/database/postgres"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

const userFiltersTable = "user_filters"

type FilterRepository interface {
	Get(ctx context.Context, userID int64) (*domain.FilterSet, error)
	Patch(ctx context.Context, userID int64, patch domain.FilterPatch) (*domain.FilterSet, error)
}

type filterRepository struct {
	conn postgres.Conn
}

func NewFilterRepository(conn postgres.Conn) FilterRepository {
	return &filterRepository{
		conn: conn,
	}
}

// Get retorna os filtros do usuário, ou nil quando ele nunca gravou nenhum.
func (r *filterRepository) Get(ctx context.Context, userID int64) (*domain.FilterSet, error) {
	queryBuilder := squirrel.
		Select("user_id", "start_date", "end_date", "domain", "placement", "group_by").
		From(userFiltersTable).
		Where(squirrel.Eq{"user_id": userID}).
		PlaceholderFormat(squirrel.Dollar)

	filtersSQL, filtersArgs, err := queryBuilder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir consulta de filtros")
	}

	filters, err := scanFilterSet(r.conn.QueryRow(ctx, filtersSQL, filtersArgs...))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar filtros")
	}

	return filters, nil
}

// Patch aplica uma atualização parcial sobre os filtros armazenados, criando o
// registro com os padrões quando ainda não existe. A leitura e a escrita
// acontecem na mesma transação, com lock de linha, para que dois eventos
// simultâneos do mesmo usuário não percam atualizações.
func (r *filterRepository) Patch(ctx context.Context, userID int64, patch domain.FilterPatch) (*domain.FilterSet, error) {
	var merged *domain.FilterSet

	err := r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		queryBuilder := squirrel.
			Select("user_id", "start_date", "end_date", "domain", "placement", "group_by").
			From(userFiltersTable).
			Where(squirrel.Eq{"user_id": userID}).
			Suffix("FOR UPDATE").
			PlaceholderFormat(squirrel.Dollar)

		selectSQL, selectArgs, err := queryBuilder.ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir consulta de filtros")
		}

		current, err := scanFilterSet(tx.QueryRowContext(ctx, selectSQL, selectArgs...))
		if err == sql.ErrNoRows {
			current = domain.NewFilterSet(userID)
		} else if err != nil {
			return errors.Wrap(err, "erro ao consultar filtros para atualização")
		}

		patch.Apply(current)

		upsertBuilder := squirrel.
			Insert(userFiltersTable).
			Columns("user_id", "start_date", "end_date", "domain", "placement", "group_by").
			Values(current.UserID, current.StartDate, current.EndDate, current.Domain, current.Placement, current.GroupBy).
			Suffix(`ON CONFLICT (user_id) DO UPDATE SET
				start_date = EXCLUDED.start_date,
				end_date = EXCLUDED.end_date,
				domain = EXCLUDED.domain,
				placement = EXCLUDED.placement,
				group_by = EXCLUDED.group_by`).
			PlaceholderFormat(squirrel.Dollar)

		upsertSQL, upsertArgs, err := upsertBuilder.ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir upsert de filtros")
		}

		if _, err := tx.ExecContext(ctx, upsertSQL, upsertArgs...); err != nil {
			return errors.Wrap(err, "erro ao gravar filtros")
		}

		merged = current
		return nil
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFilterSet(row rowScanner) (*domain.FilterSet, error) {
	var (
		filters   domain.FilterSet
		startDate sql.NullString
		endDate   sql.NullString
		domainID  sql.NullInt64
		placement sql.NullInt64
	)

	err := row.Scan(
		&filters.UserID,
		&startDate,
		&endDate,
		&domainID,
		&placement,
		&filters.GroupBy,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		filters.StartDate = &startDate.String
	}
	if endDate.Valid {
		filters.EndDate = &endDate.String
	}
	if domainID.Valid {
		filters.Domain = &domainID.Int64
	}
	if placement.Valid {
		filters.Placement = &placement.Int64
	}

	if filters.GroupBy == "" {
		filters.GroupBy = domain.GroupByDate
	}

	return &filters, nil
}
