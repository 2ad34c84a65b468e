package adsterra

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/integrator/adsterra/adsterraclient"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
	"github.com/tonxmedia/adsterra-dashboard-bot/pkg/metrics"
)

// Integrator é a visão que o restante do bot tem da API da Adsterra.
type Integrator interface {
	GetStats(ctx context.Context, params adsterraclient.StatsParams) (*domain.StatsResponse, error)
	GetPlacements(ctx context.Context, domainID int64) []domain.Placement
}

type AdsterraIntegrator struct {
	cfg    *config.Config
	Client adsterraclient.Client
}

func New(cfg *config.Config, client adsterraclient.Client) *AdsterraIntegrator {
	return &AdsterraIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

// GetStats busca as linhas de estatísticas para os filtros informados.
// Falhas de rede, timeout e status não-200 chegam aqui como erro e são
// tratadas pelo chamador como falha de busca, sem retry.
func (s *AdsterraIntegrator) GetStats(ctx context.Context, params adsterraclient.StatsParams) (*domain.StatsResponse, error) {
	stats, err := s.Client.GetStats(ctx, params)
	if err != nil {
		metrics.UpstreamFailures.Inc()
		logrus.WithError(err).WithFields(logrus.Fields{
			"start_date": params.StartDate,
			"end_date":   params.EndDate,
			"group_by":   params.GroupBy,
		}).Error("stats: falha ao buscar estatísticas na Adsterra")
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"rows":     len(stats.Items),
		"group_by": params.GroupBy,
	}).Debug("stats: estatísticas recebidas da Adsterra")

	return stats, nil
}

// GetPlacements lista os placements de um domínio. Qualquer falha vira uma
// lista vazia: o menu de placements trata ausência e erro do mesmo jeito.
func (s *AdsterraIntegrator) GetPlacements(ctx context.Context, domainID int64) []domain.Placement {
	placements, err := s.Client.GetPlacements(ctx, domainID)
	if err != nil {
		logrus.WithError(err).WithField("domain_id", domainID).
			Warn("stats: falha ao listar placements, seguindo com lista vazia")
		return nil
	}

	return placements
}
