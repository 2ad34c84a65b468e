package reporting

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/integrator/adsterra"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/integrator/adsterra/adsterraclient"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/repository"
	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/transport/telegram"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
	"github.com/tonxmedia/adsterra-dashboard-bot/pkg/metrics"
	"github.com/tonxmedia/adsterra-dashboard-bot/pkg/utils"
)

// MaxMessageLength é o limite de caracteres por mensagem enviada; relatórios
// maiores são divididos em partes enviadas em ordem.
const MaxMessageLength = 4000

const fetchFailedText = "⚠️ Failed to fetch data from Adsterra API"
const summaryHeader = "📈 *Adsterra Report Summary*\n\n"

// ErrFetchFailed indica que a consulta à Adsterra falhou ou voltou vazia.
// O usuário já foi avisado quando esse erro é retornado; não há retry.
var ErrFetchFailed = errors.New("falha ao buscar dados da Adsterra")

// Reporter gera e envia um relatório completo para um chat.
type Reporter interface {
	Generate(ctx context.Context, chatID, userID int64, startDate, endDate string) error
}

type Service struct {
	cfg        *config.Config
	stats      adsterra.Integrator
	filterRepo repository.FilterRepository
	messenger  telegram.Messenger
	now        func() time.Time
}

func NewService(
	cfg *config.Config,
	stats adsterra.Integrator,
	filterRepo repository.FilterRepository,
	messenger telegram.Messenger,
) *Service {
	return &Service{
		cfg:        cfg,
		stats:      stats,
		filterRepo: filterRepo,
		messenger:  messenger,
		now:        time.Now,
	}
}

// Generate roda o fluxo completo de relatório: resolve o período, consulta a
// Adsterra, agrega, formata e envia resumo + detalhe em partes. Datas
// explícitas têm precedência sobre o FilterSet; sem nenhuma das duas, o
// período é o dia corrente. Em falha de busca o usuário é avisado e nada
// mais é enviado.
func (s *Service) Generate(ctx context.Context, chatID, userID int64, startDate, endDate string) error {
	filters, err := s.filterRepo.Get(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).
			Warn("report: falha ao ler filtros, usando padrões")
	}
	if filters == nil {
		filters = domain.NewFilterSet(userID)
	}

	today := s.now().Format(time.DateOnly)
	if startDate == "" || endDate == "" {
		startDate = stringOr(filters.StartDate, today)
		endDate = stringOr(filters.EndDate, today)
	}

	start, err := utils.ParseDate(startDate)
	if err != nil {
		return errors.Wrapf(err, "data inicial ilegível: %q", startDate)
	}

	end, err := utils.ParseDate(endDate)
	if err != nil {
		return errors.Wrapf(err, "data final ilegível: %q", endDate)
	}

	params := adsterraclient.StatsParams{
		StartDate: start,
		EndDate:   end,
		Domain:    filters.Domain,
		Placement: filters.Placement,
		GroupBy:   filters.GroupBy,
	}

	stats, err := s.stats.GetStats(ctx, params)
	if err != nil || stats == nil {
		metrics.ReportsGenerated.WithLabelValues("failure").Inc()

		if _, sendErr := s.messenger.SendMessage(ctx, chatID, fetchFailedText, nil); sendErr != nil {
			logrus.WithError(sendErr).Warn("report: falha ao avisar usuário sobre erro de busca")
		}

		return ErrFetchFailed
	}

	summary := Summarize(stats)
	summaryText := FormatSummary(summary, startDate, endDate)

	if _, err := s.messenger.SendMessage(ctx, chatID, summaryHeader+summaryText, nil); err != nil {
		return errors.Wrap(err, "erro ao enviar resumo do relatório")
	}

	detailText := FormatDetail(stats.Items, filters.GroupBy)
	for _, part := range utils.SplitMessage(detailText, MaxMessageLength) {
		if _, err := s.messenger.SendMessage(ctx, chatID, part, nil); err != nil {
			return errors.Wrap(err, "erro ao enviar detalhe do relatório")
		}
	}

	metrics.ReportsGenerated.WithLabelValues("success").Inc()

	logrus.WithFields(logrus.Fields{
		"user_id":    userID,
		"start_date": startDate,
		"end_date":   endDate,
		"group_by":   filters.GroupBy,
	}).Info("report: relatório gerado com sucesso")

	return nil
}

func stringOr(value *string, fallback string) string {
	if value != nil && *value != "" {
		return *value
	}
	return fallback
}
