package adsterraclient

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

// GetStats consulta /stats.json com os filtros informados. As linhas vêm
// agrupadas por data ou por país, conforme params.GroupBy.
func (c *AdsterraClient) GetStats(ctx context.Context, params StatsParams) (*domain.StatsResponse, error) {
	query := url.Values{}
	query.Set("start_date", params.StartDate.Format(time.DateOnly))
	query.Set("finish_date", params.EndDate.Format(time.DateOnly))
	query.Set("group_by", params.GroupBy)

	if params.Domain != nil {
		query.Set("domain", strconv.FormatInt(*params.Domain, 10))
	}
	if params.Placement != nil {
		query.Set("placement", strconv.FormatInt(*params.Placement, 10))
	}

	statsURL := fmt.Sprintf("%s/stats.json?%s", c.cfg.Adsterra.BaseURL, query.Encode())

	body, err := c.doGet(ctx, statsURL)
	if err != nil {
		return nil, err
	}

	var response domain.StatsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta de estatísticas")
	}

	return &response, nil
}
