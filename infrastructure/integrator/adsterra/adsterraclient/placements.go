package adsterraclient

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

type placementsResponse struct {
	Items []domain.Placement `json:"items"`
}

// GetPlacements lista os placements cadastrados para um domínio.
func (c *AdsterraClient) GetPlacements(ctx context.Context, domainID int64) ([]domain.Placement, error) {
	placementsURL := fmt.Sprintf("%s/domain/%d/placements.json", c.cfg.Adsterra.BaseURL, domainID)

	body, err := c.doGet(ctx, placementsURL)
	if err != nil {
		return nil, err
	}

	var response placementsResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar resposta de placements")
	}

	return response.Items, nil
}
