package adsterraclient

import (
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// StatsParams são os parâmetros de uma consulta a /stats.json.
// Domain e Placement nulos deixam a API agregar sobre todos.
type StatsParams struct {
	StartDate time.Time
	EndDate   time.Time
	Domain    *int64
	Placement *int64
	GroupBy   string
}

type Client interface {
	GetStats(ctx context.Context, params StatsParams) (*domain.StatsResponse, error)
	GetPlacements(ctx context.Context, domainID int64) ([]domain.Placement, error)
}

type AdsterraClient struct {
	httpClient *http.Client
	cfg        *config.Config
}

// NewClient cria um cliente da API de publisher da Adsterra. O timeout do
// http.Client limita toda chamada; nenhuma requisição fica pendente
// indefinidamente e não há retry automático.
func NewClient(cfg *config.Config) Client {
	return &AdsterraClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.Adsterra.TimeoutSeconds) * time.Second,
		},
		cfg: cfg,
	}
}

func (c *AdsterraClient) doGet(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.cfg.Adsterra.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao chamar a API da Adsterra")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("resposta inesperada da API da Adsterra: %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler o corpo da resposta")
	}

	return body, nil
}
