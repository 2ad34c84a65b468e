package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StatRow é um bucket de agregação retornado pela API da Adsterra: uma data do
// calendário ou um código de país, conforme o group_by da consulta.
type StatRow struct {
	Date       string          `json:"date,omitempty"`
	Country    string          `json:"country,omitempty"`
	Impression int64           `json:"impression"`
	Clicks     int64           `json:"clicks"`
	Revenue    decimal.Decimal `json:"revenue"`
	CTR        float64         `json:"ctr"`
	CPM        float64         `json:"cpm"`
}

// StatsResponse é o payload bruto de /publisher/stats.json. Quando a API não
// devolve linhas, os agregados podem vir nos campos de nível superior.
type StatsResponse struct {
	Items      []StatRow       `json:"items"`
	Revenue    decimal.Decimal `json:"revenue"`
	Impression int64           `json:"impression"`
	Clicks     int64           `json:"clicks"`
	CTR        float64         `json:"ctr"`
	CPM        float64         `json:"cpm"`
}

// Summary é o resumo derivado de um conjunto de StatRows. Nunca é persistido.
type Summary struct {
	Revenue    decimal.Decimal
	Impression int64
	Clicks     int64
	CTR        float64
	CPM        float64
}

// Placement é uma configuração de slot de anúncio, sempre escopada a um domínio.
type Placement struct {
	ID    int64  `json:"id"`
	Alias string `json:"alias"`
	Title string `json:"title"`
}

// DisplayName retorna o melhor nome disponível para exibição no menu.
func (p Placement) DisplayName() string {
	if p.Alias != "" {
		return p.Alias
	}
	if p.Title != "" {
		return p.Title
	}
	return fmt.Sprintf("Placement %d", p.ID)
}
