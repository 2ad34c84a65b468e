package domain

// Dimensões de agrupamento aceitas pela API de estatísticas.
const (
	GroupByDate    = "date"
	GroupByCountry = "country"
)

// FilterSet guarda os filtros de relatório de um usuário. Campos com ponteiro
// nulo significam "não definido" e deixam a API usar o comportamento padrão.
type FilterSet struct {
	UserID    int64
	StartDate *string // formato YYYY-MM-DD
	EndDate   *string // formato YYYY-MM-DD
	Domain    *int64
	Placement *int64
	GroupBy   string
}

// NewFilterSet cria um FilterSet com os valores padrão.
func NewFilterSet(userID int64) *FilterSet {
	return &FilterSet{
		UserID:  userID,
		GroupBy: GroupByDate,
	}
}

// ToggledGroupBy retorna a dimensão oposta à atual.
func (f *FilterSet) ToggledGroupBy() string {
	if f.GroupBy == GroupByCountry {
		return GroupByDate
	}
	return GroupByCountry
}

// FilterPatch é uma atualização parcial de FilterSet. Campos nil não alteram o
// registro armazenado; as flags Clear* zeram explicitamente a dimensão
// correspondente. A distinção evita o problema clássico de "nil = limpar ou
// nil = não informado".
type FilterPatch struct {
	StartDate *string
	EndDate   *string
	Domain    *int64
	Placement *int64
	GroupBy   *string

	ClearDates     bool
	ClearDomain    bool
	ClearPlacement bool
}

// Apply mescla o patch campo a campo sobre o FilterSet informado.
func (p FilterPatch) Apply(f *FilterSet) {
	if p.ClearDates {
		f.StartDate = nil
		f.EndDate = nil
	}
	if p.ClearDomain {
		f.Domain = nil
	}
	if p.ClearPlacement {
		f.Placement = nil
	}

	if p.StartDate != nil {
		f.StartDate = p.StartDate
	}
	if p.EndDate != nil {
		f.EndDate = p.EndDate
	}
	if p.Domain != nil {
		f.Domain = p.Domain
	}
	if p.Placement != nil {
		f.Placement = p.Placement
	}
	if p.GroupBy != nil {
		f.GroupBy = *p.GroupBy
	}

	if f.GroupBy == "" {
		f.GroupBy = GroupByDate
	}
}
