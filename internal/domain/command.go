package domain

import (
	"strconv"
	"strings"
)

// CommandKind identifica a ação solicitada por um botão inline.
type CommandKind int

const (
	CmdUnknown CommandKind = iota
	CmdReportToday
	CmdDateFilter
	CmdPreset
	CmdDomainFilter
	CmdSelectDomain
	CmdPlacementFilter
	CmdSelectPlacement
	CmdToggleGroup
	CmdResetFilters
	CmdBackToMenu
)

// Command é o payload de um botão decodificado em uma estrutura antes do
// despacho, no lugar de comparação de prefixos espalhada pelos handlers.
type Command struct {
	Kind        CommandKind
	Preset      string
	DomainID    int64
	PlacementID int64
	All         bool
}

// Prefixos e payloads usados nos callback_data dos menus.
const (
	CallbackReportToday     = "report_today"
	CallbackDateFilter      = "date_filter"
	CallbackDomainFilter    = "domain_filter"
	CallbackPlacementFilter = "placement_filter"
	CallbackToggleGroup     = "toggle_group"
	CallbackResetFilters    = "reset_filters"
	CallbackBackToMenu      = "back_to_menu"

	callbackPresetPrefix    = "preset_"
	callbackDomainPrefix    = "domain_"
	callbackPlacementPrefix = "placement_"
	callbackAll             = "all"
)

// PresetCallback monta o callback_data de um preset de datas.
func PresetCallback(name string) string {
	return callbackPresetPrefix + name
}

// DomainCallback monta o callback_data de seleção de domínio.
func DomainCallback(id int64) string {
	return callbackDomainPrefix + strconv.FormatInt(id, 10)
}

// DomainAllCallback é o callback_data de "todos os domínios".
func DomainAllCallback() string {
	return callbackDomainPrefix + callbackAll
}

// PlacementCallback monta o callback_data de seleção de placement.
func PlacementCallback(id int64) string {
	return callbackPlacementPrefix + strconv.FormatInt(id, 10)
}

// PlacementAllCallback é o callback_data de "todos os placements".
func PlacementAllCallback() string {
	return callbackPlacementPrefix + callbackAll
}

// ParseCommand decodifica o callback_data de um botão em um Command.
// Payloads não reconhecidos viram CmdUnknown e são ignorados pelo engine.
func ParseCommand(data string) Command {
	switch data {
	case CallbackReportToday:
		return Command{Kind: CmdReportToday}
	case CallbackDateFilter:
		return Command{Kind: CmdDateFilter}
	case CallbackDomainFilter:
		return Command{Kind: CmdDomainFilter}
	case CallbackPlacementFilter:
		return Command{Kind: CmdPlacementFilter}
	case CallbackToggleGroup:
		return Command{Kind: CmdToggleGroup}
	case CallbackResetFilters:
		return Command{Kind: CmdResetFilters}
	case CallbackBackToMenu:
		return Command{Kind: CmdBackToMenu}
	}

	switch {
	case strings.HasPrefix(data, callbackPresetPrefix):
		return Command{Kind: CmdPreset, Preset: strings.TrimPrefix(data, callbackPresetPrefix)}

	case strings.HasPrefix(data, callbackDomainPrefix):
		raw := strings.TrimPrefix(data, callbackDomainPrefix)
		if raw == callbackAll {
			return Command{Kind: CmdSelectDomain, All: true}
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Command{Kind: CmdUnknown}
		}
		return Command{Kind: CmdSelectDomain, DomainID: id}

	case strings.HasPrefix(data, callbackPlacementPrefix):
		raw := strings.TrimPrefix(data, callbackPlacementPrefix)
		if raw == callbackAll {
			return Command{Kind: CmdSelectPlacement, All: true}
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return Command{Kind: CmdUnknown}
		}
		return Command{Kind: CmdSelectPlacement, PlacementID: id}
	}

	return Command{Kind: CmdUnknown}
}
