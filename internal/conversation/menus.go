package conversation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/tonxmedia/adsterra-dashboard-bot/infrastructure/transport/telegram"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/config"
	"github.com/tonxmedia/adsterra-dashboard-bot/internal/domain"
)

// Textos exibidos ao usuário. O bot fala inglês; os logs, não.
const (
	mainMenuText = "📊 *Adsterra Dashboard* - Main Menu\n\nCurrent filters:"

	loginPromptText = "🔒 Please login to access Adsterra Dashboard.\n\n" +
		"Send your credentials in this format:\n" +
		"`username|password`"

	invalidFormatText = "Invalid format. Please send:\n`username|password`"

	invalidCredentialsText = "❌ Invalid credentials. Please try again.\n\n" +
		"Send your credentials in this format:\n" +
		"`username|password`"

	dateRangePromptText = "Please send the date range in format:\n" +
		"`YYYY-MM-DD to YYYY-MM-DD`\n\n" +
		"Example: `2023-10-01 to 2023-10-07`"

	invalidDateRangeText = "❌ Invalid date format.\n\n" +
		"Please send dates in format:\n" +
		"`YYYY-MM-DD to YYYY-MM-DD`\n\n" +
		"Example: `2023-10-01 to 2023-10-07`"

	selectDomainFirstText = "Please select a domain first"
	noPlacementsText      = "No placements found for this domain"

	loggedOutText = "You have been logged out successfully."
	cancelledText = "Operation cancelled."
)

// maxPlacementButtons limita o menu de placements, que pode ser extenso.
const maxPlacementButtons = 10

// mainMenuMarkup monta o menu principal com os filtros atuais nos rótulos.
func mainMenuMarkup(filters *domain.FilterSet, cfg *config.Config) *telegram.InlineKeyboardMarkup {
	domainLabel := "All Domains"
	if filters.Domain != nil {
		if name, ok := cfg.Domains[*filters.Domain]; ok {
			domainLabel = name
		} else {
			domainLabel = fmt.Sprintf("Domain %d", *filters.Domain)
		}
	}

	placementLabel := "All Placements"
	if filters.Placement != nil {
		placementLabel = fmt.Sprintf("Placement %d", *filters.Placement)
	}

	groupLabel := capitalize(filters.GroupBy)

	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			telegram.Row(
				telegram.Button("📊 Today's Report", domain.CallbackReportToday),
				telegram.Button("📅 Date Filter", domain.CallbackDateFilter),
			),
			telegram.Row(
				telegram.Button("🌐 Domain: "+domainLabel, domain.CallbackDomainFilter),
				telegram.Button("🎯 "+placementLabel, domain.CallbackPlacementFilter),
			),
			telegram.Row(
				telegram.Button("📌 Group By: "+groupLabel, domain.CallbackToggleGroup),
				telegram.Button("🔄 Reset Filters", domain.CallbackResetFilters),
			),
		},
	}
}

// dateFilterMarkup monta as opções de período: seis presets, intervalo
// customizado e volta ao menu.
func dateFilterMarkup() *telegram.InlineKeyboardMarkup {
	return &telegram.InlineKeyboardMarkup{
		InlineKeyboard: [][]telegram.InlineKeyboardButton{
			telegram.Row(
				telegram.Button("Today", domain.PresetCallback(PresetToday)),
				telegram.Button("Yesterday", domain.PresetCallback(PresetYesterday)),
			),
			telegram.Row(
				telegram.Button("Last 7 Days", domain.PresetCallback(PresetLast7)),
				telegram.Button("Last 30 Days", domain.PresetCallback(PresetLast30)),
			),
			telegram.Row(
				telegram.Button("This Month", domain.PresetCallback(PresetThisMonth)),
				telegram.Button("This Year", domain.PresetCallback(PresetThisYear)),
			),
			telegram.Row(
				telegram.Button("Custom Range", domain.PresetCallback(PresetCustom)),
			),
			telegram.Row(
				telegram.Button("🔙 Back", domain.CallbackBackToMenu),
			),
		},
	}
}

// domainMarkup lista o catálogo de domínios em ordem de ID, com "All Domains"
// no topo e volta ao menu no fim.
func domainMarkup(cfg *config.Config) *telegram.InlineKeyboardMarkup {
	keyboard := [][]telegram.InlineKeyboardButton{
		telegram.Row(telegram.Button("All Domains", domain.DomainAllCallback())),
	}

	ids := make([]int64, 0, len(cfg.Domains))
	for id := range cfg.Domains {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, id := range ids {
		keyboard = append(keyboard, telegram.Row(
			telegram.Button(cfg.Domains[id], domain.DomainCallback(id)),
		))
	}

	keyboard = append(keyboard, telegram.Row(
		telegram.Button("🔙 Back", domain.CallbackBackToMenu),
	))

	return &telegram.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

// placementMarkup lista até maxPlacementButtons placements, com "All
// Placements" no topo e volta ao menu no fim.
func placementMarkup(placements []domain.Placement) *telegram.InlineKeyboardMarkup {
	keyboard := [][]telegram.InlineKeyboardButton{
		telegram.Row(telegram.Button("All Placements", domain.PlacementAllCallback())),
	}

	for i, placement := range placements {
		if i == maxPlacementButtons {
			break
		}
		keyboard = append(keyboard, telegram.Row(
			telegram.Button(placement.DisplayName(), domain.PlacementCallback(placement.ID)),
		))
	}

	keyboard = append(keyboard, telegram.Row(
		telegram.Button("🔙 Back", domain.CallbackBackToMenu),
	))

	return &telegram.InlineKeyboardMarkup{InlineKeyboard: keyboard}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
