package conversation

import "time"

// Presets de período aceitos no menu de datas.
const (
	PresetToday     = "today"
	PresetYesterday = "yesterday"
	PresetLast7     = "last7"
	PresetLast30    = "last30"
	PresetThisMonth = "thismonth"
	PresetThisYear  = "thisyear"
	PresetCustom    = "custom"
)

// ResolvePreset converte um preset nomeado no par (início, fim) concreto,
// relativo ao dia informado. Presets desconhecidos caem no dia corrente,
// como o atalho de relatório de hoje.
func ResolvePreset(preset string, today time.Time) (time.Time, time.Time) {
	switch preset {
	case PresetToday:
		return today, today

	case PresetYesterday:
		yesterday := today.AddDate(0, 0, -1)
		return yesterday, yesterday

	case PresetLast7:
		return today.AddDate(0, 0, -6), today

	case PresetLast30:
		return today.AddDate(0, 0, -29), today

	case PresetThisMonth:
		start := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return start, today

	case PresetThisYear:
		start := time.Date(today.Year(), time.January, 1, 0, 0, 0, 0, today.Location())
		return start, today

	default:
		return today, today
	}
}
