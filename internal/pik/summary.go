package pik

import (
	"fmt"
	"strings"
)

// Summary is one day of station measurements scraped from the monthly
// table. Cells are kept as display text; the table routinely has gaps.
type Summary struct {
	StationID   string
	StationName string
	Date        string

	TempAvg     string
	TempAnomaly string
	TempMin     string
	TempMax     string
	EffTempMin  string
	EffTempMax  string
	EffTempSun  string

	Humidity    string
	HumidityMin string

	Wind     string
	WindGust string

	MinVisibility string

	PressureAvg string
	PressureMin string
	PressureMax string

	CloudAvg string
	CloudLow string

	PrecipNight string
	PrecipDay   string
	PrecipSum   string
	SnowCover   string

	CaseRain         string
	CaseSnow         string
	CaseFog          string
	CaseMist         string
	CaseSnowstorm    string
	CaseSnowDrift    string
	CaseThunderstorm string
	CaseTornado      string
	CaseDustStorm    string
	CaseDustDrift    string
	CaseHail         string
	CaseBlackIce     string
}

// Format renders the full report reply.
func (s *Summary) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "📊 Данные МС %s — %s за %s:\n\n", s.StationID, s.StationName, s.Date)

	fmt.Fprintf(&b, "🌡 Температуры:\n")
	fmt.Fprintf(&b, "  • Максимальная: %s °C\n", s.TempMax)
	fmt.Fprintf(&b, "  • Средняя: %s °C\n", s.TempAvg)
	fmt.Fprintf(&b, "  • Минимальная: %s °C\n", s.TempMin)
	fmt.Fprintf(&b, "  • Температурная аномалия: %s °С\n", s.TempAnomaly)
	fmt.Fprintf(&b, "  • Эффективная температура в тени (мин.): %s °С\n", s.EffTempMin)
	fmt.Fprintf(&b, "  • Эффективная температура в тени (макс.): %s °С\n", s.EffTempMax)
	fmt.Fprintf(&b, "  • Эффективная температура на Солнце (макс.): %s °С\n\n", s.EffTempSun)

	fmt.Fprintf(&b, "📈 Давление (мм рт. ст.):\n")
	fmt.Fprintf(&b, "  • Среднее: %s\n", s.PressureAvg)
	fmt.Fprintf(&b, "  • Минимальное: %s\n", s.PressureMin)
	fmt.Fprintf(&b, "  • Максимальное: %s\n\n", s.PressureMax)

	fmt.Fprintf(&b, "💨 Ветер:\n")
	fmt.Fprintf(&b, "  • Средняя скорость: %s м/с\n", s.Wind)
	fmt.Fprintf(&b, "  • Порывы: %s м/с\n\n", s.WindGust)

	fmt.Fprintf(&b, "👁 Видимость:\n")
	fmt.Fprintf(&b, "  • Минимальная: %s\n\n", s.MinVisibility)

	fmt.Fprintf(&b, "💦 Влажность:\n")
	fmt.Fprintf(&b, "  • Средняя: %s %%\n", s.Humidity)
	fmt.Fprintf(&b, "  • Минимальная: %s %%\n\n", s.HumidityMin)

	fmt.Fprintf(&b, "🌧 Осадки (мм):\n")
	fmt.Fprintf(&b, "  • Ночью: %s\n", orDefault(s.PrecipNight, "0.0"))
	fmt.Fprintf(&b, "  • Днём: %s\n", orDefault(s.PrecipDay, "0.0"))
	fmt.Fprintf(&b, "  • Суммарно: %s\n\n", s.PrecipSum)

	fmt.Fprintf(&b, "☁️ Облачность (в баллах):\n")
	fmt.Fprintf(&b, "  • Средняя: %s\n", s.CloudAvg)
	fmt.Fprintf(&b, "  • Нижняя: %s\n\n", s.CloudLow)

	fmt.Fprintf(&b, "❄️ Снежный покров (см): %s\n\n", orDefault(s.SnowCover, "—"))

	fmt.Fprintf(&b, "🌀 Явления (сроки):\n")
	fmt.Fprintf(&b, "  • Снег: %s\n", orDefault(s.CaseSnow, "—"))
	fmt.Fprintf(&b, "  • Дождь: %s\n", orDefault(s.CaseRain, "—"))
	fmt.Fprintf(&b, "  • Гололёд: %s\n", orDefault(s.CaseBlackIce, "—"))
	fmt.Fprintf(&b, "  • Туман: %s\n", orDefault(s.CaseFog, "—"))
	fmt.Fprintf(&b, "  • Мгла: %s\n", orDefault(s.CaseMist, "—"))
	fmt.Fprintf(&b, "  • Метель: %s\n", orDefault(s.CaseSnowstorm, "—"))
	fmt.Fprintf(&b, "  • Позёмок: %s\n", orDefault(s.CaseSnowDrift, "—"))
	fmt.Fprintf(&b, "  • Торнадо: %s\n", orDefault(s.CaseTornado, "—"))
	fmt.Fprintf(&b, "  • Пылевая буря: %s\n", orDefault(s.CaseDustStorm, "—"))
	fmt.Fprintf(&b, "  • Пылевой позёмок: %s\n", orDefault(s.CaseDustDrift, "—"))
	fmt.Fprintf(&b, "  • Гроза: %s\n", orDefault(s.CaseThunderstorm, "—"))
	if s.CaseHail != "" {
		fmt.Fprintf(&b, "  • Град: %s мм\n", s.CaseHail)
	} else {
		fmt.Fprintf(&b, "  • Град: —\n")
	}

	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
