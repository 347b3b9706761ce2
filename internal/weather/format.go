package weather

import (
	"fmt"
	"strconv"
	"strings"
)

const divider = "──────────────────────────────"

// Icon picks an emoji for a Russian condition description.
func Icon(condition string) string {
	condition = strings.ToLower(condition)
	switch {
	case strings.Contains(condition, "солнечно"), strings.Contains(condition, "ясно"):
		return "☀️"
	case strings.Contains(condition, "облачно") && strings.Contains(condition, "переменная"):
		return "⛅"
	case strings.Contains(condition, "облачно"):
		return "☁️"
	case strings.Contains(condition, "дожд"):
		return "🌧"
	case strings.Contains(condition, "гроза"):
		return "⛈"
	case strings.Contains(condition, "снег"):
		return "❄️"
	case strings.Contains(condition, "туман"), strings.Contains(condition, "мгла"):
		return "🌫"
	case strings.Contains(condition, "морось"):
		return "🌦"
	case strings.Contains(condition, "метель"), strings.Contains(condition, "позёмок"):
		return "🌨"
	default:
		return "🌤"
	}
}

var periodOrder = []string{"🌅 Утро", "☀ День", "🌇 Вечер", "🌙 Ночь"}

// GroupHoursByPeriod buckets an hourly forecast into parts of the day,
// keeping hourly order inside each bucket.
func GroupHoursByPeriod(hours []Hour) map[string][]string {
	periods := map[string][]string{}
	for _, hour := range hours {
		if len(hour.Time) < 5 {
			continue
		}
		h, err := strconv.Atoi(hour.Time[len(hour.Time)-5 : len(hour.Time)-3])
		if err != nil {
			continue
		}
		entry := fmt.Sprintf("%s %.1f°C, %s, 💨 %.1f км/ч, 🌦 %.1f мм",
			Icon(hour.Condition.Text), hour.TempC, hour.Condition.Text, hour.WindKph, hour.PrecipMm)
		var key string
		switch {
		case h >= 6 && h < 12:
			key = periodOrder[0]
		case h >= 12 && h < 18:
			key = periodOrder[1]
		case h >= 18:
			key = periodOrder[2]
		default:
			key = periodOrder[3]
		}
		periods[key] = append(periods[key], entry)
	}
	return periods
}

// FormatCurrent renders current conditions the way the bot replies to a
// shared location. Markdown parse mode.
func FormatCurrent(c *Current) string {
	return fmt.Sprintf(
		"📍 *Местоположение:* %s, %s (%s)\n"+
			"⏱ Обновлено: %s\n"+
			"%s\n"+
			"🌡 *Температура:* %.1f°C (ощущается как %.1f°C)\n"+
			"%s *Состояние:* %s\n"+
			"💧 *Влажность:* %d%%\n"+
			"💨 *Ветер:* %.1f км/ч, %s\n"+
			"📈 *Давление:* %.1f мм рт. ст.\n"+
			"🌦 *Осадки:* %.1f мм\n"+
			"☁ *Облачность:* %d%%",
		c.Location.Name, c.Location.Region, c.Location.Country,
		c.LastUpdated,
		divider,
		c.TempC, c.FeelslikeC,
		Icon(c.Condition), c.Condition,
		c.Humidity,
		c.WindKph, c.WindDir,
		c.PressureMb*0.75,
		c.PrecipMm,
		c.Cloud,
	)
}

// FormatOneDay renders a single-day forecast with the hourly breakdown.
func FormatOneDay(f *Forecast) string {
	if len(f.Days) == 0 {
		return ""
	}
	fd := f.Days[0]
	var b strings.Builder
	fmt.Fprintf(&b,
		"📍 *Местоположение:* %s, %s\n"+
			"📅 *Дата:* %s\n"+
			"%s\n"+
			"🌡 *Макс:* %.1f°C\n"+
			"🌡❄️ *Мин:* %.1f°C\n"+
			"%s *Состояние:* %s\n"+
			"💧 *Влажность:* %.0f%%\n"+
			"💨 *Ветер:* %.1f км/ч\n"+
			"🌦 *Осадки:* %.1f мм\n"+
			"%s\n"+
			"🕒 *Периоды суток:*",
		f.Location.Name, f.Location.Country,
		fd.Date,
		divider,
		fd.Day.MaxTempC,
		fd.Day.MinTempC,
		Icon(fd.Day.Condition.Text), fd.Day.Condition.Text,
		fd.Day.AvgHumidity,
		fd.Day.MaxWindKph,
		fd.Day.TotalPrecipMm,
		divider,
	)
	appendPeriods(&b, fd.Hours)
	return b.String()
}

// FormatMultiDay renders the multi-day forecast reply.
func FormatMultiDay(f *Forecast) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📍 *Местоположение:* %s, %s\nПрогноз на %d дня:\n",
		f.Location.Name, f.Location.Country, len(f.Days))

	for _, fd := range f.Days {
		fmt.Fprintf(&b,
			"\n%s\n"+
				"📅 *%s*\n"+
				"🌡 Макс: %.1f°C | Мин: %.1f°C\n"+
				"%s Состояние: %s\n"+
				"💧 Влажность: %.0f%%\n"+
				"💨 Ветер: %.1f км/ч\n"+
				"🌦 Осадки: %.1f мм\n"+
				"%s\n"+
				"🕒 *Периоды суток:*",
			divider,
			fd.Date,
			fd.Day.MaxTempC, fd.Day.MinTempC,
			Icon(fd.Day.Condition.Text), fd.Day.Condition.Text,
			fd.Day.AvgHumidity,
			fd.Day.MaxWindKph,
			fd.Day.TotalPrecipMm,
			divider,
		)
		appendPeriods(&b, fd.Hours)
	}
	return b.String()
}

func appendPeriods(b *strings.Builder, hours []Hour) {
	periods := GroupHoursByPeriod(hours)
	for _, name := range periodOrder {
		if entries := periods[name]; len(entries) > 0 {
			fmt.Fprintf(b, "\n\n%s:\n%s", name, strings.Join(entries, "\n"))
		}
	}
}
