package station

import "fmt"

// Discomfort levels are externally given business rules, thresholds are
// carried over verbatim.
var riskLabels = map[int]string{
	1: "🟢 Дискомфорт отсутвует",
	2: "🟡 Лёгкий дискомфорт",
	3: "🟠 Повышенный дискомфорт",
	4: "🔴 Дискомфорт высокой опасности",
	5: "🟣 Дискомфорт экстремальной опасности",
}

// RiskLevel grades an observation and returns the worst factor's label.
func RiskLevel(temperature int, windSpeedMS, windGustMS float64, uvIndex int, pressure float64, dewPoint int) string {
	max := 1

	grade := func(level int) {
		if level > max {
			max = level
		}
	}

	// Температура
	switch {
	case temperature >= 45 || temperature <= -45:
		grade(5)
	case temperature >= 40 || temperature <= -35:
		grade(4)
	case temperature >= 35 || temperature <= -25:
		grade(3)
	case temperature >= 30 || temperature <= -15:
		grade(2)
	}

	// Постоянный ветер
	switch {
	case windSpeedMS >= 25:
		grade(5)
	case windSpeedMS >= 20:
		grade(4)
	case windSpeedMS >= 15:
		grade(3)
	case windSpeedMS >= 7:
		grade(2)
	}

	// Порывы
	switch {
	case windGustMS >= 33:
		grade(5)
	case windGustMS >= 25:
		grade(4)
	case windGustMS >= 20:
		grade(3)
	case windGustMS >= 10:
		grade(2)
	}

	// УФ-индекс
	switch {
	case uvIndex >= 11:
		grade(5)
	case uvIndex >= 9:
		grade(4)
	case uvIndex >= 7:
		grade(3)
	case uvIndex >= 3:
		grade(2)
	}

	// Давление
	switch {
	case pressure <= 950 || pressure >= 1080:
		grade(5)
	case pressure <= 970 || pressure >= 1060:
		grade(4)
	case pressure <= 980 || pressure >= 1040:
		grade(3)
	case pressure <= 990 || pressure >= 1020:
		grade(2)
	}

	// Точка росы
	switch {
	case dewPoint >= 25:
		grade(5)
	case dewPoint >= 20:
		grade(4)
	case dewPoint >= 16:
		grade(3)
	case dewPoint >= 12:
		grade(2)
	}

	return riskLabels[max]
}

// Format renders the station report text.
func Format(o *Observation) string {
	risk := RiskLevel(o.Temperature, o.WindSpeedMS, o.WindGustMS, o.UVIndex, o.Pressure, o.DewPoint)
	line := "━━━━━━━━━━━━━━━━━━━━━━━━━━━"
	return fmt.Sprintf(
		"%s\n"+
			"🌍 Погода в %s\n"+
			"🕑 Дата и время: %s\n"+
			"📡 Источник: АМС (автоматическая метеостанция)\n"+
			"%s\n"+
			"\n"+
			"%s\n"+
			"\n"+
			"🌡 Температура воздуха: %d°C\n"+
			"🤗 Ощущается как: %d°C\n"+
			"💧 Влажность воздуха: %d%%\n"+
			"💦 Точка росы: %d°C\n"+
			"🌬 Ветер: %s %.1f м/с (порывы до %.1f м/с)\n"+
			"📈 Атм. давление: %.1f гПа\n"+
			"🌧 Интенсивность осадков: %.1f мм/ч\n"+
			"💦 Суммарные осадки: %.1f мм\n"+
			"🌞 УФ-индекс: %d ☀️\n"+
			"🔆 Солнечная радиация: %.1f Вт/м²\n"+
			"%s",
		line,
		o.Display,
		o.ObsTimeLocal,
		line,
		risk,
		o.Temperature,
		o.Feelslike,
		o.Humidity,
		o.DewPoint,
		o.WindDirection, o.WindSpeedMS, o.WindGustMS,
		o.Pressure,
		o.PrecipRate,
		o.PrecipTotal,
		o.UVIndex,
		o.SolarRadiation,
		line,
	)
}
