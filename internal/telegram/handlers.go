package telegram

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meteo-explorer/internal/meteogram"
	"meteo-explorer/internal/pik"
	"meteo-explorer/internal/station"
	"meteo-explorer/internal/weather"
)

const contactsText = "📡 Наши контакты\n\n" +
	"Тех. поддержка: ✉️ meteovrn@inbox.ru\n\n" +
	"YouTube: ▶️ youtube.com/@MeteoVrn\n\n" +
	"Telegram: 📲 t.me/meteovrn\n\n" +
	"ВКонтакте: 🌐 vk.com/meteoexplorer\n\n" +
	"Веб-сайт:  💻  meteovrn.ru"

func (b *Bot) routeMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}

	switch msg.Text {
	case btnCommands:
		b.states.Clear(msg.From.ID)
		b.sendMenu(msg.Chat.ID)
	case btnLocation:
		b.states.Set(msg.From.ID, stateAwaitLocation)
		b.sendWithMarkup(msg.Chat.ID,
			"Вы можете поделиться местоположением для быстрого определения погоды",
			shareLocationMenu)
	case btnContacts:
		b.sendMessage(msg.Chat.ID, contactsText)
	case btnBack:
		b.states.Clear(msg.From.ID)
		b.sendWithMarkup(msg.Chat.ID, "Вы вернулись назад", mainMenu)
	default:
		b.routeState(ctx, msg)
	}
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	switch msg.Command() {
	case "start":
		if err := b.users.EnsureRegistered(ctx, msg.From.ID); err != nil {
			// not security-critical, the next /start retries it
			log.Printf("⚠️ failed to register user %d: %v", msg.From.ID, err)
		}
		b.sendWithMarkup(msg.Chat.ID,
			"Привет! Я — Meteorology Explorer. Для навигации используйте клавиатуру ниже.",
			mainMenu)
	case "newsletter":
		if msg.From.ID != b.adminChatID || b.adminChatID == 0 {
			return
		}
		b.states.Set(msg.From.ID, stateAwaitNewsletter)
		b.sendMessage(msg.Chat.ID, "Введите сообщение для рассылки.")
	}
}

func (b *Bot) routeState(ctx context.Context, msg *tgbotapi.Message) {
	switch b.states.Get(msg.From.ID) {
	case stateAwaitLocation:
		if msg.Location == nil {
			return
		}
		b.handleLocation(ctx, msg)
	case stateAwaitCityOneDay:
		b.handleForecast(ctx, msg, 1)
	case stateAwaitCityThreeDays:
		b.handleForecast(ctx, msg, 3)
	case stateAwaitStation:
		b.handleStation(ctx, msg)
	case stateAwaitSummary:
		b.handleSummary(ctx, msg)
	case stateAwaitMeteograms:
		b.handleMeteograms(ctx, msg)
	case stateAwaitNewsletter:
		b.runNewsletter(ctx, msg)
	}
}

func (b *Bot) handleCallback(cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.Message == nil || cb.Message.Chat == nil {
		return
	}
	chatID := cb.Message.Chat.ID

	switch cb.Data {
	case cbOneDay:
		b.states.Set(cb.From.ID, stateAwaitCityOneDay)
		b.sendMessage(chatID, "Введите название населённого пункта")
	case cbThreeDays:
		b.states.Set(cb.From.ID, stateAwaitCityThreeDays)
		b.sendMessage(chatID, "Введите название населённого пункта")
	case cbStation:
		b.states.Set(cb.From.ID, stateAwaitStation)
		b.sendMessage(chatID, "Введите название станции\nПример ввода: Армавир")
	case cbSummary:
		b.states.Set(cb.From.ID, stateAwaitSummary)
		b.sendMessage(chatID,
			"Формат ввода: Факт.данные _код_станции_ _дата_\n"+
				"Пример ввода: Факт.данные 34123 11.08.2025")
	case cbMeteograms:
		b.states.Set(cb.From.ID, stateAwaitMeteograms)
		b.sendMessage(chatID, "Введите названия городов через запятую (Максимум 10 городов)")
	}
	b.answerCallback(cb.ID)
}

func (b *Bot) handleLocation(ctx context.Context, msg *tgbotapi.Message) {
	defer b.finishFlow(msg)

	cur, err := b.weather.CurrentByCoords(ctx, msg.Location.Latitude, msg.Location.Longitude)
	if err != nil {
		log.Printf("failed to fetch current weather: %v", err)
		b.sendMessage(msg.Chat.ID, "⚠ Не удалось получить данные о погоде")
		return
	}
	b.sendMarkdown(msg.Chat.ID, weather.FormatCurrent(cur))
}

func (b *Bot) handleForecast(ctx context.Context, msg *tgbotapi.Message, days int) {
	defer b.finishFlow(msg)

	f, err := b.weather.Forecast(ctx, msg.Text, days)
	if errors.Is(err, weather.ErrUnknownLocation) {
		b.sendMessage(msg.Chat.ID, "⚠ Указан неизвестный населённый пункт")
		return
	}
	if err != nil {
		log.Printf("failed to fetch forecast for %q: %v", msg.Text, err)
		b.sendMessage(msg.Chat.ID, "⚠ Не удалось получить данные о погоде")
		return
	}

	if days == 1 {
		b.sendMarkdown(msg.Chat.ID, weather.FormatOneDay(f))
	} else {
		b.sendMarkdown(msg.Chat.ID, weather.FormatMultiDay(f))
	}
}

func (b *Bot) handleStation(ctx context.Context, msg *tgbotapi.Message) {
	defer b.finishFlow(msg)

	obs, err := b.stations.Observations(ctx, msg.Text)
	if errors.Is(err, station.ErrUnknownStation) {
		b.sendMessage(msg.Chat.ID, fmt.Sprintf(
			"Данной АМС (%s) нету в нашей базе.\n"+
				"Если вы хотите её добавить, свяжитесь с нами:\n"+
				"─────────────────────────────────────────────\n"+
				"E-mail: ✉️ meteovrn@inbox.ru\n"+
				"Telegram: 📲 t.me/meteovrn\n"+
				"ВКонтакте: 🌐 vk.com/meteoexplorer",
			capitalize(msg.Text)))
		return
	}
	if err != nil {
		log.Printf("failed to fetch station data for %q: %v", msg.Text, err)
		b.sendMessage(msg.Chat.ID, "⚠️ Не удалось получить данные о погоде.")
		return
	}
	b.sendMessage(msg.Chat.ID, station.Format(obs))
}

func (b *Bot) handleSummary(ctx context.Context, msg *tgbotapi.Message) {
	defer b.finishFlow(msg)
	start := time.Now()

	q, err := pik.ParseQuery(msg.Text)
	if err != nil {
		b.sendMessage(msg.Chat.ID,
			"Неверный формат. Пример ввода: Факт.данные 34123 11.08.2025")
		return
	}

	if err := b.pik.Login(ctx); err != nil {
		log.Printf("failed to login to pogodaiklimat: %v", err)
		b.sendMessage(msg.Chat.ID, "❌ Ошибка при обработке данных: авторизация не удалась")
		return
	}

	s, err := b.pik.DailySummary(ctx, q)
	if errors.Is(err, pik.ErrNotFound) {
		b.sendMessage(msg.Chat.ID, "⚠️ Таблица не найдена. Проверь код станции или дату.")
		return
	}
	if err != nil {
		log.Printf("failed to fetch summary for %s: %v", q.StationID, err)
		b.sendMessage(msg.Chat.ID, "❌ Ошибка при обработке данных")
		return
	}

	text := s.Format() + fmt.Sprintf("⏱ Затрачено: %.2f сек.", time.Since(start).Seconds())
	b.sendMessage(msg.Chat.ID, text)
}

func (b *Bot) handleMeteograms(ctx context.Context, msg *tgbotapi.Message) {
	defer b.finishFlow(msg)
	start := time.Now()

	names := meteogram.SplitCities(msg.Text)
	if len(names) == 0 {
		b.sendMessage(msg.Chat.ID, "Не указано ни одного города. Попробуйте снова")
		return
	}

	for _, name := range names {
		city, ok := b.catalog.Find(name)
		if !ok {
			b.sendMessage(msg.Chat.ID, "Город не найден")
			continue
		}

		path, err := b.fetcher.Fetch(ctx, city)
		if err != nil {
			log.Printf("failed to fetch meteogram for %s: %v", name, err)
			b.sendMessage(msg.Chat.ID, "Ошибка загрузки данных!")
			continue
		}

		photo := tgbotapi.NewPhoto(msg.Chat.ID, tgbotapi.FilePath(path))
		photo.Caption = fmt.Sprintf(
			"Прогноз на 5 дней для населённого пункта: %s\nВремя, затраченное на отправку: %.2f секунд",
			capitalize(name), time.Since(start).Seconds())
		if _, err := b.s.Send(photo); err != nil {
			log.Printf("failed to send meteogram photo: %v", err)
		}
	}
}

// finishFlow returns the user to the option menu after any terminal state.
func (b *Bot) finishFlow(msg *tgbotapi.Message) {
	b.states.Clear(msg.From.ID)
	b.sendMenu(msg.Chat.ID)
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(strings.TrimSpace(s)))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
