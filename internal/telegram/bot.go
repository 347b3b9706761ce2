package telegram

import (
	"context"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meteo-explorer/internal/antispam"
	"meteo-explorer/internal/meteogram"
	"meteo-explorer/internal/pik"
	"meteo-explorer/internal/station"
	"meteo-explorer/internal/weather"
)

// userRegistry is the subset of the user store the bot needs.
type userRegistry interface {
	EnsureRegistered(ctx context.Context, tgID int64) error
	ListAll(ctx context.Context) ([]int64, error)
}

type Bot struct {
	api  *tgbotapi.BotAPI
	s    sender
	gate *antispam.Gate

	users    userRegistry
	weather  *weather.Client
	stations *station.Client
	pik      *pik.Client
	catalog  *meteogram.Catalog
	fetcher  *meteogram.Fetcher

	states      *stateManager
	adminChatID int64
}

func New(
	botToken string,
	adminChatID int64,
	gateCfg antispam.Config,
	bans antispam.BanStore,
	users userRegistry,
	weatherCl *weather.Client,
	stationCl *station.Client,
	pikCl *pik.Client,
	catalog *meteogram.Catalog,
	fetcher *meteogram.Fetcher,
) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b := &Bot{
		api:         api,
		s:           botAPISender{api: api},
		users:       users,
		weather:     weatherCl,
		stations:    stationCl,
		pik:         pikCl,
		catalog:     catalog,
		fetcher:     fetcher,
		states:      newStateManager(),
		adminChatID: adminChatID,
	}
	// In private chats the principal id doubles as the chat id, so the
	// gate replies straight to the user.
	b.gate = antispam.New(gateCfg, bans, b.sendMessage, b.notifyOperator)
	return b, nil
}

// Gate exposes the admission gate for the maintenance sweep.
func (b *Bot) Gate() *antispam.Gate { return b.gate }

func (b *Bot) Start(ctx context.Context) {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	for update := range updates {
		upd := update
		go b.handleUpdate(ctx, upd)
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message != nil {
		msg := update.Message
		if msg.From == nil || msg.Chat == nil {
			// malformed event: no principal to charge, drop without reply
			return
		}
		b.gate.Process(ctx, msg.From.ID, func(ctx context.Context) {
			b.routeMessage(ctx, msg)
		})
		return
	}
	if update.CallbackQuery != nil {
		b.handleCallback(update.CallbackQuery)
	}
}

func (b *Bot) sendMessage(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) sendMarkdown(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

func (b *Bot) sendWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	if _, err := b.s.Send(msg); err != nil {
		log.Printf("failed to send message: %v", err)
	}
}

// sendMenu shows the option list; every finished flow funnels back here.
func (b *Bot) sendMenu(chatID int64) {
	b.sendWithMarkup(chatID, "Выберите опцию:", inlineMenu)
}

func (b *Bot) notifyOperator(text string) {
	if b.adminChatID == 0 {
		return
	}
	b.sendMessage(b.adminChatID, text)
}

// answerCallback closes the inline button spinner.
func (b *Bot) answerCallback(id string) {
	if b.api == nil {
		return
	}
	if _, err := b.api.Request(tgbotapi.NewCallback(id, "")); err != nil {
		log.Printf("failed to answer callback: %v", err)
	}
}
