package telegram

import (
	"context"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// runNewsletter copies the admin's message to every registered user.
func (b *Bot) runNewsletter(ctx context.Context, msg *tgbotapi.Message) {
	b.states.Clear(msg.From.ID)
	b.sendMessage(msg.Chat.ID, "Рассылка началась.")

	ids, err := b.users.ListAll(ctx)
	if err != nil {
		log.Printf("❌ failed to list users for newsletter: %v", err)
		b.sendMessage(msg.Chat.ID, "❌ Не удалось получить список пользователей.")
		return
	}

	for _, id := range ids {
		copyMsg := tgbotapi.NewCopyMessage(id, msg.Chat.ID, msg.MessageID)
		if _, err := b.s.Send(copyMsg); err != nil {
			log.Printf("⚠️ newsletter delivery to %d failed: %v", id, err)
		}
		time.Sleep(50 * time.Millisecond)
	}

	b.sendMessage(msg.Chat.ID, "Рассылка завершена.")
}
