package telegram

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"meteo-explorer/internal/antispam"
)

type fakeSender struct {
	mu     sync.Mutex
	texts  []string
	copies []tgbotapi.CopyMessageConfig
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch v := c.(type) {
	case tgbotapi.MessageConfig:
		f.texts = append(f.texts, v.Text)
	case tgbotapi.CopyMessageConfig:
		f.copies = append(f.copies, v)
	}
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func (f *fakeSender) contains(sub string) bool {
	for _, t := range f.sent() {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

type fakeRegistry struct {
	mu         sync.Mutex
	registered []int64
	allIDs     []int64
}

func (r *fakeRegistry) EnsureRegistered(_ context.Context, tgID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.registered = append(r.registered, tgID)
	return nil
}

func (r *fakeRegistry) ListAll(context.Context) ([]int64, error) {
	return r.allIDs, nil
}

type nopBanStore struct{}

func (nopBanStore) IsBanned(context.Context, int64) (time.Time, bool, error) {
	return time.Time{}, false, nil
}
func (nopBanStore) SetBan(context.Context, int64, time.Time) error { return nil }
func (nopBanStore) ClearBan(context.Context, int64) error          { return nil }

func newTestBot(users userRegistry) (*Bot, *fakeSender) {
	fs := &fakeSender{}
	b := &Bot{
		s:           fs,
		users:       users,
		states:      newStateManager(),
		adminChatID: 99,
	}
	b.gate = antispam.New(antispam.Config{
		LimitInterval: 10 * time.Second,
		MaxRequests:   2,
		MaxViolations: 3,
		BanTime:       5 * time.Minute,
	}, nopBanStore{}, b.sendMessage, b.notifyOperator)
	return b, fs
}

func textMessage(userID, chatID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		From: &tgbotapi.User{ID: userID},
		Chat: &tgbotapi.Chat{ID: chatID},
		Text: text,
	}
}

func commandMessage(userID, chatID int64, cmd string) *tgbotapi.Message {
	msg := textMessage(userID, chatID, cmd)
	msg.Entities = []tgbotapi.MessageEntity{
		{Type: "bot_command", Offset: 0, Length: len(cmd)},
	}
	return msg
}

func TestStartCommandRegistersAndGreets(t *testing.T) {
	reg := &fakeRegistry{}
	b, fs := newTestBot(reg)

	b.routeMessage(context.Background(), commandMessage(7, 7, "/start"))

	if len(reg.registered) != 1 || reg.registered[0] != 7 {
		t.Fatalf("expected user 7 registered, got %v", reg.registered)
	}
	if !fs.contains("Привет! Я — Meteorology Explorer") {
		t.Fatalf("greeting not sent, got %v", fs.sent())
	}
}

func TestContactsButton(t *testing.T) {
	b, fs := newTestBot(&fakeRegistry{})

	b.routeMessage(context.Background(), textMessage(7, 7, btnContacts))

	if !fs.contains("Наши контакты") {
		t.Fatalf("contacts not sent, got %v", fs.sent())
	}
}

func TestCallbackSetsConversationState(t *testing.T) {
	b, fs := newTestBot(&fakeRegistry{})

	b.handleCallback(&tgbotapi.CallbackQuery{
		ID:      "1",
		From:    &tgbotapi.User{ID: 7},
		Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: 7}},
		Data:    cbOneDay,
	})

	if got := b.states.Get(7); got != stateAwaitCityOneDay {
		t.Fatalf("state = %v, want stateAwaitCityOneDay", got)
	}
	if !fs.contains("Введите название населённого пункта") {
		t.Fatalf("prompt not sent, got %v", fs.sent())
	}
}

func TestBackButtonClearsState(t *testing.T) {
	b, fs := newTestBot(&fakeRegistry{})
	b.states.Set(7, stateAwaitStation)

	b.routeMessage(context.Background(), textMessage(7, 7, btnBack))

	if got := b.states.Get(7); got != stateNone {
		t.Fatalf("state = %v, want stateNone", got)
	}
	if !fs.contains("Вы вернулись назад") {
		t.Fatalf("back reply not sent, got %v", fs.sent())
	}
}

func TestGateWarningReachesUser(t *testing.T) {
	b, fs := newTestBot(&fakeRegistry{})

	for i := 0; i < 3; i++ {
		b.handleUpdate(context.Background(), tgbotapi.Update{
			Message: textMessage(7, 7, "привет"),
		})
	}

	if !fs.contains("Нарушение 1/3") {
		t.Fatalf("warning not sent, got %v", fs.sent())
	}
}

func TestCallbackWithoutChatIsDropped(t *testing.T) {
	b, fs := newTestBot(&fakeRegistry{})

	b.handleCallback(&tgbotapi.CallbackQuery{
		ID:      "1",
		From:    &tgbotapi.User{ID: 7},
		Message: &tgbotapi.Message{},
		Data:    cbOneDay,
	})

	if got := b.states.Get(7); got != stateNone {
		t.Fatalf("state = %v, want stateNone", got)
	}
	if got := fs.sent(); len(got) != 0 {
		t.Fatalf("expected no replies, got %v", got)
	}
}

func TestMalformedUpdateIsDropped(t *testing.T) {
	b, fs := newTestBot(&fakeRegistry{})

	b.handleUpdate(context.Background(), tgbotapi.Update{
		Message: &tgbotapi.Message{Text: "привет"},
	})

	if got := fs.sent(); len(got) != 0 {
		t.Fatalf("expected no replies for malformed update, got %v", got)
	}
}

func TestNewsletterCopiesToAllUsers(t *testing.T) {
	reg := &fakeRegistry{allIDs: []int64{10, 20}}
	b, fs := newTestBot(reg)
	b.states.Set(99, stateAwaitNewsletter)

	msg := textMessage(99, 99, "Всем привет")
	msg.MessageID = 42
	b.routeMessage(context.Background(), msg)

	if len(fs.copies) != 2 {
		t.Fatalf("expected 2 copies, got %d", len(fs.copies))
	}
	if fs.copies[0].ChatID != 10 || fs.copies[1].ChatID != 20 {
		t.Fatalf("unexpected copy targets: %+v", fs.copies)
	}
	if !fs.contains("Рассылка началась.") || !fs.contains("Рассылка завершена.") {
		t.Fatalf("progress messages missing, got %v", fs.sent())
	}
}
