package antispam

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"
)

const (
	banNoticeTmpl   = "🚫 Вы заблокированы до %s!"
	warningTmpl     = "⚠️ Нарушение %d/%d. Далее последует блокировка."
	banImposedTmpl  = "⛔ Вы заблокированы на %d минут!"
	adminNotifyTmpl = "🚨 Пользователь %d заблокирован до %s"

	banTimeLayout = "2006-01-02 15:04"

	storeTimeout = 3 * time.Second
)

// BanStore is the durable side of the gate.
type BanStore interface {
	// IsBanned returns the ban expiry for userID if a record exists,
	// whether or not it has already passed.
	IsBanned(ctx context.Context, userID int64) (banEnd time.Time, ok bool, err error)
	SetBan(ctx context.Context, userID int64, banEnd time.Time) error
	ClearBan(ctx context.Context, userID int64) error
}

type Config struct {
	LimitInterval time.Duration
	MaxRequests   int
	MaxViolations int
	BanTime       time.Duration
}

// Gate sits in front of every message handler. It checks the durable ban,
// applies the sliding-window limit, warns on violations and escalates
// repeat offenders into a timed ban.
type Gate struct {
	cfg     Config
	bans    BanStore
	tracker *Tracker
	reply   func(userID int64, text string)
	notify  func(text string)
	now     func() time.Time

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

// New creates a gate. reply sends a message back to the user; notify pushes
// an operator notification (best effort, may be nil).
func New(cfg Config, bans BanStore, reply func(userID int64, text string), notify func(text string)) *Gate {
	return &Gate{
		cfg:     cfg,
		bans:    bans,
		tracker: NewTracker(),
		reply:   reply,
		notify:  notify,
		now:     time.Now,
		locks:   make(map[int64]*sync.Mutex),
	}
}

// Process runs the admission sequence for one inbound message and invokes
// handler exactly once if the message is admitted. Events from the same
// user are serialized; distinct users proceed concurrently.
func (g *Gate) Process(ctx context.Context, userID int64, handler func(ctx context.Context)) {
	lock := g.userLock(userID)
	lock.Lock()
	defer lock.Unlock()

	now := g.now()

	sctx, cancel := context.WithTimeout(ctx, storeTimeout)
	banEnd, banned, err := g.bans.IsBanned(sctx, userID)
	cancel()
	if err != nil {
		// Fail closed: without a readable ban store nothing gets through.
		log.Printf("❌ ban check failed for %d, denying request: %v", userID, err)
		return
	}
	if banned && banEnd.After(now) {
		g.reply(userID, fmt.Sprintf(banNoticeTmpl, banEnd.Format(banTimeLayout)))
		return
	}
	if banned {
		// Lazy expiry. A failed cleanup must not hold the user hostage;
		// the next contact or the maintenance sweep will retry it.
		sctx, cancel := context.WithTimeout(ctx, storeTimeout)
		if err := g.bans.ClearBan(sctx, userID); err != nil {
			log.Printf("⚠️ failed to clear expired ban for %d: %v", userID, err)
		}
		cancel()
	}

	if g.tracker.RecordAndCheck(userID, now, g.cfg.LimitInterval, g.cfg.MaxRequests) {
		g.tracker.ResetViolation(userID)
		handler(ctx)
		return
	}

	violations := g.tracker.IncrementViolation(userID)
	if violations < g.cfg.MaxViolations {
		g.reply(userID, fmt.Sprintf(warningTmpl, violations, g.cfg.MaxViolations))
		return
	}

	banEnd = now.Add(g.cfg.BanTime)
	sctx, cancel = context.WithTimeout(ctx, storeTimeout)
	err = g.bans.SetBan(sctx, userID, banEnd)
	cancel()
	if err != nil {
		// The ban is not durable, so do not announce it. The request is
		// still denied and the counter stays at the threshold.
		log.Printf("❌ failed to persist ban for %d: %v", userID, err)
		return
	}

	if g.notify != nil {
		text := fmt.Sprintf(adminNotifyTmpl, userID, banEnd.Format(banTimeLayout))
		go g.notify(text)
	}
	g.reply(userID, fmt.Sprintf(banImposedTmpl, int(g.cfg.BanTime.Minutes())))
}

// Tracker exposes the in-memory window state for the maintenance sweep.
func (g *Gate) Tracker() *Tracker {
	return g.tracker
}

func (g *Gate) userLock(userID int64) *sync.Mutex {
	g.mu.Lock()
	defer g.mu.Unlock()
	lock, ok := g.locks[userID]
	if !ok {
		lock = &sync.Mutex{}
		g.locks[userID] = lock
	}
	return lock
}
