package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Scheduler запускает периодическое обслуживание: чистку истёкших банов и
// неактивных окон лимитера.
type Scheduler struct {
	cron      *cron.Cron
	ctx       context.Context
	cancel    context.CancelFunc
	sweepFunc func(ctx context.Context) error
}

// New создает новый планировщик
func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())

	return &Scheduler{
		cron:   cron.New(cron.WithLocation(time.UTC)),
		ctx:    ctx,
		cancel: cancel,
	}
}

// SetSweepFunction устанавливает функцию обслуживания
func (s *Scheduler) SetSweepFunction(f func(ctx context.Context) error) {
	s.sweepFunc = f
}

// Start запускает планировщик
func (s *Scheduler) Start() error {
	if s.sweepFunc == nil {
		log.Println("⚠️ Sweep function not set, scheduler will not run maintenance")
		return nil
	}

	// Каждые 10 минут
	_, err := s.cron.AddFunc("@every 10m", func() {
		if err := s.sweepFunc(s.ctx); err != nil {
			log.Printf("❌ Maintenance sweep failed: %v", err)
		}
	})

	if err != nil {
		return err
	}

	s.cron.Start()
	log.Println("📅 Scheduler started - maintenance sweep every 10 minutes")
	return nil
}

// Stop останавливает планировщик
func (s *Scheduler) Stop() {
	if s.cron != nil {
		ctx := s.cron.Stop()
		<-ctx.Done()
	}
	if s.cancel != nil {
		s.cancel()
	}
	log.Println("📅 Scheduler stopped")
}

// IsRunning проверяет, запущен ли планировщик
func (s *Scheduler) IsRunning() bool {
	return s.cron != nil && len(s.cron.Entries()) > 0
}
