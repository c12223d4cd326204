package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// ReservationExpirer cancels pending reservations whose confirmation window
// has lapsed and reports how many it swept.
type ReservationExpirer interface {
	ExpireOverdue(ctx context.Context, now time.Time) (int, error)
}

type Scheduler struct {
	cron    *cron.Cron
	expirer ReservationExpirer
	log     *zap.Logger
}

func New(expirer ReservationExpirer, log *zap.Logger) *Scheduler {
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(time.UTC)),
		expirer: expirer,
		log:     log,
	}
}

// Start registers the expiry sweep on the given cron spec and launches the
// scheduler goroutine.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return err
	}
	s.cron.Start()
	s.log.Info("scheduler started", zap.String("spec", spec))
	return nil
}

// Stop halts scheduling and waits for a running sweep to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.log.Info("scheduler stopped")
}

func (s *Scheduler) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	expired, err := s.expirer.ExpireOverdue(ctx, time.Now().UTC())
	if err != nil {
		s.log.Error("expiry sweep failed", zap.Error(err))
		return
	}
	if expired > 0 {
		s.log.Info("expired overdue reservations", zap.Int("count", expired))
	}
}
