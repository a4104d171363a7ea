// Package jobs runs periodic maintenance inside the serve process.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// MonthlyAccrual fires at midnight on the first day of every month.
const MonthlyAccrual = "0 0 1 * *"

// LeaveAccruer is satisfied by the employee service.
type LeaveAccruer interface {
	AccrueMonthlyLeaves(ctx context.Context) (int64, error)
}

type Scheduler struct {
	cron    *cron.Cron
	lg      zerolog.Logger
	timeout time.Duration
}

func NewScheduler(lg zerolog.Logger, loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron:    cron.New(cron.WithLocation(loc)),
		lg:      lg.With().Str("component", "scheduler").Logger(),
		timeout: 5 * time.Minute,
	}
}

// AddLeaveAccrual registers accrual under spec, normally MonthlyAccrual.
func (s *Scheduler) AddLeaveAccrual(spec string, acc LeaveAccruer) error {
	_, err := s.cron.AddFunc(spec, func() { s.runAccrual(acc) })
	if err != nil {
		return fmt.Errorf("schedule leave accrual: %w", err)
	}
	return nil
}

func (s *Scheduler) runAccrual(acc LeaveAccruer) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	n, err := acc.AccrueMonthlyLeaves(ctx)
	if err != nil {
		s.lg.Error().Err(err).Msg("leave accrual failed")
		return
	}
	s.lg.Info().Int64("employees", n).Msg("leave accrual done")
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop waits for running jobs or ctx, whichever comes first.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// Next reports the next fire time for each registered job.
func (s *Scheduler) Next() []time.Time {
	var out []time.Time
	for _, e := range s.cron.Entries() {
		out = append(out, e.Next)
	}
	return out
}
