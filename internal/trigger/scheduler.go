package trigger

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron"
)

// MidnightSpec fires at 00:00:00 every day. The first field is seconds.
const MidnightSpec = "0 0 0 * * *"

// Scheduler fires a Runner on a cron schedule in the runner's zone.
type Scheduler struct {
	runner   *Runner
	cron     *cron.Cron
	schedule cron.Schedule
	timeout  time.Duration
	logger   *slog.Logger
}

// NewScheduler creates a stopped scheduler. An empty spec means MidnightSpec.
func NewScheduler(r *Runner, spec string, logger *slog.Logger) (*Scheduler, error) {
	if spec == "" {
		spec = MidnightSpec
	}
	if logger == nil {
		logger = slog.Default()
	}
	schedule, err := cron.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse schedule %q: %w", spec, err)
	}

	s := &Scheduler{
		runner:   r,
		cron:     cron.NewWithLocation(r.Location()),
		schedule: schedule,
		timeout:  5 * time.Minute,
		logger:   logger,
	}
	s.cron.Schedule(schedule, cron.FuncJob(s.fire))
	return s, nil
}

// Start begins firing in a background goroutine.
func (s *Scheduler) Start() {
	s.logger.Info("scheduler started", "next", s.Next(), "zone", s.runner.Location().String())
	s.cron.Start()
}

// Stop halts future firings. A run already in progress is not interrupted.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info("scheduler stopped")
}

// Next returns the next firing time after now.
func (s *Scheduler) Next() time.Time {
	return s.schedule.Next(s.runner.now().In(s.runner.Location()))
}

// fire runs one scheduled generation. Failures are logged and never escape
// the cron goroutine.
func (s *Scheduler) fire() {
	defer func() {
		if rec := recover(); rec != nil {
			s.logger.Error("scheduled generation panicked", "panic", rec)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	if _, err := s.runner.RunToday(ctx); err != nil {
		s.logger.Error("scheduled generation failed", "error", err)
	}
}
