package session

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// FocusTarget receives focus-regain triggers. *Controller satisfies it.
type FocusTarget interface {
	FocusRegained(ctx context.Context)
}

// Poller fires FocusRegained on a fixed interval, standing in for the
// screen regaining focus in long-running views such as watch.
type Poller struct {
	sched    gocron.Scheduler
	target   FocusTarget
	interval time.Duration
}

// NewPoller creates a stopped poller.
func NewPoller(target FocusTarget, interval time.Duration) (*Poller, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %s", interval)
	}
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("creating scheduler: %w", err)
	}
	return &Poller{sched: sched, target: target, interval: interval}, nil
}

// Start schedules the job and starts the scheduler. A tick that would
// overlap a running one is skipped.
func (p *Poller) Start(ctx context.Context) error {
	_, err := p.sched.NewJob(
		gocron.DurationJob(p.interval),
		gocron.NewTask(func() {
			p.target.FocusRegained(ctx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("scheduling refresh: %w", err)
	}
	p.sched.Start()
	return nil
}

// Stop shuts the scheduler down and waits for a running tick.
func (p *Poller) Stop() error {
	return p.sched.Shutdown()
}
