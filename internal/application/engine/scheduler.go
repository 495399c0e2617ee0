package engine

import (
	"context"
	"time"
)

// Scheduler drives the poll cycle as a single-flight task: one goroutine
// consumes both the recurring ticker and the immediate-poll trigger, so two
// cycles can never overlap and no parallel fetches hit the same state.
type Scheduler struct {
	interval time.Duration
	cycle    func(ctx context.Context)
	trigger  chan struct{}
}

func NewScheduler(interval time.Duration, cycle func(ctx context.Context)) *Scheduler {
	return &Scheduler{
		interval: interval,
		cycle:    cycle,
		trigger:  make(chan struct{}, 1),
	}
}

// Poke requests an immediate cycle. Never blocks: a poke arriving while a
// cycle is in flight coalesces into a single pending re-run, and duplicate
// pokes collapse into one. The ticker's phase is not affected.
func (s *Scheduler) Poke() {
	select {
	case s.trigger <- struct{}{}:
	default:
	}
}

// Run executes cycles until ctx is cancelled. An initial cycle runs
// immediately so a fresh install arms its baseline without waiting a full
// interval.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.cycle(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cycle(ctx)
		case <-s.trigger:
			s.cycle(ctx)
		}
	}
}
