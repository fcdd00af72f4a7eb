package daykey

import (
	"context"
	"sync"
	"time"
)

// RolloverFunc is called with the new day key once a rollover instant passes.
type RolloverFunc func(ctx context.Context, dayKey string)

// Scheduler fires a callback at every rollover instant.
// Start may be called again (e.g. when the owning view is rebuilt); the
// previous timer is cancelled first so only one loop is ever running.
type Scheduler struct {
	resolver *Resolver
	fn       RolloverFunc

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

func NewScheduler(resolver *Resolver, fn RolloverFunc) *Scheduler {
	return &Scheduler{resolver: resolver, fn: fn}
}

// Start (re)arms the scheduler. It returns immediately.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	s.cancel = cancel
	s.done = done
	go s.run(ctx, done)
}

// Stop cancels the pending timer and waits for the loop to exit.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopLocked()
}

func (s *Scheduler) stopLocked() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.cancel = nil
	s.done = nil
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		timer := time.NewTimer(s.resolver.UntilNextRollover())
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.fn(ctx, s.resolver.CurrentDayKey())
		}
	}
}
