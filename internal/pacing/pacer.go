// Package pacing spaces external provider calls inside a batch so the
// batch respects upstream rate limits. Pacing is counter-based rather
// than tied to a loop index, so callers behave the same whether they
// fetch sequentially or restructure the loop.
package pacing

import (
	"context"
	"time"
)

// Pacer blocks before every Nth call after the first. With every=5 a
// batch of 12 Wait calls pauses exactly twice, before calls 5 and 10
// (zero-indexed).
type Pacer struct {
	every    int
	interval time.Duration
	count    int

	sleep func(ctx context.Context, d time.Duration) error
}

// New creates a Pacer that pauses for interval before every Nth call.
// An every value <= 0 disables pacing.
func New(every int, interval time.Duration) *Pacer {
	return &Pacer{
		every:    every,
		interval: interval,
		sleep:    sleepContext,
	}
}

// Wait registers one call and blocks when that call is due for a pause.
// It returns the context error when cancelled mid-pause.
func (p *Pacer) Wait(ctx context.Context) error {
	n := p.count
	p.count++

	if p.every <= 0 || n == 0 || n%p.every != 0 {
		return nil
	}
	return p.sleep(ctx, p.interval)
}

// Reset clears the call counter so the next batch starts fresh.
func (p *Pacer) Reset() {
	p.count = 0
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
