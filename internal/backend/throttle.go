package backend

import (
	"context"
	"sync"
	"time"
)

// throttle hands out time slots at least interval apart. Callers reserve the
// next free slot and sleep until it arrives.
type throttle struct {
	interval time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{interval: max(interval, 0)}
}

// reserve books the earliest free slot and returns it.
func (t *throttle) reserve(now time.Time) time.Time {
	t.mu.Lock()
	defer t.mu.Unlock()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.interval)
	return slot
}

// wait blocks until the caller's slot. It returns false if ctx ends first.
func (t *throttle) wait(ctx context.Context) bool {
	if t == nil || t.interval == 0 {
		return ctx.Err() == nil
	}
	delay := time.Until(t.reserve(time.Now()))
	if delay <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
