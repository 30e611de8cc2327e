// Package ratelimit provides a fixed-window request counter keyed by client
// address. Counters live in process memory and do not coordinate across
// instances; a burst straddling a window boundary may slightly exceed the
// nominal limit, which is accepted for this system's scale.
package ratelimit

import (
	"math"
	"sync"
	"time"
)

// Limiter is the dependency the submission service takes instead of a
// package-level counter map, so tests can substitute deterministic clocks.
type Limiter interface {
	// Allow reports whether the request identified by key may proceed.
	// When denied, retryAfter is the whole number of seconds until the
	// window resets.
	Allow(key string) (allowed bool, retryAfter int)
}

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow counts requests per key within a reset-at-boundary window.
type FixedWindow struct {
	limit    int
	interval time.Duration
	now      func() time.Time

	mu      sync.Mutex
	windows map[string]*window
}

// NewFixedWindow creates a limiter allowing limit requests per interval for
// each key.
func NewFixedWindow(limit int, interval time.Duration) *FixedWindow {
	return newFixedWindow(limit, interval, time.Now)
}

// NewFixedWindowWithClock is NewFixedWindow with an injected clock for tests.
func NewFixedWindowWithClock(limit int, interval time.Duration, now func() time.Time) *FixedWindow {
	return newFixedWindow(limit, interval, now)
}

func newFixedWindow(limit int, interval time.Duration, now func() time.Time) *FixedWindow {
	return &FixedWindow{
		limit:    limit,
		interval: interval,
		now:      now,
		windows:  make(map[string]*window),
	}
}

// Allow implements Limiter.
func (f *FixedWindow) Allow(key string) (bool, int) {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.now()
	w, ok := f.windows[key]
	if !ok || now.After(w.resetAt) {
		f.windows[key] = &window{count: 1, resetAt: now.Add(f.interval)}
		return true, 0
	}

	if w.count < f.limit {
		w.count++
		return true, 0
	}

	retryAfter := int(math.Ceil(w.resetAt.Sub(now).Seconds()))
	return false, retryAfter
}
