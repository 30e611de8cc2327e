package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// fakeClock lets tests move time forward deterministically.
type fakeClock struct {
	current time.Time
}

func (c *fakeClock) now() time.Time {
	return c.current
}

func (c *fakeClock) advance(d time.Duration) {
	c.current = c.current.Add(d)
}

func TestFixedWindow_AllowsUpToLimit(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	limiter := NewFixedWindowWithClock(5, time.Minute, clock.now)

	for i := 0; i < 5; i++ {
		allowed, _ := limiter.Allow("submit-1.2.3.4")
		assert.True(t, allowed, "request %d should be allowed", i+1)
	}

	allowed, retryAfter := limiter.Allow("submit-1.2.3.4")
	assert.False(t, allowed)
	assert.Equal(t, 60, retryAfter)
}

func TestFixedWindow_KeysAreIndependent(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	limiter := NewFixedWindowWithClock(1, time.Minute, clock.now)

	allowed, _ := limiter.Allow("submit-1.2.3.4")
	assert.True(t, allowed)

	allowed, _ = limiter.Allow("submit-1.2.3.4")
	assert.False(t, allowed)

	allowed, _ = limiter.Allow("submit-5.6.7.8")
	assert.True(t, allowed)

	// A different stage prefix is a different window.
	allowed, _ = limiter.Allow("update-1.2.3.4")
	assert.True(t, allowed)
}

func TestFixedWindow_ResetsAfterWindow(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	limiter := NewFixedWindowWithClock(2, time.Minute, clock.now)

	limiter.Allow("k")
	limiter.Allow("k")
	allowed, _ := limiter.Allow("k")
	assert.False(t, allowed)

	clock.advance(time.Minute + time.Second)

	allowed, _ = limiter.Allow("k")
	assert.True(t, allowed)
}

func TestFixedWindow_RetryAfterCountsDown(t *testing.T) {
	clock := &fakeClock{current: time.Unix(1700000000, 0)}
	limiter := NewFixedWindowWithClock(1, time.Minute, clock.now)

	limiter.Allow("k")

	clock.advance(37 * time.Second)
	allowed, retryAfter := limiter.Allow("k")
	assert.False(t, allowed)
	assert.Equal(t, 23, retryAfter)

	clock.advance(22500 * time.Millisecond)
	allowed, retryAfter = limiter.Allow("k")
	assert.False(t, allowed)
	assert.Equal(t, 1, retryAfter)
}
