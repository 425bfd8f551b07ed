package llm

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// tryAcquire takes a token if one is available.
func (rl *rateLimiter) tryAcquire() bool {
	_, ok := rl.reserve()
	return ok
}

// available reports the whole tokens currently in the bucket.
func (rl *rateLimiter) available() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return int(rl.tokens)
}

// fakeClock is a manually advanced clock for deterministic limiter tests.
type fakeClock struct {
	now time.Time
	mu  sync.Mutex
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestLimiter(rpm int) (*rateLimiter, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(rpm)
	rl.now = clock.Now
	rl.lastRefill = clock.Now()
	return rl, clock
}

func TestRateLimiter(t *testing.T) {
	t.Run("burst up to capacity", func(t *testing.T) {
		rl, _ := newTestLimiter(5)
		for i := 0; i < 5; i++ {
			assert.True(t, rl.tryAcquire(), "attempt %d", i+1)
		}
		assert.False(t, rl.tryAcquire())
	})

	t.Run("refills over time", func(t *testing.T) {
		rl, clock := newTestLimiter(60)
		for i := 0; i < 60; i++ {
			require.True(t, rl.tryAcquire())
		}
		assert.False(t, rl.tryAcquire())

		clock.Advance(time.Second)
		assert.True(t, rl.tryAcquire())
		assert.False(t, rl.tryAcquire())
	})

	t.Run("never exceeds capacity", func(t *testing.T) {
		rl, clock := newTestLimiter(3)
		clock.Advance(time.Hour)
		assert.True(t, rl.tryAcquire())
		assert.Equal(t, 2, rl.available())
	})

	t.Run("reports delay until next token", func(t *testing.T) {
		rl, _ := newTestLimiter(60)
		for i := 0; i < 60; i++ {
			require.True(t, rl.tryAcquire())
		}
		delay, ok := rl.reserve()
		assert.False(t, ok)
		assert.InDelta(t, float64(time.Second), float64(delay), float64(10*time.Millisecond))
	})

	t.Run("default rate for non-positive input", func(t *testing.T) {
		rl := newRateLimiter(0)
		assert.Equal(t, DefaultRateLimit, rl.available())
	})

	t.Run("context cancellation", func(t *testing.T) {
		rl, _ := newTestLimiter(1)
		require.NoError(t, rl.wait(context.Background()))

		ctx, cancel := context.WithCancel(context.Background())
		done := make(chan error)
		go func() {
			done <- rl.wait(ctx)
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		err := <-done
		require.Error(t, err)
		assert.Contains(t, err.Error(), "rate limiter canceled")
	})

	t.Run("concurrent acquires", func(t *testing.T) {
		rl, _ := newTestLimiter(20)
		var wg sync.WaitGroup
		var mu sync.Mutex
		granted := 0
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if rl.tryAcquire() {
					mu.Lock()
					granted++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()
		assert.Equal(t, 20, granted)
	})
}
