package bot

import (
	"context"
	"sync"
	"time"

	"github.com/crownbeat/crownbeat/internal/adapter"
)

// Cooldown is a keyed per-user rate limiter for commands: a mapping from user
// id to last invocation time with an expiry check. It is injected into the
// command layer rather than held as ambient static state.
type Cooldown struct {
	mu     sync.Mutex
	window time.Duration
	last   map[string]time.Time
	clock  adapter.Clock
}

// NewCooldown creates a cooldown limiter with the given window
func NewCooldown(window time.Duration, clock adapter.Clock) *Cooldown {
	return &Cooldown{
		window: window,
		last:   make(map[string]time.Time),
		clock:  clock,
	}
}

// Allow records an invocation attempt for the user. It returns false and the
// remaining wait when the user is still inside their cooldown window.
func (c *Cooldown) Allow(userID string) (bool, time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	if last, ok := c.last[userID]; ok {
		if elapsed := now.Sub(last); elapsed < c.window {
			return false, c.window - elapsed
		}
	}
	c.last[userID] = now
	return true, 0
}

// Sweep drops entries older than the cooldown window
func (c *Cooldown) Sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	for userID, last := range c.last {
		if now.Sub(last) >= c.window {
			delete(c.last, userID)
		}
	}
}

// StartSweeper periodically sweeps expired entries until the context is canceled
func (c *Cooldown) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-c.clock.After(interval):
				c.Sweep()
			}
		}
	}()
}
