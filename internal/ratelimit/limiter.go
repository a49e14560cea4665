package ratelimit

import (
	"math/rand"
	"sync"
	"time"
)

// pruneAt is the table size past which Try drops expired cooldowns.
const pruneAt = 256

// Cooldowns tracks when each user may start another battle. Every
// successful Try puts the user on a cooldown of random length in [min, max).
type Cooldowns struct {
	mu     sync.Mutex
	ready  map[string]time.Time
	min    time.Duration
	max    time.Duration
	now    func() time.Time
	jitter func(span time.Duration) time.Duration
}

type Option func(*Cooldowns)

// WithClock replaces time.Now, mostly for tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cooldowns) { c.now = now }
}

func New(min, max time.Duration, opts ...Option) *Cooldowns {
	if max < min {
		max = min
	}
	c := &Cooldowns{
		ready:  make(map[string]time.Time),
		min:    min,
		max:    max,
		now:    time.Now,
		jitter: func(span time.Duration) time.Duration { return time.Duration(rand.Int63n(int64(span))) },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Try starts a cooldown for user and reports true, or reports false with
// the time left if user is still cooling down.
func (c *Cooldowns) Try(user string) (bool, time.Duration) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if at, ok := c.ready[user]; ok && now.Before(at) {
		return false, at.Sub(now)
	}
	if len(c.ready) >= pruneAt {
		c.prune(now)
	}
	c.ready[user] = now.Add(c.length())
	return true, 0
}

// Remaining is the time left on user's cooldown, zero when none is running.
func (c *Cooldowns) Remaining(user string) time.Duration {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if at, ok := c.ready[user]; ok && now.Before(at) {
		return at.Sub(now)
	}
	return 0
}

func (c *Cooldowns) Reset(user string) {
	c.mu.Lock()
	delete(c.ready, user)
	c.mu.Unlock()
}

// Len counts tracked users, including expired ones not yet pruned.
func (c *Cooldowns) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ready)
}

func (c *Cooldowns) length() time.Duration {
	if c.min == c.max {
		return c.min
	}
	return c.min + c.jitter(c.max-c.min)
}

func (c *Cooldowns) prune(now time.Time) {
	for user, at := range c.ready {
		if !now.Before(at) {
			delete(c.ready, user)
		}
	}
}
