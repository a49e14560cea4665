package ratelimit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct{ t time.Time }

func (c *fakeClock) now() time.Time { return c.t }

func TestTryFixedCooldown(t *testing.T) {
	clk := &fakeClock{t: time.Unix(1_700_000_000, 0)}
	c := New(10*time.Second, 10*time.Second, WithClock(clk.now))

	ok, _ := c.Try("ash")
	require.True(t, ok)

	clk.t = clk.t.Add(4 * time.Second)
	ok, rem := c.Try("ash")
	assert.False(t, ok)
	assert.Equal(t, 6*time.Second, rem)
	assert.Equal(t, 6*time.Second, c.Remaining("ash"))

	ok, _ = c.Try("misty")
	assert.True(t, ok, "users are independent")

	clk.t = clk.t.Add(6 * time.Second)
	assert.Zero(t, c.Remaining("ash"))
	ok, _ = c.Try("ash")
	assert.True(t, ok)
}

func TestJitterStaysInRange(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	c := New(5*time.Second, 10*time.Second, WithClock(clk.now))

	for i := 0; i < 50; i++ {
		c.Reset("ash")
		ok, _ := c.Try("ash")
		require.True(t, ok)

		d := c.Remaining("ash")
		assert.GreaterOrEqual(t, d, 5*time.Second)
		assert.Less(t, d, 10*time.Second)
	}
}

func TestResetClearsCooldown(t *testing.T) {
	c := New(time.Hour, time.Hour)

	ok, _ := c.Try("brock")
	require.True(t, ok)
	ok, _ = c.Try("brock")
	require.False(t, ok)

	c.Reset("brock")
	assert.Zero(t, c.Remaining("brock"))

	ok, _ = c.Try("brock")
	assert.True(t, ok)
}

func TestMaxBelowMin(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	c := New(3*time.Second, time.Second, WithClock(clk.now))

	c.Try("ash")
	assert.Equal(t, 3*time.Second, c.Remaining("ash"))
}

func TestExpiredCooldownsArePruned(t *testing.T) {
	clk := &fakeClock{t: time.Unix(0, 0)}
	c := New(time.Second, time.Second, WithClock(clk.now))

	for i := 0; i < pruneAt; i++ {
		c.Try(fmt.Sprintf("trainer-%d", i))
	}
	require.Equal(t, pruneAt, c.Len())

	clk.t = clk.t.Add(2 * time.Second)
	ok, _ := c.Try("latecomer")
	require.True(t, ok)
	assert.Equal(t, 1, c.Len())
}
