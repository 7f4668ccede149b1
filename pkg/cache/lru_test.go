package cache_test

import (
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/cache"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestLRU_PutGet(t *testing.T) {
	c := cache.New[string, int](3)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Put("a", 1)
	c.Put("a", 2)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	assert.Equal(t, 1, c.Len())

	assert.True(t, c.Remove("a"))
	assert.False(t, c.Remove("a"))
	assert.Zero(t, c.Len())
}

func TestLRU_EvictsLeastRecentlyUsed(t *testing.T) {
	c := cache.New[string, int](2)
	c.Put("a", 1)
	c.Put("b", 2)
	_, _ = c.Get("a")
	c.Put("c", 3)

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
	assert.Equal(t, 2, c.Len())
}

func TestLRU_TTL(t *testing.T) {
	clk := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := cache.New[string, bool](4, cache.WithTTL(time.Second), cache.WithClock(clk.Now))

	c.Put("a", true)
	clk.Advance(999 * time.Millisecond)
	_, ok := c.Get("a")
	assert.True(t, ok)

	c.Put("a", false)
	clk.Advance(999 * time.Millisecond)
	v, ok := c.Get("a")
	require.True(t, ok, "put resets expiry")
	assert.False(t, v)

	clk.Advance(time.Millisecond)
	_, ok = c.Get("a")
	assert.False(t, ok)
	assert.Zero(t, c.Len())
}

func TestLRU_Clear(t *testing.T) {
	c := cache.New[int, int](8)
	for i := range 5 {
		c.Put(i, i)
	}
	c.Clear()
	assert.Zero(t, c.Len())
	_, ok := c.Get(1)
	assert.False(t, ok)
}

func TestLRU_PanicsOnInvalidCapacity(t *testing.T) {
	assert.Panics(t, func() { cache.New[string, int](0) })
}

func TestLRU_Concurrent(t *testing.T) {
	c := cache.New[string, int](64)
	var wg sync.WaitGroup
	for g := range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 200 {
				key := strconv.Itoa((g*200 + i) % 100)
				c.Put(key, i)
				_, _ = c.Get(key)
			}
		}()
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 64)
}

func BenchmarkLRU_Get(b *testing.B) {
	c := cache.New[string, bool](1024, cache.WithTTL(time.Minute))
	c.Put("id", true)
	for b.Loop() {
		_, _ = c.Get("id")
	}
}
