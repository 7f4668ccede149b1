package store_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
	"github.com/dmitrymomot/authgate/pkg/store"
)

type countingPredicate struct {
	calls  atomic.Int32
	exists atomic.Bool
	err    atomic.Pointer[error]
}

func (p *countingPredicate) Exists(context.Context, authenticator.Authenticator) (bool, error) {
	p.calls.Add(1)
	if errp := p.err.Load(); errp != nil {
		return false, *errp
	}
	return p.exists.Load(), nil
}

func TestCached(t *testing.T) {
	ctx := context.Background()
	a := newAuthenticator(time.Now().Add(time.Hour))

	t.Run("caches positive answers", func(t *testing.T) {
		p := &countingPredicate{}
		p.exists.Store(true)
		exists := store.Cached(p.Exists, 10, time.Minute)

		for range 3 {
			ok, err := exists(ctx, a)
			require.NoError(t, err)
			assert.True(t, ok)
		}
		assert.Equal(t, int32(1), p.calls.Load())
	})

	t.Run("caches negative answers", func(t *testing.T) {
		p := &countingPredicate{}
		exists := store.Cached(p.Exists, 10, time.Minute)

		for range 2 {
			ok, err := exists(ctx, a)
			require.NoError(t, err)
			assert.False(t, ok)
		}
		assert.Equal(t, int32(1), p.calls.Load())
	})

	t.Run("never caches errors", func(t *testing.T) {
		p := &countingPredicate{}
		storeErr := errors.New("redis: connection pool timeout")
		p.err.Store(&storeErr)
		exists := store.Cached(p.Exists, 10, time.Minute)

		_, err := exists(ctx, a)
		assert.ErrorIs(t, err, storeErr)

		p.err.Store(nil)
		p.exists.Store(true)

		ok, err := exists(ctx, a)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, int32(2), p.calls.Load())
	})

	t.Run("entries expire after ttl", func(t *testing.T) {
		p := &countingPredicate{}
		p.exists.Store(true)
		exists := store.Cached(p.Exists, 10, 20*time.Millisecond)

		_, _ = exists(ctx, a)
		time.Sleep(40 * time.Millisecond)
		p.exists.Store(false)

		ok, err := exists(ctx, a)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Equal(t, int32(2), p.calls.Load())
	})

	t.Run("invalid arguments panic", func(t *testing.T) {
		p := &countingPredicate{}
		assert.Panics(t, func() { store.Cached(nil, 10, time.Minute) })
		assert.Panics(t, func() { store.Cached(p.Exists, 10, 0) })
		assert.Panics(t, func() { store.Cached(p.Exists, 0, time.Minute) })
	})
}
