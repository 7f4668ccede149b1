package store

import (
	"context"
	"time"

	"github.com/dmitrymomot/authgate/pkg/authenticator"
	"github.com/dmitrymomot/authgate/pkg/cache"
	"github.com/dmitrymomot/authgate/pkg/validator"
)

// Cached wraps an existence predicate with an LRU cache keyed by authenticator id.
// Both positive and negative answers are kept for ttl; errors are never cached,
// so a store outage is retried on the next call.
//
// Revocations become visible after at most ttl. Panics if capacity or ttl is not positive.
func Cached(exists validator.Predicate, capacity int, ttl time.Duration) validator.Predicate {
	if exists == nil {
		panic("store: predicate is required")
	}
	if ttl <= 0 {
		panic("store: cache ttl must be positive")
	}

	answers := cache.New[string, bool](capacity, cache.WithTTL(ttl))

	return func(ctx context.Context, a authenticator.Authenticator) (bool, error) {
		if ok, found := answers.Get(a.ID); found {
			return ok, nil
		}

		ok, err := exists(ctx, a)
		if err != nil {
			return false, err
		}
		answers.Put(a.ID, ok)
		return ok, nil
	}
}
