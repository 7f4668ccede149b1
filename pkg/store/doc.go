// Package store provides an in-memory authenticator store and decorators for
// backing-store existence predicates.
//
// Memory implements authenticator.Repository, and its Exists method can be
// passed directly to validator.BackingStore:
//
//	mem := store.NewMemory(store.WithCleanupInterval(time.Minute))
//	defer mem.Close()
//
//	engine := validator.Compose(
//		validator.Expiry(nil),
//		validator.BackingStore(mem.Exists),
//	)
//
// Remote stores (see the redis, pg and mongo packages) are usually wrapped
// with Cached to avoid a round trip on every request:
//
//	exists := store.Cached(pgStore.Exists, 10_000, 30*time.Second)
//	engine := validator.Compose(validator.BackingStore(exists))
//
// Errors returned by a wrapped predicate are passed through unchanged and are
// never cached.
package store
