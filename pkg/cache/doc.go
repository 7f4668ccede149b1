// Package cache provides a generic, thread-safe LRU cache with optional
// expiry.
//
//	answers := cache.New[string, bool](10_000, cache.WithTTL(5*time.Second))
//	answers.Put(id, true)
//	if ok, found := answers.Get(id); found {
//	    ...
//	}
//
// Get, Put and Remove are O(1). Expired entries are removed when they are
// next read or when they fall off the end of the recency list.
package cache
