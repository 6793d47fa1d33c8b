// Package cache persists the rendered feed document for a bounded time.
//
// There is exactly one cached entry: the feed is global, not per league.
// Expiry is checked lazily on read; nothing sweeps the store in the
// background.
package cache

import "context"

// Annotation is appended to a document served from cache so a consumer can
// tell it apart from a freshly rendered one.
const Annotation = "<!-- cached result -->"

// Store is the interface for the single-entry feed cache. Get returns the
// stored document with the cache annotation appended, and false when no
// valid entry exists — an absent, malformed or expired entry is a miss,
// never an error. Put overwrites any prior entry with an expiry of now plus
// ttlSeconds.
type Store interface {
	Get(ctx context.Context) (string, bool)
	Put(ctx context.Context, doc string, ttlSeconds int) error
	Close() error
}
