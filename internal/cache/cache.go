// Package cache provides the shared caches behind the resolution engine.
// Storage and time are injected so tests control TTL expiry deterministically.
package cache

import (
	"context"
	"errors"
	"time"
)

// TTLs for the process-wide caches.
const (
	// RuleTTL is the maximum age of the redirect-rule snapshot.
	RuleTTL = time.Hour
	// GoneTTL is the maximum age of a gone-status verdict.
	GoneTTL = time.Hour
)

// Key prefixes per concern.
const (
	RuleKeyPrefix = "rules:"
	GoneKeyPrefix = "gone:"
)

// ErrCacheMiss indicates the key is absent or expired.
var ErrCacheMiss = errors.New("cache miss")

// Clock abstracts wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the real time.
type SystemClock struct{}

// Now returns the current time.
func (SystemClock) Now() time.Time { return time.Now() }

// ManualClock is a settable clock for tests.
type ManualClock struct {
	Current time.Time
}

// Now returns the manually set time.
func (c *ManualClock) Now() time.Time { return c.Current }

// Advance moves the clock forward.
func (c *ManualClock) Advance(d time.Duration) { c.Current = c.Current.Add(d) }

// Store is a byte-value cache with per-entry TTL.
type Store interface {
	// Get returns the value for key, or ErrCacheMiss when absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores the value under key for at most ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key.
	Delete(ctx context.Context, key string) error

	// Purge removes every entry under the given key prefix.
	Purge(ctx context.Context, prefix string) error
}
