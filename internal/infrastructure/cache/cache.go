package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/jellydator/ttlcache/v3"
)

// TTLCache memoizes external-service responses with a per-entry TTL. Entries
// are immutable once set and failures are never cached, so a transient error
// cannot poison later requests. Safe for concurrent use.
type TTLCache[V any] struct {
	items *ttlcache.Cache[string, V]
}

// New creates a cache whose entries expire after ttl.
func New[V any](ttl time.Duration) *TTLCache[V] {
	items := ttlcache.New[string, V](
		ttlcache.WithTTL[string, V](ttl),
		ttlcache.WithDisableTouchOnHit[string, V](),
	)
	go items.Start()
	return &TTLCache[V]{items: items}
}

// Get returns the cached value for key, if present and unexpired.
func (c *TTLCache[V]) Get(key string) (V, bool) {
	item := c.items.Get(key)
	if item == nil {
		var zero V
		return zero, false
	}
	return item.Value(), true
}

// Set stores value under key with the cache's default TTL.
func (c *TTLCache[V]) Set(key string, value V) {
	c.items.Set(key, value, ttlcache.DefaultTTL)
}

// Stop terminates the background expiration loop.
func (c *TTLCache[V]) Stop() {
	c.items.Stop()
}

// Key digests a normalized input string into the cache key format.
func Key(input string) string {
	digest := sha256.Sum256([]byte(input))
	return hex.EncodeToString(digest[:])
}
