package suggest

import (
	"time"

	"github.com/jellydator/ttlcache/v3"

	"github.com/sst/ghosttext/internal/llm/models"
)

const (
	DefaultCacheTTL  = 5 * time.Minute
	DefaultCacheSize = 256
)

type cacheKey struct {
	model  models.ModelID
	before string
	after  string
}

// Cache remembers continuations for identical (model, before, after)
// contexts so that retyping the same text does not hit the network.
type Cache struct {
	items *ttlcache.Cache[cacheKey, string]
}

// NewCache starts a TTL cache. Close must be called to stop its janitor.
func NewCache(ttl time.Duration, capacity uint64) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if capacity == 0 {
		capacity = DefaultCacheSize
	}
	c := ttlcache.New[cacheKey, string](
		ttlcache.WithTTL[cacheKey, string](ttl),
		ttlcache.WithCapacity[cacheKey, string](capacity),
		ttlcache.WithDisableTouchOnHit[cacheKey, string](),
	)
	go c.Start()
	return &Cache{items: c}
}

func (c *Cache) Get(model models.ModelID, before, after string) (string, bool) {
	if c == nil {
		return "", false
	}
	item := c.items.Get(cacheKey{model: model, before: before, after: after})
	if item == nil {
		return "", false
	}
	return item.Value(), true
}

func (c *Cache) Set(model models.ModelID, before, after, continuation string) {
	if c == nil {
		return
	}
	c.items.Set(cacheKey{model: model, before: before, after: after}, continuation, ttlcache.DefaultTTL)
}

func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.items.Len()
}

// Close stops the expiration loop.
func (c *Cache) Close() {
	if c == nil {
		return
	}
	c.items.Stop()
}
