package uploads

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// ViewURLKeyPrefix namespaces persisted cache entries in Redis. The uploads
// sweep job scans this namespace.
const ViewURLKeyPrefix = "view-url:"

// ViewURLCache memoizes presigned read URLs. It is an injected service with
// a TTL and a capacity bound; eviction removes the least recently updated
// entry. Redis persistence is opportunistic: failures are ignored and the
// in-memory view stays authoritative.
type ViewURLCache struct {
	mu       sync.Mutex
	entries  map[string]*viewURLEntry
	capacity int
	ttl      time.Duration
	client   *redis.Client
	group    singleflight.Group
	now      func() time.Time
}

type viewURLEntry struct {
	url       string
	expiresAt time.Time
	updatedAt time.Time
}

// NewViewURLCache constructs a cache. client may be nil to disable
// persistence; capacity <= 0 falls back to 200.
func NewViewURLCache(client *redis.Client, ttl time.Duration, capacity int) *ViewURLCache {
	if capacity <= 0 {
		capacity = 200
	}
	return &ViewURLCache{
		entries:  make(map[string]*viewURLEntry, capacity),
		capacity: capacity,
		ttl:      ttl,
		client:   client,
		now:      time.Now,
	}
}

// Get returns the memoized URL for objectKey, fetching on a miss. Concurrent
// misses for the same key collapse into one fetch.
func (c *ViewURLCache) Get(ctx context.Context, objectKey string, fetch func(ctx context.Context) (string, error)) (string, error) {
	if url, ok := c.lookup(objectKey); ok {
		return url, nil
	}

	value, err, _ := c.group.Do(objectKey, func() (any, error) {
		if url, ok := c.lookup(objectKey); ok {
			return url, nil
		}
		if url, ok := c.lookupRedis(ctx, objectKey); ok {
			c.store(objectKey, url)
			return url, nil
		}
		url, err := fetch(ctx)
		if err != nil {
			return "", err
		}
		c.store(objectKey, url)
		c.persist(ctx, objectKey, url)
		return url, nil
	})
	if err != nil {
		return "", err
	}
	return value.(string), nil
}

// Len reports the current entry count.
func (c *ViewURLCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *ViewURLCache) lookup(objectKey string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[objectKey]
	if !ok {
		return "", false
	}
	if c.now().After(entry.expiresAt) {
		delete(c.entries, objectKey)
		return "", false
	}
	return entry.url, true
}

func (c *ViewURLCache) store(objectKey, url string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	c.entries[objectKey] = &viewURLEntry{
		url:       url,
		expiresAt: now.Add(c.ttl),
		updatedAt: now,
	}
	for len(c.entries) > c.capacity {
		c.evictOldestLocked()
	}
}

// evictOldestLocked removes the least recently updated entry.
func (c *ViewURLCache) evictOldestLocked() {
	var oldestKey string
	var oldest time.Time
	for key, entry := range c.entries {
		if oldestKey == "" || entry.updatedAt.Before(oldest) {
			oldestKey = key
			oldest = entry.updatedAt
		}
	}
	if oldestKey != "" {
		delete(c.entries, oldestKey)
	}
}

func (c *ViewURLCache) lookupRedis(ctx context.Context, objectKey string) (string, bool) {
	if c.client == nil {
		return "", false
	}
	url, err := c.client.Get(ctx, ViewURLKeyPrefix+objectKey).Result()
	if err != nil || url == "" {
		return "", false
	}
	return url, true
}

func (c *ViewURLCache) persist(ctx context.Context, objectKey, url string) {
	if c.client == nil {
		return
	}
	_ = c.client.Set(ctx, ViewURLKeyPrefix+objectKey, url, c.ttl).Err()
}
