package cache

import (
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
)

type CacheEntry struct {
	Value      interface{}
	Expiration time.Time
}

// Cache holds values for a limited time. Concurrent misses on the same key
// share a single call to the create function.
type Cache struct {
	data      sync.Map
	group     singleflight.Group
	itemCount int32
	now       func() time.Time
}

func (c *Cache) clock() time.Time {
	if c.now != nil {
		return c.now()
	}
	return time.Now()
}

// GetOrCreate returns the cached value for key or stores the result of
// createFn for ttl. Errors are not cached; a ttl of zero or less disables
// storage entirely.
func (c *Cache) GetOrCreate(key string, ttl time.Duration, createFn func() (interface{}, error)) (interface{}, error) {
	if value, ok := c.data.Load(key); ok {
		cacheEntry := value.(CacheEntry)
		if cacheEntry.Expiration.After(c.clock()) {
			return cacheEntry.Value, nil
		} else {
			c.CleanUp()
		}
	}

	value, err, _ := c.group.Do(key, func() (interface{}, error) {
		if value, ok := c.data.Load(key); ok {
			cacheEntry := value.(CacheEntry)
			if cacheEntry.Expiration.After(c.clock()) {
				return cacheEntry.Value, nil
			}
		}

		v, err := createFn()
		if err != nil {
			return nil, err
		}

		if ttl <= 0 {
			return v, nil
		}

		entry := CacheEntry{
			Value:      v,
			Expiration: c.clock().Add(ttl),
		}
		if _, loaded := c.data.Swap(key, entry); !loaded {
			atomic.AddInt32(&c.itemCount, 1)
		}
		return v, nil
	})

	return value, err
}

func (c *Cache) Len() int {
	return int(atomic.LoadInt32(&c.itemCount))
}

func (c *Cache) CleanUp() {
	if atomic.LoadInt32(&c.itemCount) == 0 {
		return
	}

	now := c.clock()
	c.data.Range(func(key, value interface{}) bool {
		entry := value.(CacheEntry)
		if !entry.Expiration.After(now) {
			if _, loaded := c.data.LoadAndDelete(key); loaded {
				atomic.AddInt32(&c.itemCount, -1)
			}
		}
		return true
	})
}
