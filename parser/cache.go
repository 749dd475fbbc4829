package parser

import (
	"sync/atomic"

	"golang.org/x/sync/singleflight"

	"github.com/willibrandon/msgtmpl/internal/cache"
)

// CacheStats is a snapshot of the template cache counters.
type CacheStats = cache.Stats

type templateCache struct {
	entries *cache.LRUCache[*MessageTemplate]
	group   singleflight.Group
}

var globalCache atomic.Pointer[templateCache]

func init() {
	ConfigureCache(cache.DefaultCapacity)
}

// ConfigureCache replaces the template cache with an empty one holding at
// most capacity templates. Call it at startup; templates cached so far are
// dropped.
func ConfigureCache(capacity int) {
	globalCache.Store(&templateCache{entries: cache.NewLRUCache[*MessageTemplate](capacity)})
}

// ParseCached parses template, reusing an earlier result for the same
// string. Concurrent misses for one template parse it once. Failed parses
// are not cached.
func ParseCached(template string) (*MessageTemplate, error) {
	c := globalCache.Load()
	if tmpl, ok := c.entries.Get(template); ok {
		return tmpl, nil
	}

	v, err, _ := c.group.Do(template, func() (any, error) {
		tmpl, err := Parse(template)
		if err != nil {
			return nil, err
		}
		c.entries.Put(template, tmpl)
		return tmpl, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*MessageTemplate), nil
}

// ClearCache drops every cached template.
func ClearCache() {
	globalCache.Load().entries.Clear()
}

// GetCacheStats returns the template cache counters.
func GetCacheStats() CacheStats {
	return globalCache.Load().entries.Stats()
}
