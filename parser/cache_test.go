package parser

import (
	"errors"
	"fmt"
	"sync"
	"testing"
)

func TestParseCached(t *testing.T) {
	ConfigureCache(2)
	defer ConfigureCache(0)

	first, err := ParseCached("User {Id}")
	if err != nil {
		t.Fatalf("ParseCached() error = %v", err)
	}
	second, _ := ParseCached("User {Id}")
	if first != second {
		t.Error("expected the cached template to be reused")
	}

	ParseCached("b {x}")
	ParseCached("c {x}")

	stats := GetCacheStats()
	if stats.Size != 2 || stats.Capacity != 2 {
		t.Errorf("stats = %+v, want size 2 capacity 2", stats)
	}
	if stats.Evictions != 1 {
		t.Errorf("evictions = %d, want 1", stats.Evictions)
	}

	ClearCache()
	if GetCacheStats().Size != 0 {
		t.Error("ClearCache did not empty the cache")
	}
}

func TestParseCachedDoesNotCacheFailures(t *testing.T) {
	ConfigureCache(8)
	defer ConfigureCache(0)

	if _, err := ParseCached(""); !errors.Is(err, ErrInvalidTemplate) {
		t.Fatalf("ParseCached(\"\") error = %v", err)
	}
	if GetCacheStats().Size != 0 {
		t.Error("failed parse was cached")
	}
}

func TestParseCachedConcurrent(t *testing.T) {
	ConfigureCache(16)
	defer ConfigureCache(0)

	var wg sync.WaitGroup
	results := make([]*MessageTemplate, 64)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tmpl, err := ParseCached(fmt.Sprintf("shared {v%d}", i%4))
			if err != nil {
				t.Errorf("ParseCached() error = %v", err)
				return
			}
			results[i] = tmpl
		}(i)
	}
	wg.Wait()

	if size := GetCacheStats().Size; size != 4 {
		t.Errorf("cache size = %d, want 4", size)
	}
}
