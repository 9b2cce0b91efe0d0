package router

import (
	"sync"
)

// defaultCacheMaxSize is the default bound for a CachedCompiler.
const defaultCacheMaxSize = 1000

// cacheKey identifies a compiled pattern: the same template compiles
// differently under case-sensitive and case-insensitive matching.
type cacheKey struct {
	template      string
	caseSensitive bool
}

// cacheEntry holds a compiled pattern and its access order for LRU
// eviction.
type cacheEntry struct {
	pattern     *Pattern
	accessOrder int64
}

// CachedCompiler is a bounded LRU cache over CompilePattern. The core
// match contract compiles every candidate on demand; callers that want
// memoization inject a CachedCompiler via WithCompiler. Compiled
// patterns are immutable, so cached values are safe to share across
// goroutines.
type CachedCompiler struct {
	mu            sync.Mutex
	entries       map[cacheKey]*cacheEntry
	maxSize       int
	accessCounter int64
}

// NewCachedCompiler creates a CachedCompiler bounded to maxSize
// entries. A non-positive maxSize uses the default bound.
func NewCachedCompiler(maxSize int) *CachedCompiler {
	if maxSize <= 0 {
		maxSize = defaultCacheMaxSize
	}
	return &CachedCompiler{
		entries: make(map[cacheKey]*cacheEntry),
		maxSize: maxSize,
	}
}

// Compile returns the cached pattern for the template, compiling and
// caching it on a miss. Compilation failures are never cached.
func (c *CachedCompiler) Compile(template string, caseSensitive bool) (*Pattern, error) {
	metrics := routerMetrics()
	key := cacheKey{template: template, caseSensitive: caseSensitive}

	c.mu.Lock()
	if entry, ok := c.entries[key]; ok {
		c.accessCounter++
		entry.accessOrder = c.accessCounter
		c.mu.Unlock()

		metrics.cacheHits.Inc()
		return entry.pattern, nil
	}
	c.mu.Unlock()

	metrics.cacheMisses.Inc()

	// Compile outside the lock (expensive operation).
	pattern, err := CompilePattern(template, caseSensitive)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have compiled the same template meanwhile.
	if entry, ok := c.entries[key]; ok {
		c.accessCounter++
		entry.accessOrder = c.accessCounter
		return entry.pattern, nil
	}

	if len(c.entries) >= c.maxSize {
		c.evictLRU()
		metrics.cacheEvictions.Inc()
	}

	c.accessCounter++
	c.entries[key] = &cacheEntry{
		pattern:     pattern,
		accessOrder: c.accessCounter,
	}
	metrics.cacheSize.Set(float64(len(c.entries)))

	return pattern, nil
}

// Len returns the current number of cached patterns.
func (c *CachedCompiler) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// evictLRU removes the least recently used entry. Must be called with
// c.mu held.
func (c *CachedCompiler) evictLRU() {
	var (
		lruKey   cacheKey
		lruOrder int64 = -1
	)

	for key, entry := range c.entries {
		if lruOrder == -1 || entry.accessOrder < lruOrder {
			lruOrder = entry.accessOrder
			lruKey = key
		}
	}

	if lruOrder != -1 {
		delete(c.entries, lruKey)
	}
}
