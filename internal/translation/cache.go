package translation

import (
	"strings"
	"sync"
)

type cacheKey struct {
	text string
	dir  Direction
}

// TranslationCache stores results in memory for batch operations
type TranslationCache struct {
	mu      sync.RWMutex
	results map[cacheKey]*Result
}

// NewTranslationCache creates a new translation cache
func NewTranslationCache() *TranslationCache {
	return &TranslationCache{
		results: make(map[cacheKey]*Result),
	}
}

// Add adds a result to the cache
func (tc *TranslationCache) Add(text string, dir Direction, result *Result) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	tc.results[cacheKey{strings.TrimSpace(text), dir}] = result
}

// Get retrieves a result from the cache
func (tc *TranslationCache) Get(text string, dir Direction) (*Result, bool) {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	result, ok := tc.results[cacheKey{strings.TrimSpace(text), dir}]
	return result, ok
}

// Len returns the number of cached results
func (tc *TranslationCache) Len() int {
	tc.mu.RLock()
	defer tc.mu.RUnlock()
	return len(tc.results)
}
