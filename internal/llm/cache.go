package llm

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/Veraticus/chitieu/internal/model"
)

// cacheEntry is a successful extraction remembered for a while.
type cacheEntry struct {
	expiry  time.Time
	expense model.ExtractedExpense
}

// extractionCache remembers successful AI extractions so that resending the
// same message on the same day does not call the provider again. Expired
// entries are dropped when the cache is written to.
type extractionCache struct {
	entries map[string]cacheEntry
	now     func() time.Time
	ttl     time.Duration
	mu      sync.RWMutex
}

func newExtractionCache(ttl time.Duration) *extractionCache {
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	return &extractionCache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// cacheKey scopes text to the day it was sent, since relative dates in the
// message resolve differently on another day.
func cacheKey(text string, day time.Time) string {
	normalized := strings.ToLower(strings.TrimSpace(norm.NFC.String(text)))
	return day.Format("2006-01-02") + "|" + normalized
}

func (c *extractionCache) get(key string) (model.ExtractedExpense, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.entries[key]
	if !exists || c.now().After(entry.expiry) {
		return model.ExtractedExpense{}, false
	}
	return entry.expense, true
}

func (c *extractionCache) set(key string, expense model.ExtractedExpense) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, entry := range c.entries {
		if now.After(entry.expiry) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = cacheEntry{
		expense: expense,
		expiry:  now.Add(c.ttl),
	}
}
