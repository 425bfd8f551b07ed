package llm

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Veraticus/chitieu/internal/model"
)

func (c *extractionCache) size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func TestExtractionCache(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 11, 9, 0, 0, 0, time.UTC)}
	cache := newExtractionCache(time.Minute)
	cache.now = clock.Now

	expense := model.ExtractedExpense{Amount: 20000, CategoryID: "books", Confidence: model.ConfidenceHigh}
	key := cacheKey("Mua sách 20k ", clock.Now())

	_, found := cache.get(key)
	assert.False(t, found)

	cache.set(key, expense)
	got, found := cache.get(cacheKey("mua sách 20k", clock.Now()))
	assert.True(t, found)
	assert.Equal(t, expense, got)

	t.Run("keyed by day", func(t *testing.T) {
		_, found := cache.get(cacheKey("mua sách 20k", clock.Now().AddDate(0, 0, 1)))
		assert.False(t, found)
	})

	t.Run("expires", func(t *testing.T) {
		clock.Advance(2 * time.Minute)
		_, found := cache.get(key)
		assert.False(t, found)

		cache.set(cacheKey("cafe 30k", clock.Now()), expense)
		assert.Equal(t, 1, cache.size(), "expired entries are pruned on write")
	})
}
