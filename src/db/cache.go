package db

import (
	"fmt"
	"sync"
	"time"

	"expensy-server/src/models"

	"github.com/dgraph-io/ristretto/v2"
)

// SummaryCache holds computed analytics summaries keyed by user id. A nil
// *SummaryCache is valid and caches nothing.
//
// Each user has a generation that Invalidate bumps. Callers read it with
// Generation before loading data and pass it to Set, which drops the write if
// the data changed in between.
type SummaryCache struct {
	cache *ristretto.Cache[string, models.Summary]
	ttl   time.Duration

	mu          sync.Mutex
	generations map[string]uint64
}

func NewSummaryCache(ttl time.Duration) (*SummaryCache, error) {
	if ttl <= 0 {
		return nil, nil
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, models.Summary]{
		NumCounters: 10000, // number of keys to track frequency of
		MaxCost:     10000,
		BufferItems: 64, // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}
	return &SummaryCache{cache: cache, ttl: ttl, generations: make(map[string]uint64)}, nil
}

func (c *SummaryCache) Get(userID string) (models.Summary, bool) {
	if c == nil {
		return models.Summary{}, false
	}
	return c.cache.Get(userID)
}

func (c *SummaryCache) Generation(userID string) uint64 {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[userID]
}

// Set stores s if no Invalidate happened since generation was read. It reports
// whether s was stored.
func (c *SummaryCache) Set(userID string, generation uint64, s models.Summary) bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[userID] != generation {
		return false
	}
	c.cache.SetWithTTL(userID, s, 1, c.ttl)
	c.cache.Wait()
	return true
}

func (c *SummaryCache) Invalidate(userID string) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generations[userID]++
	c.cache.Del(userID)
}

func (c *SummaryCache) Close() {
	if c == nil {
		return
	}
	c.cache.Close()
}
