package utils

import (
	"context"
	"sync"
	"time"

	"jackpot-go/models"

	"go.uber.org/zap"
)

// cacheEntry is one cached stats lookup
type cacheEntry struct {
	stats     models.PlayStats
	expiresAt time.Time
}

// StatsCache keeps recent /jackpotstats lookups so repeated calls don't hit
// the database. Entries are dropped when the user finishes another game.
type StatsCache struct {
	data  map[int64]*cacheEntry
	mutex sync.RWMutex
	ttl   time.Duration
	now   func() time.Time
}

// NewStatsCache creates a cache whose entries live for ttl
func NewStatsCache(ttl time.Duration) *StatsCache {
	return &StatsCache{
		data: make(map[int64]*cacheEntry),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Get returns a copy of the cached stats for userID
func (sc *StatsCache) Get(userID int64) (*models.PlayStats, bool) {
	sc.mutex.RLock()
	entry, exists := sc.data[userID]
	sc.mutex.RUnlock()

	if !exists {
		return nil, false
	}
	if sc.now().After(entry.expiresAt) {
		sc.mutex.Lock()
		if sc.data[userID] == entry {
			delete(sc.data, userID)
		}
		sc.mutex.Unlock()
		return nil, false
	}
	return copyStats(&entry.stats), true
}

// Set stores a copy of stats
func (sc *StatsCache) Set(userID int64, stats *models.PlayStats) {
	if stats == nil {
		return
	}
	entry := &cacheEntry{
		stats:     *copyStats(stats),
		expiresAt: sc.now().Add(sc.ttl),
	}

	sc.mutex.Lock()
	sc.data[userID] = entry
	sc.mutex.Unlock()
}

// Delete removes a user from cache
func (sc *StatsCache) Delete(userID int64) {
	sc.mutex.Lock()
	delete(sc.data, userID)
	sc.mutex.Unlock()
}

// Size returns the number of entries in cache
func (sc *StatsCache) Size() int {
	sc.mutex.RLock()
	defer sc.mutex.RUnlock()
	return len(sc.data)
}

// Prune removes expired entries and returns how many went
func (sc *StatsCache) Prune() int {
	now := sc.now()

	sc.mutex.Lock()
	defer sc.mutex.Unlock()
	removed := 0
	for userID, entry := range sc.data {
		if now.After(entry.expiresAt) {
			delete(sc.data, userID)
			removed++
		}
	}
	return removed
}

// RunCleanup prunes the cache every interval until ctx is done
func (sc *StatsCache) RunCleanup(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := sc.Prune(); n > 0 {
				Log.Debug("pruned stats cache", zap.Int("removed", n), zap.Int("size", sc.Size()))
			}
		case <-ctx.Done():
			return
		}
	}
}

func copyStats(s *models.PlayStats) *models.PlayStats {
	out := *s
	out.ByOutcome = make(map[string]int, len(s.ByOutcome))
	for k, v := range s.ByOutcome {
		out.ByOutcome[k] = v
	}
	if s.LastPlayed != nil {
		t := *s.LastPlayed
		out.LastPlayed = &t
	}
	return &out
}
