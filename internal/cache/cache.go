// Package cache holds the in-memory BTC/USD spot price. It is never written
// to disk; a new process starts with an empty cache.
package cache

import (
	"sync"
	"time"
)

// DefaultStaleness is how long a fetched price is considered fresh.
const DefaultStaleness = 5 * time.Minute

// Quote is a cached spot price.
type Quote struct {
	// USD is the price of one bitcoin in US dollars.
	USD float64 `json:"usd"`

	// LastUpdated is when USD was fetched. Zero for fallback prices.
	LastUpdated time.Time `json:"last_updated"`

	// Fallback is true when USD is the configured default rather than a
	// fetched price.
	Fallback bool `json:"fallback"`
}

// PriceCache is a single {usd, lastUpdated} pair guarded for concurrent use.
type PriceCache struct {
	mu    sync.RWMutex
	quote Quote
	now   func() time.Time
}

// NewPriceCache returns an empty cache. A nil clock means time.Now.
func NewPriceCache(now func() time.Time) *PriceCache {
	if now == nil {
		now = time.Now
	}
	return &PriceCache{now: now}
}

// Get returns the cached quote and whether it holds a usable price.
func (c *PriceCache) Get() (Quote, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.quote, c.quote.USD > 0
}

// Set stores a freshly fetched price.
func (c *PriceCache) Set(usd float64) {
	c.SetAt(usd, c.now())
}

// SetAt stores a price fetched at a specific time.
func (c *PriceCache) SetAt(usd float64, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quote = Quote{USD: usd, LastUpdated: at}
}

// SetFallback stores usd without marking it fresh, so the next refresh
// still goes to the network.
func (c *PriceCache) SetFallback(usd float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quote = Quote{USD: usd, Fallback: true}
}

// Age returns how long ago the price was fetched, or -1 if it never was.
func (c *PriceCache) Age() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.quote.LastUpdated.IsZero() {
		return -1
	}
	return c.now().Sub(c.quote.LastUpdated)
}

// IsStale reports whether a refresh should fetch: nothing fetched yet, or
// the last fetch is older than staleness.
func (c *PriceCache) IsStale(staleness time.Duration) bool {
	age := c.Age()
	return age < 0 || age > staleness
}

// Clear empties the cache.
func (c *PriceCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quote = Quote{}
}
