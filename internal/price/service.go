package price

import (
	"context"
	"sync"
	"time"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/cache"
)

// SatsPerBTC is the number of satoshis in one bitcoin.
const SatsPerBTC = 100_000_000

// Fetcher returns the current BTC/USD price.
type Fetcher interface {
	FetchUSD(ctx context.Context) (float64, error)
}

// Recorder observes cache behavior. metrics.Metrics satisfies it.
type Recorder interface {
	RecordPriceHit()
	RecordPriceMiss()
	RecordPriceFallback()
}

// Logger is the subset of config.Logger the service uses.
type Logger interface {
	Debug(format string, args ...any)
}

// Options configures a Service.
type Options struct {
	// Staleness is how long a fetched price is reused. Defaults to
	// cache.DefaultStaleness.
	Staleness time.Duration

	// FallbackUSD is shown when no price has ever been fetched and the
	// API is unreachable.
	FallbackUSD float64

	Recorder Recorder
	Logger   Logger
}

// Service refreshes the cached price on demand.
type Service struct {
	fetcher   Fetcher
	cache     *cache.PriceCache
	staleness time.Duration
	fallback  float64
	recorder  Recorder
	logger    Logger

	// refreshMu serializes fetches so concurrent callers share one request.
	refreshMu sync.Mutex
}

// NewService wires a fetcher to a cache.
func NewService(fetcher Fetcher, c *cache.PriceCache, opts Options) *Service {
	s := &Service{
		fetcher:   fetcher,
		cache:     c,
		staleness: opts.Staleness,
		fallback:  opts.FallbackUSD,
		recorder:  opts.Recorder,
		logger:    opts.Logger,
	}
	if s.staleness <= 0 {
		s.staleness = cache.DefaultStaleness
	}
	return s
}

// Refresh fetches a new price unless the cached one is fresh. On failure
// the quote still holds a usable price: the last fetched one if any,
// otherwise the fallback. The error is returned for logging only.
func (s *Service) Refresh(ctx context.Context) (cache.Quote, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	if !s.cache.IsStale(s.staleness) {
		if s.recorder != nil {
			s.recorder.RecordPriceHit()
		}
		q, _ := s.cache.Get()
		return q, nil
	}

	if s.recorder != nil {
		s.recorder.RecordPriceMiss()
	}

	usd, err := s.fetcher.FetchUSD(ctx)
	if err != nil {
		if s.recorder != nil {
			s.recorder.RecordPriceFallback()
		}
		if s.logger != nil {
			s.logger.Debug("price refresh failed: %v", err)
		}
		if _, ok := s.cache.Get(); !ok && s.fallback > 0 {
			s.cache.SetFallback(s.fallback)
		}
		q, _ := s.cache.Get()
		return q, err
	}

	s.cache.Set(usd)
	q, _ := s.cache.Get()
	return q, nil
}

// Current returns the cached quote without fetching.
func (s *Service) Current() cache.Quote {
	q, _ := s.cache.Get()
	return q
}

// ToUSD converts satoshis at the cached price. Zero when no price is known.
func (s *Service) ToUSD(sats int64) float64 {
	return float64(sats) / SatsPerBTC * s.Current().USD
}
