package price

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/cache"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/metrics"
)

var errPriceDown = errors.New("price api down")

// fakeFetcher counts calls and returns a scripted answer.
type fakeFetcher struct {
	calls atomic.Int32
	usd   float64
	err   error
	gate  chan struct{}
}

func (f *fakeFetcher) FetchUSD(ctx context.Context) (float64, error) {
	f.calls.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}
	return f.usd, f.err
}

var testNow = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC) //nolint:gochecknoglobals // fixed test clock

func newService(f Fetcher, c *cache.PriceCache, rec Recorder) *Service {
	return NewService(f, c, Options{
		Staleness:   cache.DefaultStaleness,
		FallbackUSD: 65000,
		Recorder:    rec,
	})
}

func TestRefresh_Staleness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		age         time.Duration
		expectFetch bool
	}{
		{"four minutes old", 4 * time.Minute, false},
		{"six minutes old", 6 * time.Minute, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			c := cache.NewPriceCache(func() time.Time { return testNow })
			c.SetAt(60000, testNow.Add(-tc.age))
			f := &fakeFetcher{usd: 70000}

			q, err := newService(f, c, nil).Refresh(context.Background())
			require.NoError(t, err)

			if tc.expectFetch {
				assert.Equal(t, int32(1), f.calls.Load())
				assert.InDelta(t, 70000, q.USD, 0.001)
				assert.Equal(t, testNow, q.LastUpdated)
			} else {
				assert.Zero(t, f.calls.Load())
				assert.InDelta(t, 60000, q.USD, 0.001)
			}
		})
	}
}

func TestRefresh_EmptyCacheFetches(t *testing.T) {
	t.Parallel()
	f := &fakeFetcher{usd: 70000}
	m := &metrics.Metrics{}
	s := newService(f, cache.NewPriceCache(nil), m)

	_, err := s.Refresh(context.Background())
	require.NoError(t, err)
	_, err = s.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(1), f.calls.Load())
	snap := m.Snapshot()
	assert.Equal(t, int64(1), snap.PriceMisses)
	assert.Equal(t, int64(1), snap.PriceHits)
}

func TestRefresh_FailureWithEmptyCacheUsesFallback(t *testing.T) {
	t.Parallel()
	f := &fakeFetcher{err: errPriceDown}
	c := cache.NewPriceCache(nil)
	m := &metrics.Metrics{}
	s := newService(f, c, m)

	q, err := s.Refresh(context.Background())
	require.ErrorIs(t, err, errPriceDown)
	assert.InDelta(t, 65000, q.USD, 0.001)
	assert.True(t, q.Fallback)
	assert.Equal(t, int64(1), m.Snapshot().PriceFallbacks)

	// The fallback is not fresh, so the next refresh tries again.
	f.err = nil
	f.usd = 71000
	q, err = s.Refresh(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 71000, q.USD, 0.001)
	assert.False(t, q.Fallback)
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestRefresh_FailureKeepsPreviousPrice(t *testing.T) {
	t.Parallel()
	c := cache.NewPriceCache(func() time.Time { return testNow })
	c.SetAt(58000, testNow.Add(-10*time.Minute))
	s := newService(&fakeFetcher{err: errPriceDown}, c, nil)

	q, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.InDelta(t, 58000, q.USD, 0.001)
	assert.False(t, q.Fallback)
}

func TestRefresh_NoFallbackConfigured(t *testing.T) {
	t.Parallel()
	s := NewService(&fakeFetcher{err: errPriceDown}, cache.NewPriceCache(nil), Options{})

	q, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.Zero(t, q.USD)
}

func TestRefresh_ConcurrentCallersShareOneFetch(t *testing.T) {
	t.Parallel()
	f := &fakeFetcher{usd: 70000, gate: make(chan struct{})}
	s := newService(f, cache.NewPriceCache(nil), nil)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.Refresh(context.Background())
		}()
	}

	require.Eventually(t, func() bool { return f.calls.Load() == 1 }, time.Second, time.Millisecond)
	close(f.gate)
	wg.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
}

func TestToUSD(t *testing.T) {
	t.Parallel()
	c := cache.NewPriceCache(nil)
	s := newService(&fakeFetcher{}, c, nil)

	assert.Zero(t, s.ToUSD(100_000))

	c.Set(50000)
	assert.InDelta(t, 50.0, s.ToUSD(100_000), 0.0001)
	assert.InDelta(t, 50000.0, s.ToUSD(SatsPerBTC), 0.0001)
}
