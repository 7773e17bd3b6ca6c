// Package metrics keeps process-local counters for backend traffic, fetch
// suppression, price cache behavior and wallet list writes.
package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics holds counters updated with atomic operations.
type Metrics struct {
	// Backend metrics
	backendCallsTotal   atomic.Int64
	backendErrorsTotal  atomic.Int64
	backendLatencyNanos atomic.Int64
	endpointCalls       sync.Map // endpoint -> *atomic.Int64

	// Session fetch metrics
	fetchesStarted    atomic.Int64
	fetchesSuppressed atomic.Int64
	alertsRaised      atomic.Int64

	// Price cache metrics
	priceHits      atomic.Int64
	priceMisses    atomic.Int64
	priceFallbacks atomic.Int64

	// Wallet store metrics
	walletOpsTotal  atomic.Int64
	walletOpsErrors atomic.Int64
}

// Global is the process-wide instance.
//
//nolint:gochecknoglobals // Intentional global for metrics access
var Global = &Metrics{}

// RecordBackendCall records one backend request and how long it took.
func (m *Metrics) RecordBackendCall(endpoint string, duration time.Duration, err error) {
	counter, _ := m.endpointCalls.LoadOrStore(endpoint, &atomic.Int64{})
	counter.(*atomic.Int64).Add(1)

	m.backendCallsTotal.Add(1)
	m.backendLatencyNanos.Add(duration.Nanoseconds())
	if err != nil {
		m.backendErrorsTotal.Add(1)
	}
}

// RecordFetchStarted counts a wallet data fetch that passed the in-flight guard.
func (m *Metrics) RecordFetchStarted() {
	m.fetchesStarted.Add(1)
}

// RecordFetchSuppressed counts a trigger dropped by the in-flight guard.
func (m *Metrics) RecordFetchSuppressed() {
	m.fetchesSuppressed.Add(1)
}

// RecordAlert counts a user-facing alert.
func (m *Metrics) RecordAlert() {
	m.alertsRaised.Add(1)
}

// RecordPriceHit records a refresh answered from the cache.
func (m *Metrics) RecordPriceHit() {
	m.priceHits.Add(1)
}

// RecordPriceMiss records a refresh that went to the network.
func (m *Metrics) RecordPriceMiss() {
	m.priceMisses.Add(1)
}

// RecordPriceFallback records a failed price fetch that fell back.
func (m *Metrics) RecordPriceFallback() {
	m.priceFallbacks.Add(1)
}

// RecordWalletOp records a wallet list write.
func (m *Metrics) RecordWalletOp(err error) {
	m.walletOpsTotal.Add(1)
	if err != nil {
		m.walletOpsErrors.Add(1)
	}
}

// Snapshot is a point-in-time copy of all counters.
type Snapshot struct {
	BackendCallsTotal   int64 `json:"backend_calls_total"`
	BackendErrorsTotal  int64 `json:"backend_errors_total"`
	BackendLatencyNanos int64 `json:"backend_latency_nanos"`
	FetchesStarted      int64 `json:"fetches_started"`
	FetchesSuppressed   int64 `json:"fetches_suppressed"`
	AlertsRaised        int64 `json:"alerts_raised"`
	PriceHits           int64 `json:"price_hits"`
	PriceMisses         int64 `json:"price_misses"`
	PriceFallbacks      int64 `json:"price_fallbacks"`
	WalletOpsTotal      int64 `json:"wallet_ops_total"`
	WalletOpsErrors     int64 `json:"wallet_ops_errors"`
}

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() Snapshot {
	return Snapshot{
		BackendCallsTotal:   m.backendCallsTotal.Load(),
		BackendErrorsTotal:  m.backendErrorsTotal.Load(),
		BackendLatencyNanos: m.backendLatencyNanos.Load(),
		FetchesStarted:      m.fetchesStarted.Load(),
		FetchesSuppressed:   m.fetchesSuppressed.Load(),
		AlertsRaised:        m.alertsRaised.Load(),
		PriceHits:           m.priceHits.Load(),
		PriceMisses:         m.priceMisses.Load(),
		PriceFallbacks:      m.priceFallbacks.Load(),
		WalletOpsTotal:      m.walletOpsTotal.Load(),
		WalletOpsErrors:     m.walletOpsErrors.Load(),
	}
}

// EndpointCalls returns how many requests went to endpoint.
func (m *Metrics) EndpointCalls(endpoint string) int64 {
	counter, ok := m.endpointCalls.Load(endpoint)
	if !ok {
		return 0
	}
	return counter.(*atomic.Int64).Load()
}

// BackendLatencyAvgMs returns the mean backend latency in milliseconds, or 0
// before the first call.
func (m *Metrics) BackendLatencyAvgMs() float64 {
	calls := m.backendCallsTotal.Load()
	if calls == 0 {
		return 0
	}
	return float64(m.backendLatencyNanos.Load()) / float64(calls) / 1e6
}

// PriceHitRate returns the share of price refreshes served from cache, 0-100.
func (m *Metrics) PriceHitRate() float64 {
	hits := m.priceHits.Load()
	total := hits + m.priceMisses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}

// Reset zeroes every counter.
func (m *Metrics) Reset() {
	m.backendCallsTotal.Store(0)
	m.backendErrorsTotal.Store(0)
	m.backendLatencyNanos.Store(0)
	m.endpointCalls.Range(func(key, _ any) bool {
		m.endpointCalls.Delete(key)
		return true
	})
	m.fetchesStarted.Store(0)
	m.fetchesSuppressed.Store(0)
	m.alertsRaised.Store(0)
	m.priceHits.Store(0)
	m.priceMisses.Store(0)
	m.priceFallbacks.Store(0)
	m.walletOpsTotal.Store(0)
	m.walletOpsErrors.Store(0)
}
