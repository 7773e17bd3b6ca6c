// Package session owns the currently selected wallet and keeps its balance,
// transactions and the spot price fresh without issuing redundant requests.
//
// Every trigger (selection change, focus regain, pull-to-refresh) converges
// on one fetch per wallet, guarded by the set of wallet ids in flight. Session state lives in
// memory only; each process starts from the selection policy.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/backend"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/cache"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// DefaultFocusDebounce delays a focus-regain fetch.
const DefaultFocusDebounce = 300 * time.Millisecond

// Route tells the caller where to go after a destructive operation.
type Route int

// Routes.
const (
	RouteHome Route = iota
	RouteOnboarding
)

func (r Route) String() string {
	if r == RouteOnboarding {
		return "onboarding"
	}
	return "home"
}

// WalletAPI is the part of the backend the controller needs.
type WalletAPI interface {
	GetBalance(ctx context.Context, mnemonic string) (*backend.Balance, error)
	GetTransactions(ctx context.Context, mnemonic string) ([]backend.Transaction, error)
}

// PriceRefresher refreshes and reads the spot price. price.Service satisfies it.
type PriceRefresher interface {
	Refresh(ctx context.Context) (cache.Quote, error)
	Current() cache.Quote
}

// Alerter shows a user-facing alert.
type Alerter interface {
	Alert(title, message string)
}

// Recorder observes fetch behavior. metrics.Metrics satisfies it.
type Recorder interface {
	RecordFetchStarted()
	RecordFetchSuppressed()
	RecordAlert()
}

// Logger is the subset of config.Logger the controller uses.
type Logger interface {
	Debug(format string, args ...any)
	Error(format string, args ...any)
}

// Options configures a Controller. Everything is optional.
type Options struct {
	Price         PriceRefresher
	Alerter       Alerter
	Recorder      Recorder
	Logger        Logger
	FocusDebounce time.Duration

	// OnEmpty runs after the last wallet is deleted.
	OnEmpty func()
}

// State is a point-in-time copy of what the controller displays.
type State struct {
	Selected     *wallet.Record        `json:"selected,omitempty"`
	Balance      backend.Balance       `json:"balance"`
	Transactions []backend.Transaction `json:"transactions"`
	Price        cache.Quote           `json:"price"`
	Fetching     bool                  `json:"fetching"`
}

// Controller is the wallet session controller.
type Controller struct {
	store    *wallet.Store
	api      WalletAPI
	price    PriceRefresher
	alerter  Alerter
	recorder Recorder
	logger   Logger
	debounce time.Duration
	onEmpty  func()

	mu sync.Mutex
	// inflight holds wallet ids with a running fetch. It is checked and
	// set under mu before any request.
	inflight     map[string]struct{}
	selected     *wallet.Record
	lastCount    int
	balance      backend.Balance
	transactions []backend.Transaction
	focusTimer   *time.Timer
	unsubscribe  func()

	wg sync.WaitGroup
}

// NewController creates a controller over store and api.
func NewController(store *wallet.Store, api WalletAPI, opts Options) *Controller {
	c := &Controller{
		store:    store,
		api:      api,
		price:    opts.Price,
		alerter:  opts.Alerter,
		recorder: opts.Recorder,
		logger:   opts.Logger,
		debounce: opts.FocusDebounce,
		onEmpty:  opts.OnEmpty,
		inflight: make(map[string]struct{}),
	}
	if c.debounce <= 0 {
		c.debounce = DefaultFocusDebounce
	}
	return c
}

// Load applies the selection policy to the stored list and fetches data
// for the selected wallet when the selection changed. It reports false
// when the list is empty.
func (c *Controller) Load(ctx context.Context) (wallet.Record, bool, error) {
	records := c.store.List()

	c.mu.Lock()
	next := choose(records, c.selected, c.lastCount)
	c.lastCount = len(records)
	changed := !sameID(c.selected, next)
	c.selected = next
	if changed {
		c.zeroLocked()
	}
	c.mu.Unlock()

	if next == nil {
		return wallet.Record{}, false, nil
	}
	if !changed {
		return *next, true, nil
	}
	return *next, true, ignoreInFlight(c.fetch(ctx, *next))
}

// choose returns the wallet to select for records. A list that grew while
// a wallet was selected selects the appended wallet.
func choose(records []wallet.Record, current *wallet.Record, lastCount int) *wallet.Record {
	if len(records) == 0 {
		return nil
	}
	pick := func(i int) *wallet.Record {
		rec := records[i]
		return &rec
	}
	if current == nil {
		return pick(0)
	}
	if len(records) > lastCount {
		return pick(len(records) - 1)
	}
	for i := range records {
		if records[i].ID == current.ID {
			return pick(i)
		}
	}
	return pick(0)
}

// Select makes the wallet with id the selected one. Selecting the wallet
// that is already selected does nothing.
func (c *Controller) Select(ctx context.Context, id string) error {
	rec, ok := c.store.Find(id)
	if !ok {
		return skerr.WithDetails(skerr.ErrWalletNotFound, map[string]string{"id": id})
	}

	c.mu.Lock()
	if c.selected != nil && c.selected.ID == id {
		c.mu.Unlock()
		return nil
	}
	c.selected = &rec
	c.lastCount = c.store.Len()
	c.zeroLocked()
	c.mu.Unlock()

	return ignoreInFlight(c.fetch(ctx, rec))
}

// FocusRegained schedules a fetch after the debounce delay. Calls inside
// the window collapse into one. Nothing is fetched when no wallet is
// selected or a fetch is already running for it.
func (c *Controller) FocusRegained(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.focusTimer != nil && c.focusTimer.Stop() {
		c.wg.Done()
	}
	c.wg.Add(1)
	c.focusTimer = time.AfterFunc(c.debounce, func() {
		defer c.wg.Done()
		c.onFocus(ctx)
	})
}

func (c *Controller) onFocus(ctx context.Context) {
	rec, ok := c.Selected()
	if !ok {
		return
	}
	if c.isFetching(rec.ID) {
		c.recordSuppressed()
		return
	}
	_ = c.fetch(ctx, rec)
}

// Refresh is pull-to-refresh. The price refresh always runs but issues no
// request while the cached price is fresh. The wallet fetch returns
// ErrFetchInFlight when one is already running for the selected wallet.
func (c *Controller) Refresh(ctx context.Context) error {
	if c.price != nil {
		if _, err := c.price.Refresh(ctx); err != nil {
			c.debugf("price refresh: %v", err)
		}
	}

	rec, ok := c.Selected()
	if !ok {
		return nil
	}
	return c.fetch(ctx, rec)
}

// Delete removes the wallet with id. Deleting the last wallet clears the
// selection and routes to onboarding. Otherwise the selection policy is
// re-applied if a wallet was selected.
func (c *Controller) Delete(ctx context.Context, id string) (Route, error) {
	_, hadSelection := c.Selected()
	if err := c.store.Remove(id); err != nil {
		return RouteHome, err
	}

	if c.store.Len() == 0 {
		c.mu.Lock()
		c.selected = nil
		c.lastCount = 0
		c.zeroLocked()
		c.mu.Unlock()

		if c.onEmpty != nil {
			c.onEmpty()
		}
		return RouteOnboarding, nil
	}

	if !hadSelection {
		return RouteHome, nil
	}
	_, _, err := c.Load(ctx)
	return RouteHome, err
}

// Selected returns the selected wallet.
func (c *Controller) Selected() (wallet.Record, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected == nil {
		return wallet.Record{}, false
	}
	return *c.selected, true
}

// Snapshot returns a copy of the displayed state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	s := State{
		Balance:      c.balance,
		Transactions: append([]backend.Transaction(nil), c.transactions...),
	}
	if c.selected != nil {
		rec := *c.selected
		s.Selected = &rec
		_, s.Fetching = c.inflight[rec.ID]
	}
	c.mu.Unlock()

	if c.price != nil {
		s.Price = c.price.Current()
	}
	return s
}

// Start re-runs Load whenever the store changes.
func (c *Controller) Start(ctx context.Context) {
	unsubscribe := c.store.Subscribe(func([]wallet.Record) {
		c.wg.Add(1)
		go func() {
			defer c.wg.Done()
			if _, _, err := c.Load(ctx); err != nil {
				c.debugf("reload after store change: %v", err)
			}
		}()
	})

	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()
}

// Stop unsubscribes from the store, cancels a pending focus fetch and
// waits for background work.
func (c *Controller) Stop() {
	c.mu.Lock()
	if c.unsubscribe != nil {
		c.unsubscribe()
		c.unsubscribe = nil
	}
	if c.focusTimer != nil && c.focusTimer.Stop() {
		c.wg.Done()
	}
	c.focusTimer = nil
	c.mu.Unlock()

	c.Wait()
}

// Wait blocks until scheduled and background fetches finish.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// fetch requests balance and transactions for rec concurrently. Each
// result is applied as it arrives, and only while rec is still selected.
// A fetch already running for another wallet does not block this one.
// One failed fetch raises at most one alert.
func (c *Controller) fetch(ctx context.Context, rec wallet.Record) error {
	c.mu.Lock()
	if _, busy := c.inflight[rec.ID]; busy {
		c.mu.Unlock()
		c.recordSuppressed()
		return skerr.ErrFetchInFlight
	}
	c.inflight[rec.ID] = struct{}{}
	c.mu.Unlock()
	defer func() {
		c.mu.Lock()
		delete(c.inflight, rec.ID)
		c.mu.Unlock()
	}()

	if c.recorder != nil {
		c.recorder.RecordFetchStarted()
	}

	var alertOnce sync.Once
	fail := func(err error) error {
		if err = c.classify(err); err != nil {
			alertOnce.Do(func() { c.alert(err) })
		}
		return err
	}

	var g errgroup.Group
	g.Go(func() error {
		bal, err := c.api.GetBalance(ctx, rec.Mnemonic)
		if err != nil {
			return fail(err)
		}
		c.apply(rec.ID, func() { c.balance = *bal })
		return nil
	})
	g.Go(func() error {
		txs, err := c.api.GetTransactions(ctx, rec.Mnemonic)
		if err != nil {
			return fail(err)
		}
		c.apply(rec.ID, func() { c.transactions = txs })
		return nil
	})
	return g.Wait()
}

func (c *Controller) isFetching(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, busy := c.inflight[id]
	return busy
}

func (c *Controller) apply(id string, fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.selected != nil && c.selected.ID == id {
		fn()
	}
}

// classify logs err and returns it, except for invalid-mnemonic errors,
// which mark a damaged local record and are swallowed.
func (c *Controller) classify(err error) error {
	if errors.Is(err, skerr.ErrInvalidMnemonic) {
		c.debugf("suppressed invalid mnemonic error: %v", err)
		return nil
	}
	if c.logger != nil {
		c.logger.Error("wallet fetch failed: %v", err)
	}
	return err
}

func (c *Controller) alert(err error) {
	if c.alerter == nil {
		return
	}
	title, msg := alertText(err)
	c.alerter.Alert(title, msg)
	if c.recorder != nil {
		c.recorder.RecordAlert()
	}
}

func alertText(err error) (string, string) {
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		return "Error", apiErr.Error()
	case errors.Is(err, skerr.ErrNetworkError):
		return "Connection problem", "Check your connection and try again."
	default:
		return "Error", err.Error()
	}
}

func (c *Controller) zeroLocked() {
	c.balance = backend.Balance{}
	c.transactions = nil
}

func (c *Controller) recordSuppressed() {
	if c.recorder != nil {
		c.recorder.RecordFetchSuppressed()
	}
}

func (c *Controller) debugf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(format, args...)
	}
}

func sameID(a, b *wallet.Record) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// ignoreInFlight treats a suppressed fetch as success for selection
// triggers; the running fetch already covers the same wallet.
func ignoreInFlight(err error) error {
	if errors.Is(err, skerr.ErrFetchInFlight) {
		return nil
	}
	return err
}
