package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/backend"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/cache"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/config"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/metrics"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/price"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/seal"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/session"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wizard"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

type cmdContextKey struct{}

// CommandContext holds dependencies for CLI commands. Store, backend and
// price service are created on first use.
type CommandContext struct {
	Cfg     *config.Config
	Log     *config.Logger
	Fmt     *output.Formatter
	Metrics *metrics.Metrics
	Out     io.Writer
	Err     io.Writer

	store   *wallet.Store
	api     *backend.Client
	prices  *price.Service
	closers []io.Closer
}

// SetCmdContext attaches cc to cmd.
func SetCmdContext(cmd *cobra.Command, cc *CommandContext) {
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	cmd.SetContext(context.WithValue(base, cmdContextKey{}, cc))
}

// GetCmdContext returns the CommandContext attached to cmd, or nil.
func GetCmdContext(cmd *cobra.Command) *CommandContext {
	if cmd == nil || cmd.Context() == nil {
		return nil
	}
	cc, _ := cmd.Context().Value(cmdContextKey{}).(*CommandContext)
	return cc
}

// Store opens the wallet list.
func (c *CommandContext) Store() (*wallet.Store, error) {
	if c.store != nil {
		return c.store, nil
	}

	storage, err := c.openStorage()
	if err != nil {
		return nil, err
	}
	store, err := wallet.OpenStore(recordingStorage{Storage: storage, metrics: c.Metrics})
	if err != nil {
		return nil, err
	}
	c.store = store
	return store, nil
}

func (c *CommandContext) openStorage() (wallet.Storage, error) {
	home := c.Cfg.GetHome()
	if err := os.MkdirAll(home, 0o700); err != nil {
		return nil, skerr.Wrap(skerr.ErrStorage, "creating %s: %v", home, err)
	}

	if c.Cfg.Storage.Driver == config.StorageDriverBolt {
		b, err := wallet.OpenBoltStorage(home)
		if err != nil {
			return nil, err
		}
		c.closers = append(c.closers, b)
		c.Log.Debug("wallet storage: bolt in %s", home)
		return b, nil
	}

	var opts []wallet.FileOption
	if c.Cfg.Storage.Encrypt {
		pass := c.Cfg.Storage.Passphrase
		if pass == "" {
			entered, err := promptSecretFn("Wallet file passphrase: ")
			if err != nil {
				return nil, err
			}
			pass = string(entered)
		}
		sealer, err := seal.New(pass, 0)
		if err != nil {
			return nil, err
		}
		opts = append(opts, wallet.WithSealer(sealer))
	}

	fs := wallet.NewFileStorage(home, opts...)
	c.Log.Debug("wallet storage: %s encrypted=%t", fs.Path(), c.Cfg.Storage.Encrypt)
	return fs, nil
}

// API returns the backend client.
func (c *CommandContext) API() (*backend.Client, error) {
	if c.api != nil {
		return c.api, nil
	}
	api, err := backend.NewClient(backend.Options{
		BaseURL:  c.Cfg.GetBackendURL(),
		Network:  c.Cfg.GetNetwork(),
		Timeout:  c.Cfg.GetBackendTimeout(),
		Recorder: c.Metrics,
		Logger:   c.Log,
	})
	if err != nil {
		return nil, err
	}
	c.api = api
	return api, nil
}

// Prices returns the spot price service.
func (c *CommandContext) Prices() *price.Service {
	if c.prices == nil {
		client := price.NewClient(price.ClientOptions{
			BaseURL:           c.Cfg.Price.URL,
			RequestsPerMinute: c.Cfg.Price.RequestsPerMinute,
		})
		c.prices = price.NewService(client, cache.NewPriceCache(nil), price.Options{
			Staleness:   c.Cfg.GetPriceStaleness(),
			FallbackUSD: c.Cfg.Price.FallbackUSD,
			Recorder:    c.Metrics,
			Logger:      c.Log,
		})
	}
	return c.prices
}

// Controller builds a session controller. With alerts set, fetch failures
// are printed to stderr as they happen instead of only being returned.
func (c *CommandContext) Controller(alerts bool) (*session.Controller, error) {
	store, err := c.Store()
	if err != nil {
		return nil, err
	}
	api, err := c.API()
	if err != nil {
		return nil, err
	}

	opts := session.Options{
		Price:         c.Prices(),
		Recorder:      c.Metrics,
		Logger:        c.Log,
		FocusDebounce: c.Cfg.GetFocusDebounce(),
	}
	if alerts {
		opts.Alerter = output.Alerter{W: c.Err}
	}
	return session.NewController(store, api, opts), nil
}

// Activate selects the --wallet wallet, or applies the default selection
// policy, and fetches its data.
func (c *CommandContext) Activate(ctx context.Context, ctrl *session.Controller) (wallet.Record, error) {
	store, err := c.Store()
	if err != nil {
		return wallet.Record{}, err
	}

	if walletRef != "" {
		rec, err := findWallet(store, walletRef)
		if err != nil {
			return wallet.Record{}, err
		}
		return rec, ctrl.Select(ctx, rec.ID)
	}

	rec, ok, err := ctrl.Load(ctx)
	if err != nil {
		return rec, err
	}
	if !ok {
		return rec, errNoWallets()
	}
	return rec, nil
}

// Selected resolves the wallet a command acts on without fetching anything.
func (c *CommandContext) Selected() (wallet.Record, error) {
	store, err := c.Store()
	if err != nil {
		return wallet.Record{}, err
	}
	if walletRef != "" {
		return findWallet(store, walletRef)
	}
	records := store.List()
	if len(records) == 0 {
		return wallet.Record{}, errNoWallets()
	}
	return records[0], nil
}

// WizardOptions returns the shared wizard options. Wizards alert through
// stderr so a failed backend call is visible while the user is prompted.
func (c *CommandContext) WizardOptions() wizard.Options {
	return wizard.Options{
		Timing: wizard.Timing{
			GenerateDelay: time.Duration(c.Cfg.Wizard.GenerateDelayMs) * time.Millisecond,
			CompleteDelay: time.Duration(c.Cfg.Wizard.CompleteDelayMs) * time.Millisecond,
		},
		Alerter: output.Alerter{W: c.Err},
	}
}

// Close releases open storage.
func (c *CommandContext) Close() error {
	var errs []error
	for _, cl := range c.closers {
		errs = append(errs, cl.Close())
	}
	c.closers = nil
	return errors.Join(errs...)
}

// findWallet matches ref against ids first, then names without regard to case.
func findWallet(store *wallet.Store, ref string) (wallet.Record, error) {
	if rec, ok := store.Find(ref); ok {
		return rec, nil
	}
	for _, rec := range store.List() {
		if strings.EqualFold(rec.Name, ref) {
			return rec, nil
		}
	}
	return wallet.Record{}, skerr.WithSuggestion(
		skerr.WithDetails(skerr.ErrWalletNotFound, map[string]string{"wallet": ref}),
		"run 'skibidi wallet list' to see your wallets",
	)
}

func errNoWallets() error {
	return skerr.WithSuggestion(skerr.ErrNoWalletSelected,
		"create one with 'skibidi wallet create' or restore one with 'skibidi wallet restore'")
}

// recordingStorage counts wallet list writes.
type recordingStorage struct {
	wallet.Storage
	metrics *metrics.Metrics
}

func (r recordingStorage) Write(records []wallet.Record) error {
	err := r.Storage.Write(records)
	r.metrics.RecordWalletOp(err)
	return err
}
