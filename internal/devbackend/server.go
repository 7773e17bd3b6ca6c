// Package devbackend is an in-memory implementation of the wallet backend
// contract for local development and end-to-end tests. Wallet ids and
// addresses are derived from a hash of the phrase, so restoring the same
// phrase twice yields the same wallet. Nothing here is real bitcoin.
package devbackend

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/tyler-smith/go-bip39"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/backend"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
)

const (
	// NetworkFee is charged on every on-chain send.
	NetworkFee = 250

	// LightningFee is charged on every invoice payment.
	LightningFee = 1

	// InvoiceTTL is how long an invoice can be paid.
	InvoiceTTL = time.Hour

	// DefaultPriceUSD is served by /simple/price.
	DefaultPriceUSD = 65000.0

	fundingConfirmations = 6
)

// Logger is the subset of config.Logger the server uses.
type Logger interface {
	Info(format string, args ...any)
}

// Options configures a Server.
type Options struct {
	// Faucet credits every new wallet with this many confirmed sats.
	Faucet int64

	// PriceUSD is the BTC/USD price served by /simple/price.
	PriceUSD float64

	// Now defaults to time.Now.
	Now func() time.Time

	Logger Logger
}

type account struct {
	info        backend.WalletInfo
	confirmed   int64
	unconfirmed int64
	txs         []backend.Transaction
}

type invoice struct {
	backend.Invoice
	payee string
	paid  bool
}

// Server holds every wallet in memory.
type Server struct {
	opts Options
	app  *fiber.App

	mu        sync.Mutex
	accounts  map[string]*account // by wallet id
	addresses map[string]string   // address -> wallet id
	invoices  map[string]*invoice // by payment request
}

// New creates a server with its routes registered.
func New(opts Options) *Server {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.PriceUSD <= 0 {
		opts.PriceUSD = DefaultPriceUSD
	}

	s := &Server{
		opts:      opts,
		accounts:  map[string]*account{},
		addresses: map[string]string{},
		invoices:  map[string]*invoice{},
	}

	app := fiber.New(fiber.Config{
		AppName:               "skibidi-devd",
		DisableStartupMessage: true,
		BodyLimit:             64 * 1024,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(s.logRequest)

	app.Post(backend.PathCreateWallet, s.createWallet)
	app.Post(backend.PathRestoreWallet, s.restoreWallet)
	app.Post(backend.PathGetBalance, s.getBalance)
	app.Post(backend.PathGetTransactions, s.getTransactions)
	app.Post(backend.PathSendBitcoin, s.sendBitcoin)
	app.Post(backend.PathCreateInvoice, s.createInvoice)
	app.Post(backend.PathPayInvoice, s.payInvoice)
	app.Get("/simple/price", s.simplePrice)

	s.app = app
	return s
}

// App returns the fiber application.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve accepts connections on ln until Shutdown.
func (s *Server) Serve(ln net.Listener) error {
	return s.app.Listener(ln)
}

// Shutdown stops the server, waiting for in-flight requests until ctx ends.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

// Fund credits the wallet behind mnemonic with a confirmed deposit.
func (s *Server) Fund(mnemonic string, sats int64) (backend.WalletInfo, error) {
	phrase := wallet.NormalizeMnemonicInput(mnemonic)
	if !bip39.IsMnemonicValid(phrase) {
		return backend.WalletInfo{}, fmt.Errorf("fund: %w", errInvalidMnemonic)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acct := s.accountLocked(phrase)
	s.depositLocked(acct, sats, fundingConfirmations)
	return acct.info, nil
}

func (s *Server) logRequest(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if s.opts.Logger != nil {
		s.opts.Logger.Info("%s %s status=%d id=%s took=%s",
			c.Method(), c.Path(), c.Response().StatusCode(),
			c.GetRespHeader(fiber.HeaderXRequestID), time.Since(start))
	}
	return err
}

// accountLocked returns the account for phrase, creating it on first use.
// The phrase must already be valid.
func (s *Server) accountLocked(phrase string) *account {
	id := walletID(phrase)
	if acct, ok := s.accounts[id]; ok {
		return acct
	}

	acct := &account{info: backend.WalletInfo{
		WalletID: id,
		Address:  address(phrase),
		Mnemonic: phrase,
	}}
	s.accounts[id] = acct
	s.addresses[acct.info.Address] = id

	if s.opts.Faucet > 0 {
		s.depositLocked(acct, s.opts.Faucet, fundingConfirmations)
	}
	return acct
}

func (s *Server) depositLocked(acct *account, sats, confirmations int64) {
	if confirmations > 0 {
		acct.confirmed += sats
	} else {
		acct.unconfirmed += sats
	}
	acct.txs = append(acct.txs, backend.Transaction{
		TxID:          randomHex(32),
		Amount:        sats,
		Confirmations: confirmations,
		Timestamp:     s.opts.Now().Unix(),
	})
}

// spendLocked debits amount+fee, spending confirmed funds first.
func (s *Server) spendLocked(acct *account, amount, fee int64) (string, bool) {
	total := amount + fee
	if acct.confirmed+acct.unconfirmed < total {
		return "", false
	}
	fromConfirmed := min(total, acct.confirmed)
	acct.confirmed -= fromConfirmed
	acct.unconfirmed -= total - fromConfirmed

	txid := randomHex(32)
	acct.txs = append(acct.txs, backend.Transaction{
		TxID:      txid,
		Amount:    -total,
		Timestamp: s.opts.Now().Unix(),
	})
	return txid, true
}

func walletID(phrase string) string {
	sum := sha256.Sum256([]byte("skibidi-wallet:" + phrase))
	return "w_" + hex.EncodeToString(sum[:12])
}

func address(phrase string) string {
	sum := sha256.Sum256([]byte("skibidi-address:" + phrase))
	return "tb1q" + hex.EncodeToString(sum[:19])
}

func randomHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func isKnownPrefix(s string) bool {
	return strings.HasPrefix(s, "tb1") || strings.HasPrefix(s, "bc1") ||
		strings.HasPrefix(s, "1") || strings.HasPrefix(s, "3") ||
		strings.HasPrefix(s, "m") || strings.HasPrefix(s, "n") || strings.HasPrefix(s, "2")
}
