// Package backend is the client for the Skibidi Cash wallet backend. Every
// endpoint is a JSON POST answered with a {success, data, error, code}
// envelope. Requests are never retried.
package backend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/version"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

const (
	// DefaultTimeout bounds each request.
	DefaultTimeout = 30 * time.Second

	// DefaultNetwork is sent with restore-wallet when none is configured.
	DefaultNetwork = "testnet"

	// HeaderRequestID carries a per-request uuid for backend log correlation.
	HeaderRequestID = "X-Request-ID"

	maxResponseBodySize = 1 << 20
)

//nolint:gochecknoglobals // shared codec, safe for concurrent use
var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errNoData = errors.New("response has no data")

// Recorder observes each request. metrics.Metrics satisfies it.
type Recorder interface {
	RecordBackendCall(endpoint string, duration time.Duration, err error)
}

// Logger is the subset of config.Logger the client uses.
type Logger interface {
	Debug(format string, args ...any)
}

// Options configures a Client.
type Options struct {
	// BaseURL is the backend root, e.g. https://api.skibidi.cash.
	BaseURL string

	// Network is sent with restore-wallet.
	Network string

	// Timeout overrides DefaultTimeout when HTTPClient is nil.
	Timeout time.Duration

	// HTTPClient replaces the default client.
	HTTPClient *http.Client

	// Recorder receives per-request metrics. Optional.
	Recorder Recorder

	// Logger receives request traces. Optional.
	Logger Logger
}

// Client talks to the wallet backend.
type Client struct {
	baseURL    string
	network    string
	httpClient *http.Client
	recorder   Recorder
	logger     Logger
}

// NewClient creates a client. BaseURL is required.
func NewClient(opts Options) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if base == "" {
		return nil, skerr.WithSuggestion(skerr.ErrConfigInvalid, "set backend.url in config.yaml or SKIBIDI_BACKEND_URL")
	}

	c := &Client{
		baseURL:    base,
		network:    opts.Network,
		httpClient: opts.HTTPClient,
		recorder:   opts.Recorder,
		logger:     opts.Logger,
	}
	if c.network == "" {
		c.network = DefaultNetwork
	}
	if c.httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		c.httpClient = &http.Client{Timeout: timeout}
	}
	return c, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateWallet asks the backend for a fresh wallet.
func (c *Client) CreateWallet(ctx context.Context) (*WalletInfo, error) {
	var info WalletInfo
	if err := c.post(ctx, PathCreateWallet, nil, &info); err != nil {
		return nil, err
	}
	if err := checkWalletInfo(PathCreateWallet, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// RestoreWallet looks up the wallet for a recovery phrase.
func (c *Client) RestoreWallet(ctx context.Context, mnemonic string) (*WalletInfo, error) {
	if strings.TrimSpace(mnemonic) == "" {
		return nil, skerr.ErrInvalidMnemonic
	}

	var info WalletInfo
	if err := c.post(ctx, PathRestoreWallet, restoreRequest{Mnemonic: mnemonic, Network: c.network}, &info); err != nil {
		return nil, err
	}
	if err := checkWalletInfo(PathRestoreWallet, &info); err != nil {
		return nil, err
	}
	if info.Mnemonic == "" {
		info.Mnemonic = mnemonic
	}
	return &info, nil
}

// GetBalance returns the balance of the wallet behind mnemonic.
func (c *Client) GetBalance(ctx context.Context, mnemonic string) (*Balance, error) {
	var bal Balance
	if err := c.post(ctx, PathGetBalance, mnemonicRequest{Mnemonic: mnemonic}, &bal); err != nil {
		return nil, err
	}
	return &bal, nil
}

// GetTransactions returns the wallet history, newest first as the backend
// orders it.
func (c *Client) GetTransactions(ctx context.Context, mnemonic string) ([]Transaction, error) {
	var txs []Transaction
	err := c.post(ctx, PathGetTransactions, mnemonicRequest{Mnemonic: mnemonic}, &txs)
	if err != nil && !errors.Is(err, errNoData) {
		return nil, err
	}
	if txs == nil {
		txs = []Transaction{}
	}
	return txs, nil
}

// SendBitcoin broadcasts a payment. Address and amount are checked locally
// before any request is made.
func (c *Client) SendBitcoin(ctx context.Context, req SendRequest) (*SendResult, error) {
	req.ToAddress = strings.TrimSpace(req.ToAddress)
	if req.ToAddress == "" {
		return nil, skerr.WithSuggestion(skerr.ErrInvalidAddress, "pass a destination with --to")
	}
	if req.AmountSats <= 0 {
		return nil, skerr.WithSuggestion(skerr.ErrInvalidAmount, "amount must be a positive number of satoshis")
	}

	var res SendResult
	if err := c.post(ctx, PathSendBitcoin, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// CreateInvoice requests a Lightning invoice for amountSats.
func (c *Client) CreateInvoice(ctx context.Context, mnemonic string, amountSats int64, memo string) (*Invoice, error) {
	if amountSats <= 0 {
		return nil, skerr.WithSuggestion(skerr.ErrInvalidAmount, "amount must be a positive number of satoshis")
	}

	var inv Invoice
	body := createInvoiceRequest{Mnemonic: mnemonic, AmountSats: amountSats, Memo: memo}
	if err := c.post(ctx, PathCreateInvoice, body, &inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// PayInvoice pays a BOLT11 payment request.
func (c *Client) PayInvoice(ctx context.Context, mnemonic, invoice string) (*Payment, error) {
	invoice = strings.TrimSpace(invoice)
	if invoice == "" {
		return nil, skerr.WithSuggestion(skerr.ErrInvalidInput, "pass the payment request to pay")
	}

	var p Payment
	if err := c.post(ctx, PathPayInvoice, payInvoiceRequest{Mnemonic: mnemonic, Invoice: invoice}, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// rawEnvelope is Envelope with data left undecoded.
type rawEnvelope struct {
	Success bool                `json:"success"`
	Data    jsoniter.RawMessage `json:"data"`
	Error   string              `json:"error"`
	Code    string              `json:"code"`
}

func (c *Client) post(ctx context.Context, endpoint string, body, out any) (err error) {
	start := time.Now()
	requestID := uuid.NewString()
	defer func() {
		if c.recorder != nil {
			c.recorder.RecordBackendCall(endpoint, time.Since(start), err)
		}
		if c.logger != nil {
			c.logger.Debug("backend %s id=%s took=%s err=%v", endpoint, requestID, time.Since(start), err)
		}
	}()

	var reader io.Reader
	if body != nil {
		data, mErr := json.Marshal(body)
		if mErr != nil {
			return fmt.Errorf("encoding %s request: %w", endpoint, mErr)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+endpoint, reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())
	req.Header.Set(HeaderRequestID, requestID)

	resp, err := c.httpClient.Do(req) //nolint:gosec // URL is built from the configured backend root
	if err != nil {
		return networkError(endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		return networkError(endpoint, err)
	}

	var env rawEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		if resp.StatusCode >= http.StatusBadRequest {
			return networkError(endpoint, fmt.Errorf("HTTP %d", resp.StatusCode))
		}
		return networkError(endpoint, errors.New("response is not a JSON envelope"))
	}

	if !env.Success {
		return &APIError{
			Endpoint: endpoint,
			Status:   resp.StatusCode,
			Code:     env.Code,
			Message:  env.Error,
		}
	}

	if out == nil {
		return nil
	}
	if len(env.Data) == 0 || string(env.Data) == "null" {
		return &skerr.SkibidiError{
			Code:     skerr.Code(skerr.ErrBackend),
			Message:  endpoint,
			Cause:    errNoData,
			ExitCode: skerr.ExitGeneral,
		}
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return skerr.Wrap(skerr.ErrBackend, "%s: decoding data: %v", endpoint, err)
	}
	return nil
}

func checkWalletInfo(endpoint string, info *WalletInfo) error {
	if info.WalletID == "" || info.Address == "" {
		return skerr.Wrap(skerr.ErrBackend, "%s: response is missing wallet_id or address", endpoint)
	}
	return nil
}
