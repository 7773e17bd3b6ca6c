// Package price fetches the BTC/USD spot price and keeps it fresh in a
// cache.PriceCache, falling back to a configured default when the price API
// cannot be reached.
package price

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/version"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

const (
	// DefaultBaseURL is the CoinGecko v3 API root.
	DefaultBaseURL = "https://api.coingecko.com/api/v3"

	// DefaultTimeout bounds each price request.
	DefaultTimeout = 15 * time.Second

	// DefaultRequestsPerMinute stays well below CoinGecko's public limit.
	DefaultRequestsPerMinute = 10

	maxResponseBodySize = 64 * 1024
)

// simplePriceResponse is the body of /simple/price?ids=bitcoin&vs_currencies=usd.
type simplePriceResponse struct {
	Bitcoin struct {
		USD float64 `json:"usd"`
	} `json:"bitcoin"`
}

// Client queries the CoinGecko simple price endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// ClientOptions configures a Client.
type ClientOptions struct {
	BaseURL           string
	HTTPClient        *http.Client
	RequestsPerMinute int
}

// NewClient creates a price client. Zero options select the defaults.
func NewClient(opts ClientOptions) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(opts.BaseURL, "/"),
		httpClient: opts.HTTPClient,
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		rpm = DefaultRequestsPerMinute
	}
	c.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(rpm)), rpm)

	return c
}

// FetchUSD returns the current BTC price in USD. Requests over the rate limit
// fail immediately instead of waiting.
func (c *Client) FetchUSD(ctx context.Context) (float64, error) {
	if !c.limiter.Allow() {
		return 0, skerr.Wrap(skerr.ErrPriceUnavailable, "price API rate limit reached")
	}

	url := c.baseURL + "/simple/price?ids=bitcoin&vs_currencies=usd"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.httpClient.Do(req) //nolint:gosec // URL is built from the configured price API root
	if err != nil {
		return 0, skerr.Wrap(skerr.ErrPriceUnavailable, "fetching price: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, skerr.Wrap(skerr.ErrPriceUnavailable, "fetching price: status %d", resp.StatusCode)
	}

	var body simplePriceResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBodySize)).Decode(&body); err != nil {
		return 0, skerr.Wrap(skerr.ErrPriceUnavailable, "decoding price: %v", err)
	}
	if body.Bitcoin.USD <= 0 {
		return 0, skerr.Wrap(skerr.ErrPriceUnavailable, "price API returned no bitcoin quote")
	}

	return body.Bitcoin.USD, nil
}
