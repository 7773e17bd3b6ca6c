package price

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

func TestClient_FetchUSD(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":67123.45}}`))
	}))
	defer server.Close()

	usd, err := NewClient(ClientOptions{BaseURL: server.URL + "/"}).FetchUSD(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 67123.45, usd, 0.001)
}

func TestClient_FetchUSD_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{}`},
		{"rate limited upstream", http.StatusTooManyRequests, `{"status":{"error_code":429}}`},
		{"bad json", http.StatusOK, `{"bitcoin":`},
		{"missing quote", http.StatusOK, `{"ethereum":{"usd":3000}}`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewClient(ClientOptions{BaseURL: server.URL}).FetchUSD(context.Background())
			require.ErrorIs(t, err, skerr.ErrPriceUnavailable)
		})
	}
}

func TestClient_RateLimit(t *testing.T) {
	t.Parallel()

	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(`{"bitcoin":{"usd":1}}`))
	}))
	defer server.Close()

	c := NewClient(ClientOptions{BaseURL: server.URL, RequestsPerMinute: 2})

	_, err := c.FetchUSD(context.Background())
	require.NoError(t, err)
	_, err = c.FetchUSD(context.Background())
	require.NoError(t, err)

	_, err = c.FetchUSD(context.Background())
	require.ErrorIs(t, err, skerr.ErrPriceUnavailable)
	assert.Equal(t, int32(2), hits.Load())
}
