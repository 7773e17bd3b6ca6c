package errors_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

var (
	errInner = errors.New("inner")
	errPlain = errors.New("plain error")
)

func TestExitCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"success", nil, skerr.ExitSuccess},
		{"general error", skerr.ErrGeneral, skerr.ExitGeneral},
		{"input error", skerr.ErrInvalidInput, skerr.ExitInput},
		{"word count", skerr.ErrInvalidWordCount, skerr.ExitInput},
		{"decryption", skerr.ErrDecryptionFailed, skerr.ExitAuth},
		{"not found", skerr.ErrWalletNotFound, skerr.ExitNotFound},
		{"duplicate wallet", skerr.ErrWalletExists, skerr.ExitConflict},
		{"plain error", errPlain, skerr.ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, skerr.ExitCode(tt.err))
		})
	}
}

func TestWrapPreservesIdentity(t *testing.T) {
	t.Parallel()

	sentinels := []error{
		skerr.ErrInvalidMnemonic,
		skerr.ErrNetworkError,
		skerr.ErrBackend,
		skerr.ErrWalletExists,
		skerr.ErrFetchInFlight,
	}

	for _, s := range sentinels {
		wrapped := skerr.Wrap(s, "context")
		require.ErrorIs(t, wrapped, s)
		assert.Equal(t, skerr.Code(s), skerr.Code(wrapped))
		assert.Equal(t, skerr.ExitCode(s), skerr.ExitCode(wrapped))
	}
}

func TestWrapStdlibChain(t *testing.T) {
	t.Parallel()

	// fmt.Errorf wrapping is the common idiom in the internal packages
	err := fmt.Errorf("fetching balance: %w", skerr.ErrInvalidMnemonic)
	require.ErrorIs(t, err, skerr.ErrInvalidMnemonic)
	assert.Equal(t, "INVALID_MNEMONIC", skerr.Code(err))
}

func TestWrapNil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, skerr.Wrap(nil, "nothing"))
	assert.NoError(t, skerr.WithDetails(nil, map[string]string{"a": "b"}))
	assert.NoError(t, skerr.WithSuggestion(nil, "nothing"))
}

func TestWrapPlainError(t *testing.T) {
	t.Parallel()

	err := skerr.Wrap(errInner, "reading %s", "wallets.json")
	var se *skerr.SkibidiError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "GENERAL_ERROR", se.Code)
	assert.Equal(t, "reading wallets.json", se.Message)
	require.ErrorIs(t, err, errInner)
}

func TestWithDetails(t *testing.T) {
	t.Parallel()
	details := map[string]string{"id": "w-1", "name": "Rizz Reserve"}

	err := skerr.WithDetails(skerr.ErrWalletExists, details)

	var se *skerr.SkibidiError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, details, se.Details)
	require.ErrorIs(t, err, skerr.ErrWalletExists)
}

func TestWithSuggestion(t *testing.T) {
	t.Parallel()
	err := skerr.WithSuggestion(skerr.ErrNetworkError, "check your connection")

	var se *skerr.SkibidiError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "check your connection", se.Suggestion)
}

func TestErrorString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *skerr.SkibidiError
		expected string
	}{
		{
			name:     "message only",
			err:      &skerr.SkibidiError{Message: "boom"},
			expected: "boom",
		},
		{
			name:     "with cause",
			err:      &skerr.SkibidiError{Message: "boom", Cause: errInner},
			expected: "boom: inner",
		},
		{
			name: "details sorted",
			err: &skerr.SkibidiError{
				Message: "boom",
				Details: map[string]string{"b": "2", "a": "1"},
			},
			expected: "boom (a: 1) (b: 2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestIsComparesCodes(t *testing.T) {
	t.Parallel()

	custom := skerr.New("WALLET_EXISTS", "different message")
	assert.True(t, skerr.Is(custom, skerr.ErrWalletExists))
	assert.False(t, skerr.Is(custom, skerr.ErrWalletNotFound))
	assert.False(t, skerr.Is(errPlain, skerr.ErrGeneral))
}

func TestCodeFallback(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "GENERAL_ERROR", skerr.Code(errPlain))
	assert.Equal(t, "GENERAL_ERROR", skerr.Code(nil))
}

func TestWrapSentinelMessage(t *testing.T) {
	t.Parallel()
	err := skerr.Wrap(skerr.ErrNetworkError, "%s: %v", "/get-balance", "connection refused")
	assert.Equal(t, "/get-balance: connection refused: network communication failed", err.Error())
}
