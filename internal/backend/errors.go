package backend

import (
	"fmt"
	"strings"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// legacyInvalidMnemonic is matched against error text only when the backend
// sends no code.
const legacyInvalidMnemonic = "invalid mnemonic"

// APIError is a success=false response.
type APIError struct {
	// Endpoint is the path that failed.
	Endpoint string

	// Status is the HTTP status code.
	Status int

	// Code is the structured error code, possibly empty.
	Code string

	// Message is the backend's error text, shown to the user as is.
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("%s failed (HTTP %d)", e.Endpoint, e.Status)
}

// InvalidMnemonic reports whether the backend rejected the recovery phrase.
func (e *APIError) InvalidMnemonic() bool {
	if e.Code != "" {
		return e.Code == CodeInvalidMnemonic
	}
	return strings.Contains(strings.ToLower(e.Message), legacyInvalidMnemonic)
}

// Unwrap classifies the failure: ErrInvalidMnemonic for a rejected phrase,
// ErrBackend for anything else.
func (e *APIError) Unwrap() error {
	if e.InvalidMnemonic() {
		return skerr.ErrInvalidMnemonic
	}
	return skerr.ErrBackend
}

// networkError classifies transport failures and undecodable responses.
func networkError(endpoint string, cause error) error {
	return skerr.WithSuggestion(
		skerr.Wrap(skerr.ErrNetworkError, "%s: %v", endpoint, cause),
		"check your connection and try again",
	)
}
