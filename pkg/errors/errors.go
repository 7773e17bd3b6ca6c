// Package errors provides structured error handling for Skibidi Cash.
// It defines sentinel errors, exit codes, and helpers for adding
// context, details, and suggestions to errors.
//
//nolint:revive // Package name intentionally shadows stdlib for domain-specific error handling
package errors

import (
	"errors"
	"fmt"
	"sort"
)

// Exit codes returned by the CLI.
const (
	ExitSuccess  = 0 // Successful execution
	ExitGeneral  = 1 // General/unknown error
	ExitInput    = 2 // Invalid input
	ExitAuth     = 3 // Authentication or decryption failed
	ExitNotFound = 4 // Resource not found
	ExitConflict = 5 // Conflicting state, e.g. duplicate wallet
)

// SkibidiError is the structured error type for Skibidi Cash.
type SkibidiError struct {
	Code       string            // Machine-readable error code
	Message    string            // Human-readable message
	Details    map[string]string // Additional context
	Suggestion string            // Actionable suggestion for user
	Cause      error             // Underlying error
	ExitCode   int               // Exit code for CLI
}

func (e *SkibidiError) Error() string {
	msg := e.Message

	// Details are sorted for deterministic output
	if len(e.Details) > 0 {
		keys := make([]string, 0, len(e.Details))
		for k := range e.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			msg = fmt.Sprintf("%s (%s: %s)", msg, k, e.Details[k])
		}
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", msg, e.Cause)
	}
	return msg
}

func (e *SkibidiError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is for SkibidiError by comparing codes.
func (e *SkibidiError) Is(target error) bool {
	var t *SkibidiError
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// Sentinel errors.
var (
	ErrGeneral = &SkibidiError{
		Code:     "GENERAL_ERROR",
		Message:  "an error occurred",
		ExitCode: ExitGeneral,
	}

	ErrInvalidInput = &SkibidiError{
		Code:     "INVALID_INPUT",
		Message:  "invalid input",
		ExitCode: ExitInput,
	}

	ErrNotFound = &SkibidiError{
		Code:     "NOT_FOUND",
		Message:  "resource not found",
		ExitCode: ExitNotFound,
	}

	// Wallet-specific errors.
	ErrWalletNotFound = &SkibidiError{
		Code:     "WALLET_NOT_FOUND",
		Message:  "wallet not found",
		ExitCode: ExitNotFound,
	}

	ErrWalletExists = &SkibidiError{
		Code:     "WALLET_EXISTS",
		Message:  "wallet already exists",
		ExitCode: ExitConflict,
	}

	ErrInvalidMnemonic = &SkibidiError{
		Code:     "INVALID_MNEMONIC",
		Message:  "invalid mnemonic phrase",
		ExitCode: ExitInput,
	}

	ErrInvalidWordCount = &SkibidiError{
		Code:     "INVALID_WORD_COUNT",
		Message:  "recovery phrase must be exactly 12 words",
		ExitCode: ExitInput,
	}

	ErrEmptyName = &SkibidiError{
		Code:     "EMPTY_NAME",
		Message:  "wallet name cannot be empty",
		ExitCode: ExitInput,
	}

	ErrNoWalletSelected = &SkibidiError{
		Code:     "NO_WALLET_SELECTED",
		Message:  "no wallet selected",
		ExitCode: ExitNotFound,
	}

	ErrDecryptionFailed = &SkibidiError{
		Code:     "DECRYPTION_FAILED",
		Message:  "decryption failed - wrong passphrase or corrupted file",
		ExitCode: ExitAuth,
	}

	ErrStorage = &SkibidiError{
		Code:     "STORAGE_ERROR",
		Message:  "local wallet storage failed",
		ExitCode: ExitGeneral,
	}

	// Backend-specific errors.
	ErrNetworkError = &SkibidiError{
		Code:     "NETWORK_ERROR",
		Message:  "network communication failed",
		ExitCode: ExitGeneral,
	}

	ErrBackend = &SkibidiError{
		Code:     "BACKEND_ERROR",
		Message:  "backend reported a failure",
		ExitCode: ExitGeneral,
	}

	ErrInvalidAddress = &SkibidiError{
		Code:     "INVALID_ADDRESS",
		Message:  "invalid address",
		ExitCode: ExitInput,
	}

	ErrInvalidAmount = &SkibidiError{
		Code:     "INVALID_AMOUNT",
		Message:  "invalid amount",
		ExitCode: ExitInput,
	}

	ErrPriceUnavailable = &SkibidiError{
		Code:     "PRICE_UNAVAILABLE",
		Message:  "spot price unavailable",
		ExitCode: ExitGeneral,
	}

	// Flow-control errors.
	ErrInvalidTransition = &SkibidiError{
		Code:     "INVALID_TRANSITION",
		Message:  "step not allowed from the current state",
		ExitCode: ExitInput,
	}

	ErrFetchInFlight = &SkibidiError{
		Code:     "FETCH_IN_FLIGHT",
		Message:  "a refresh is already in progress",
		ExitCode: ExitGeneral,
	}

	// Config-specific errors.
	ErrConfigNotFound = &SkibidiError{
		Code:     "CONFIG_NOT_FOUND",
		Message:  "configuration file not found",
		ExitCode: ExitNotFound,
	}

	ErrConfigInvalid = &SkibidiError{
		Code:     "CONFIG_INVALID",
		Message:  "configuration file is invalid",
		ExitCode: ExitInput,
	}
)

// New creates a new SkibidiError with the given code and message.
func New(code, message string) *SkibidiError {
	return &SkibidiError{
		Code:     code,
		Message:  message,
		ExitCode: ExitGeneral,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}

	msg := fmt.Sprintf(format, args...)

	var se *SkibidiError
	if errors.As(err, &se) {
		return &SkibidiError{
			Code:       se.Code,
			Message:    msg,
			Details:    se.Details,
			Suggestion: se.Suggestion,
			Cause:      err,
			ExitCode:   se.ExitCode,
		}
	}

	return &SkibidiError{
		Code:     "GENERAL_ERROR",
		Message:  msg,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithDetails adds details to an error.
func WithDetails(err error, details map[string]string) error {
	if err == nil {
		return nil
	}

	var se *SkibidiError
	if errors.As(err, &se) {
		return &SkibidiError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    details,
			Suggestion: se.Suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &SkibidiError{
		Code:     "GENERAL_ERROR",
		Message:  err.Error(),
		Details:  details,
		Cause:    err,
		ExitCode: ExitGeneral,
	}
}

// WithSuggestion adds a suggestion to an error.
func WithSuggestion(err error, suggestion string) error {
	if err == nil {
		return nil
	}

	var se *SkibidiError
	if errors.As(err, &se) {
		return &SkibidiError{
			Code:       se.Code,
			Message:    se.Message,
			Details:    se.Details,
			Suggestion: suggestion,
			Cause:      se.Cause,
			ExitCode:   se.ExitCode,
		}
	}

	return &SkibidiError{
		Code:       "GENERAL_ERROR",
		Message:    err.Error(),
		Suggestion: suggestion,
		Cause:      err,
		ExitCode:   ExitGeneral,
	}
}

// ExitCode returns the appropriate exit code for an error.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var se *SkibidiError
	if errors.As(err, &se) {
		return se.ExitCode
	}

	return ExitGeneral
}

// Code returns the error code for an error.
func Code(err error) string {
	var se *SkibidiError
	if errors.As(err, &se) {
		return se.Code
	}
	return "GENERAL_ERROR"
}

// Is wraps errors.Is for convenience.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As wraps errors.As for convenience.
func As(err error, target any) bool {
	return errors.As(err, target)
}
