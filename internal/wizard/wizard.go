// Package wizard implements the linear wallet creation and restoration
// flows. Each wizard moves forward one step at a time; a failed backend
// call sends it back exactly one step and nothing is persisted until the
// final step succeeds.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/backend"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// Timing holds the pauses that let progress animations play.
type Timing struct {
	GenerateDelay time.Duration
	CompleteDelay time.Duration
}

// Conflict is the user's answer to a duplicate wallet prompt.
type Conflict int

// Conflict choices.
const (
	ConflictCancel Conflict = iota
	ConflictClearAll
)

// Alerter shows a user-facing alert.
type Alerter interface {
	Alert(title, message string)
}

// Creator creates wallets. *backend.Client satisfies it.
type Creator interface {
	CreateWallet(ctx context.Context) (*backend.WalletInfo, error)
}

// Restorer restores wallets. *backend.Client satisfies it.
type Restorer interface {
	RestoreWallet(ctx context.Context, mnemonic string) (*backend.WalletInfo, error)
}

// Options holds the collaborators shared by both wizards.
type Options struct {
	Timing  Timing
	Alerter Alerter

	// Now stamps saved records. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

func (o Options) alert(err error) {
	if o.Alerter == nil {
		return
	}
	var apiErr *backend.APIError
	switch {
	case errors.As(err, &apiErr):
		o.Alerter.Alert("Error", apiErr.Error())
	case errors.Is(err, skerr.ErrNetworkError):
		o.Alerter.Alert("Connection problem", "Check your connection and try again.")
	default:
		o.Alerter.Alert("Error", err.Error())
	}
}

func transitionError(from fmt.Stringer, action string) error {
	return skerr.WithDetails(skerr.ErrInvalidTransition, map[string]string{
		"step":   from.String(),
		"action": action,
	})
}

// resolve applies the user's answer to a duplicate wallet prompt.
// ConflictClearAll clears the store and then saves rec.
func resolve(store *wallet.Store, rec wallet.Record, choice Conflict) (bool, error) {
	switch choice {
	case ConflictCancel:
		return false, nil
	case ConflictClearAll:
		if err := store.Clear(); err != nil {
			return false, err
		}
		if err := store.Append(rec); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, skerr.WithDetails(skerr.ErrInvalidInput, map[string]string{"choice": fmt.Sprint(int(choice))})
	}
}

func validIcon(icon int) error {
	if icon < 0 || icon >= wallet.AvatarCount {
		return skerr.WithDetails(skerr.ErrInvalidInput, map[string]string{"icon": fmt.Sprint(icon)})
	}
	return nil
}

// pause waits d or until ctx is done. Steps advance either way.
func pause(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
