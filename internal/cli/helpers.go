package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
)

// out is a helper for CLI output that ignores write errors.
//
//nolint:errcheck // CLI output writes are intentionally unchecked
func out(w io.Writer, format string, args ...any) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes are intentionally unchecked
func outln(w io.Writer, args ...any) {
	fmt.Fprintln(w, args...)
}

// contextWithTimeout returns a timeout context rooted in the command context.
func contextWithTimeout(cmd *cobra.Command, d time.Duration) (context.Context, context.CancelFunc) {
	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	if d <= 0 {
		return context.WithCancel(base)
	}
	return context.WithTimeout(base, d)
}

// walletView is a wallet record without its recovery phrase.
type walletView struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	Icon      int    `json:"icon"`
	Balance   int64  `json:"balance"`
	CreatedAt string `json:"createdAt"`
}

func viewOf(rec wallet.Record) walletView {
	return walletView{
		ID:        rec.ID,
		Name:      rec.Name,
		Address:   rec.Address,
		Icon:      rec.Icon(),
		Balance:   rec.Balance,
		CreatedAt: rec.CreatedAt,
	}
}
