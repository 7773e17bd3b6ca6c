package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/backend"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/cache"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/session"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var historyLimit int

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the selected wallet's balance",
	Long: `Fetch the balance of the selected wallet and show it in sats, BTC and USD.

Example:
  skibidi balance
  skibidi balance --wallet "Sigma Stash" -o json`,
	Args: cobra.NoArgs,
	RunE: runBalance,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the selected wallet's transactions",
	Long: `List transactions of the selected wallet, newest first.

Example:
  skibidi history
  skibidi history --limit 5`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(balanceCmd, historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 0, "show at most this many transactions")
}

type balanceResult struct {
	Wallet      walletView  `json:"wallet"`
	Confirmed   int64       `json:"confirmed"`
	Unconfirmed int64       `json:"unconfirmed"`
	Total       int64       `json:"total"`
	USD         float64     `json:"usd"`
	Price       cache.Quote `json:"price"`
}

// loadSession selects the wallet and fetches its balance, history and the
// spot price in one refresh.
func loadSession(cmd *cobra.Command) (*CommandContext, session.State, error) {
	cc := GetCmdContext(cmd)
	ctrl, err := cc.Controller(false)
	if err != nil {
		return cc, session.State{}, err
	}

	ctx, cancel := contextWithTimeout(cmd, cc.Cfg.GetBackendTimeout()*2)
	defer cancel()

	if _, err = cc.Activate(ctx, ctrl); err != nil {
		return cc, session.State{}, err
	}
	if _, err = cc.Prices().Refresh(ctx); err != nil {
		cc.Log.Debug("price refresh: %v", err)
	}
	return cc, ctrl.Snapshot(), nil
}

func runBalance(cmd *cobra.Command, _ []string) error {
	cc, state, err := loadSession(cmd)
	if err != nil {
		return err
	}

	bal := state.Balance
	usd := cc.Prices().ToUSD(bal.Total)
	if cc.Fmt.IsJSON() {
		return cc.Fmt.Print(balanceResult{
			Wallet:      viewOf(*state.Selected),
			Confirmed:   bal.Confirmed,
			Unconfirmed: bal.Unconfirmed,
			Total:       bal.Total,
			USD:         usd,
			Price:       state.Price,
		})
	}

	printBalance(cc, state)
	return nil
}

func printBalance(cc *CommandContext, state session.State) {
	bal := state.Balance
	_ = cc.Fmt.Field("Wallet", state.Selected.Name)
	_ = cc.Fmt.Field("Balance", output.Sats(bal.Total)+" ("+output.BTC(bal.Total)+")")
	if bal.Unconfirmed != 0 {
		_ = cc.Fmt.Field("Pending", output.SignedSats(bal.Unconfirmed))
	}
	_ = cc.Fmt.Field("Value", priceLabel(cc.Prices().ToUSD(bal.Total), state.Price))
}

// priceLabel renders a USD value, flagging a fallback price.
func priceLabel(usd float64, q cache.Quote) string {
	switch {
	case q.USD == 0:
		return "price unavailable"
	case q.Fallback:
		return output.USD(usd) + " (estimated)"
	default:
		return output.USD(usd)
	}
}

func runHistory(cmd *cobra.Command, _ []string) error {
	cc, state, err := loadSession(cmd)
	if err != nil {
		return err
	}

	txs := state.Transactions
	if historyLimit > 0 && len(txs) > historyLimit {
		txs = txs[:historyLimit]
	}
	if cc.Fmt.IsJSON() {
		if txs == nil {
			txs = []backend.Transaction{}
		}
		return cc.Fmt.Print(txs)
	}

	if len(txs) == 0 {
		output.Info(cc.Out, "No transactions yet. Share your address with 'skibidi receive'.")
		return nil
	}

	t := output.NewTable("WHEN", "AMOUNT", "STATUS", "TXID")
	t.AlignRight(1)
	for _, tx := range txs {
		status := "pending"
		if tx.Confirmed() {
			status = "confirmed"
		}
		when := "-"
		if tx.Timestamp > 0 {
			when = time.Unix(tx.Timestamp, 0).Local().Format("2006-01-02 15:04")
		}
		t.AddRow(when, output.SignedSats(tx.Amount), status, shortTxID(tx.TxID))
	}
	return t.Render(cc.Out)
}

func shortTxID(txid string) string {
	if len(txid) <= 16 {
		return txid
	}
	return txid[:8] + "…" + txid[len(txid)-8:]
}
