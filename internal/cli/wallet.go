package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/session"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// showReveal prints the recovery phrase.
	showReveal bool
	// deleteYes skips the delete confirmation.
	deleteYes bool
	// clearYes skips the clear confirmation.
	clearYes bool
)

// walletCmd is the parent command for wallet operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage your wallets",
	Long:  `Create, restore, list, inspect and delete the wallets stored on this machine.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored wallets",
	Long: `List every stored wallet in the order it was added. The first wallet is
the one other commands use unless --wallet is given.

Example:
  skibidi wallet list
  skibidi wallet list -o json`,
	Args: cobra.NoArgs,
	RunE: runWalletList,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletShowCmd = &cobra.Command{
	Use:   "show [id|name]",
	Short: "Show wallet details",
	Long: `Show one wallet. Without an argument the selected wallet is shown.

Example:
  skibidi wallet show
  skibidi wallet show "Rizz Reserve" --reveal`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWalletShow,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletDeleteCmd = &cobra.Command{
	Use:   "delete <id|name>",
	Short: "Delete a wallet from this machine",
	Long: `Remove a wallet from the local list. The backend still knows the wallet;
restore it later with its recovery phrase.

Example:
  skibidi wallet delete w_1a2b3c
  skibidi wallet delete "Sigma Stash" --yes`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletDelete,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every wallet from this machine",
	Args:  cobra.NoArgs,
	RunE:  runWalletClear,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletCreateCmd, walletRestoreCmd, walletListCmd, walletShowCmd, walletDeleteCmd, walletClearCmd)

	walletShowCmd.Flags().BoolVar(&showReveal, "reveal", false, "print the recovery phrase")
	walletDeleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "do not ask for confirmation")
	walletClearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "do not ask for confirmation")
}

func runWalletList(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	store, err := cc.Store()
	if err != nil {
		return err
	}

	records := store.List()
	if cc.Fmt.IsJSON() {
		views := make([]walletView, 0, len(records))
		for _, rec := range records {
			views = append(views, viewOf(rec))
		}
		return cc.Fmt.Print(views)
	}

	if len(records) == 0 {
		output.Info(cc.Out, "No wallets yet. Create one with 'skibidi wallet create'.")
		return nil
	}

	t := output.NewTable("", "NAME", "ID", "ADDRESS", "CREATED")
	for i, rec := range records {
		marker := ""
		if i == 0 {
			marker = "*"
		}
		t.AddRow(marker, rec.Name, rec.ID, rec.Address, rec.CreatedAt)
	}
	return t.Render(cc.Out)
}

func runWalletShow(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)

	var rec wallet.Record
	var err error
	if len(args) == 1 {
		store, serr := cc.Store()
		if serr != nil {
			return serr
		}
		rec, err = findWallet(store, args[0])
	} else {
		rec, err = cc.Selected()
	}
	if err != nil {
		return err
	}

	if showReveal && !cc.Fmt.IsJSON() &&
		!promptConfirmFn("Your recovery phrase will be shown on screen. Continue?") {
		return skerr.WithSuggestion(skerr.ErrInvalidInput, "cancelled")
	}

	if cc.Fmt.IsJSON() {
		type shown struct {
			walletView
			Mnemonic string `json:"mnemonic,omitempty"`
		}
		v := shown{walletView: viewOf(rec)}
		if showReveal {
			v.Mnemonic = rec.Mnemonic
		}
		return cc.Fmt.Print(v)
	}

	_ = cc.Fmt.Field("Name", rec.Name)
	_ = cc.Fmt.Field("ID", rec.ID)
	_ = cc.Fmt.Field("Address", rec.Address)
	_ = cc.Fmt.Field("Avatar", rec.Icon())
	_ = cc.Fmt.Field("Created", rec.CreatedAt)
	if showReveal {
		outln(cc.Out)
		printWords(cc, rec.Words())
	}
	return nil
}

func runWalletDelete(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	store, err := cc.Store()
	if err != nil {
		return err
	}
	rec, err := findWallet(store, args[0])
	if err != nil {
		return err
	}

	if !confirmed(deleteYes, fmt.Sprintf(
		"Delete %q? You can only get it back with its recovery phrase.", rec.Name)) {
		return skerr.WithSuggestion(skerr.ErrInvalidInput, "cancelled")
	}

	ctrl, err := cc.Controller(false)
	if err != nil {
		return err
	}
	route, err := ctrl.Delete(cmd.Context(), rec.ID)
	if err != nil {
		return err
	}
	return printRoute(cc, fmt.Sprintf("Deleted %s", rec.Name), route)
}

func runWalletClear(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	store, err := cc.Store()
	if err != nil {
		return err
	}
	n := store.Len()
	if n == 0 {
		return printRoute(cc, "Nothing to clear", session.RouteOnboarding)
	}

	if !confirmed(clearYes, fmt.Sprintf("Delete all %d wallets from this machine?", n)) {
		return skerr.WithSuggestion(skerr.ErrInvalidInput, "cancelled")
	}
	if err := store.Clear(); err != nil {
		return err
	}
	return printRoute(cc, fmt.Sprintf("Deleted %d wallets", n), session.RouteOnboarding)
}

// printRoute reports a destructive operation and where the user goes next.
func printRoute(cc *CommandContext, msg string, route session.Route) error {
	if cc.Fmt.IsJSON() {
		return cc.Fmt.Print(map[string]string{"message": msg, "route": route.String()})
	}
	output.Success(cc.Out, "%s", msg)
	if route == session.RouteOnboarding {
		output.Info(cc.Out, "No wallets left. Create one with 'skibidi wallet create' or restore one with 'skibidi wallet restore'.")
	}
	return nil
}

// printWords prints a recovery phrase as a numbered grid.
func printWords(cc *CommandContext, words []string) {
	const perRow = 3
	var sb strings.Builder
	for i, w := range words {
		sb.WriteString(fmt.Sprintf("%3d. %-10s", i+1, w))
		if (i+1)%perRow == 0 || i == len(words)-1 {
			sb.WriteString("\n")
		}
	}
	out(cc.Out, "%s", sb.String())
}

// confirmed asks question unless yes is already set.
func confirmed(yes bool, question string) bool {
	return yes || promptConfirmFn(question)
}
