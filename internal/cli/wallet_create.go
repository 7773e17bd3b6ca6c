package cli

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wizard"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	createName string
	createIcon int
	createYes  bool
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new wallet",
	Long: `Create a new wallet. The backend generates the keys and returns a
12-word recovery phrase. Write it down: it is the only way to get the
wallet back.

Example:
  skibidi wallet create
  skibidi wallet create --name "Sigma Stash" --icon 3`,
	Args: cobra.NoArgs,
	RunE: runWalletCreate,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	walletCreateCmd.Flags().StringVar(&createName, "name", "", "wallet name (default: a suggested name)")
	walletCreateCmd.Flags().IntVar(&createIcon, "icon", 0, "avatar index, 0-7")
	walletCreateCmd.Flags().BoolVarP(&createYes, "yes", "y", false, "accept defaults and skip the backup confirmation")
}

type createResult struct {
	Wallet   walletView `json:"wallet"`
	Mnemonic string     `json:"mnemonic"`
}

func runWalletCreate(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	store, err := cc.Store()
	if err != nil {
		return err
	}
	api, err := cc.API()
	if err != nil {
		return err
	}

	w := wizard.NewCreateWizard(store, api, cc.WizardOptions())
	defer w.Abandon()

	name := createName
	if name == "" && !createYes {
		if name, err = promptDefault("Wallet name", w.SuggestedName()); err != nil {
			return err
		}
	}
	if name == "" {
		name = w.SuggestedName()
	}
	icon := createIcon
	if !cmd.Flags().Changed("icon") && !createYes {
		if icon, err = promptIcon(); err != nil {
			return err
		}
	}
	if err = w.SetName(name, icon); err != nil {
		return err
	}

	if !cc.Fmt.IsJSON() {
		output.Info(cc.Err, "Generating your wallet...")
	}
	if err = w.Generate(cmd.Context()); err != nil {
		return err
	}

	words := w.Words()
	if !cc.Fmt.IsJSON() {
		outln(cc.Out, "Your recovery phrase:")
		outln(cc.Out)
		printWords(cc, words)
		outln(cc.Out)
		output.Warn(cc.Out, "Write these words down in order and keep them offline. Anyone with them controls your bitcoin.")
	}

	if !confirmed(createYes, "Have you written down your recovery phrase?") {
		return skerr.WithSuggestion(skerr.ErrInvalidInput,
			"nothing was saved; run 'skibidi wallet create' again when you are ready to back up the phrase")
	}
	if err = w.ConfirmBackup(); err != nil {
		return err
	}

	rec, err := finishWizard(cmd.Context(), w, createYes)
	if err != nil {
		return err
	}

	if cc.Fmt.IsJSON() {
		return cc.Fmt.Print(createResult{Wallet: viewOf(rec), Mnemonic: strings.Join(words, " ")})
	}
	output.Success(cc.Out, "Saved %s (%s)", rec.Name, rec.ID)
	_ = cc.Fmt.Field("Address", rec.Address)
	announceNewest(cc, store)
	return nil
}

// announceNewest points at the wallet just saved when commands will not
// pick it by default.
func announceNewest(cc *CommandContext, store *wallet.Store) {
	newest, ok := store.Newest()
	if !ok || store.Len() < 2 {
		return
	}
	output.Info(cc.Err, "Commands use your first wallet by default. Add --wallet %q to use %s.", newest.Name, newest.Name)
}

// promptIcon asks for an avatar index; an empty answer keeps 0.
func promptIcon() (int, error) {
	answer, err := promptDefault("Avatar (0-7)", "0")
	if err != nil {
		return 0, err
	}
	icon, err := strconv.Atoi(answer)
	if err != nil || icon < 0 || icon >= wallet.AvatarCount {
		return 0, skerr.WithDetails(skerr.ErrInvalidInput, map[string]string{"icon": answer})
	}
	return icon, nil
}

// finisher is the save step shared by both wizards.
type finisher interface {
	Finish(ctx context.Context) (wallet.Record, error)
	Resolve(ctx context.Context, choice wizard.Conflict) (wallet.Record, error)
}

// finishWizard saves the wallet and settles a duplicate by asking the user.
// With yes set a duplicate is cancelled.
func finishWizard(ctx context.Context, w finisher, yes bool) (wallet.Record, error) {
	rec, err := w.Finish(ctx)
	var conflict *wallet.ConflictError
	if !errors.As(err, &conflict) {
		return rec, err
	}

	choice := wizard.ConflictCancel
	if !yes {
		answer, perr := promptLineFn(
			"This wallet is already saved as \"" + conflict.Existing.Name + "\". [c]ancel or clear [a]ll wallets and save it: ")
		if perr == nil && strings.HasPrefix(strings.ToLower(answer), "a") {
			choice = wizard.ConflictClearAll
		}
	}

	rec, err = w.Resolve(ctx, choice)
	if err != nil {
		return rec, err
	}
	if rec.ID == "" {
		return rec, skerr.WithSuggestion(
			skerr.WithDetails(skerr.ErrWalletExists, map[string]string{"id": conflict.Existing.ID}),
			"the wallet is already in your list",
		)
	}
	return rec, nil
}
