package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wallet"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/wizard"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	restorePhrase   string
	restoreGamified bool
	restoreName     string
	restoreIcon     int
	restoreYes      bool
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restore a wallet from its recovery phrase",
	Long: `Restore a wallet from its 12-word recovery phrase. Type the whole phrase
at once, or use --gamified to fill in one word at a time with spelling
suggestions.

Example:
  skibidi wallet restore
  skibidi wallet restore --gamified
  skibidi wallet restore --phrase "word1 word2 ... word12" --name "Rizz Reserve"`,
	Args: cobra.NoArgs,
	RunE: runWalletRestore,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for flag registration
func init() {
	walletRestoreCmd.Flags().StringVar(&restorePhrase, "phrase", "", "recovery phrase (prompted when omitted)")
	walletRestoreCmd.Flags().BoolVar(&restoreGamified, "gamified", false, "enter the phrase one word at a time")
	walletRestoreCmd.Flags().StringVar(&restoreName, "name", "", "wallet name (default: a suggested name)")
	walletRestoreCmd.Flags().IntVar(&restoreIcon, "icon", 0, "avatar index, 0-7")
	walletRestoreCmd.Flags().BoolVarP(&restoreYes, "yes", "y", false, "accept defaults without prompting")
}

func runWalletRestore(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	store, err := cc.Store()
	if err != nil {
		return err
	}
	api, err := cc.API()
	if err != nil {
		return err
	}

	mode := wizard.ModeClassic
	if restoreGamified {
		mode = wizard.ModeGamified
	}
	w := wizard.NewRestoreWizard(store, api, mode, cc.WizardOptions())
	defer w.Abandon()

	switch {
	case restorePhrase != "":
		err = w.SetPhrase(restorePhrase)
	case mode == wizard.ModeGamified:
		err = enterWords(cc, w)
	default:
		var phrase string
		if phrase, err = promptLineFn("Enter your 12-word recovery phrase: "); err == nil {
			err = w.SetPhrase(phrase)
		}
	}
	if err != nil {
		return err
	}

	if w.ChecksumWarning() {
		output.Warn(cc.Err, "This phrase does not pass the BIP39 checksum. %s Restoring anyway.", unknownWordHint(w.Phrase()))
	}
	if err = w.Restore(cmd.Context()); err != nil {
		return err
	}

	name := restoreName
	if name == "" && !restoreYes {
		if name, err = promptDefault("Wallet name", w.SuggestedName()); err != nil {
			return err
		}
	}
	if name == "" {
		name = w.SuggestedName()
	}
	icon := restoreIcon
	if !cmd.Flags().Changed("icon") && !restoreYes {
		if icon, err = promptIcon(); err != nil {
			return err
		}
	}
	if err = w.Customize(name, icon); err != nil {
		return err
	}

	rec, err := finishWizard(cmd.Context(), w, restoreYes)
	if err != nil {
		return err
	}

	if cc.Fmt.IsJSON() {
		return cc.Fmt.Print(viewOf(rec))
	}
	output.Success(cc.Out, "Restored %s (%s)", rec.Name, rec.ID)
	_ = cc.Fmt.Field("Address", rec.Address)
	announceNewest(cc, store)
	return nil
}

// enterWords fills the word board one slot at a time. An unknown word is
// answered with suggestions; typing it again keeps it.
func enterWords(cc *CommandContext, w *wizard.RestoreWizard) error {
	for i := 0; i < wallet.WordCount; i++ {
		var rejected string
		for {
			word, err := promptLineFn(fmt.Sprintf("Word %d/%d: ", i+1, wallet.WordCount))
			if err != nil {
				return err
			}
			word = strings.ToLower(strings.TrimSpace(word))
			if word == "" {
				continue
			}
			if err := w.SetWord(i, word); err != nil {
				return err
			}
			if wallet.IsValidWord(word) || word == rejected {
				break
			}

			rejected = word
			if hints := w.Suggest(i, 3); len(hints) > 0 {
				output.Warn(cc.Err, "%q is not on the word list. Did you mean: %s?", word, strings.Join(hints, ", "))
			} else {
				output.Warn(cc.Err, "%q is not on the word list. Type it again to keep it.", word)
			}
		}

		filled, total := w.Progress()
		out(cc.Err, "  %d/%d\n", filled, total)
	}
	return nil
}

// unknownWordHint names the positions of words missing from the word list.
func unknownWordHint(phrase string) string {
	unknown := wallet.UnknownWords(phrase)
	if len(unknown) == 0 {
		return "Check the word order."
	}
	positions := make([]string, len(unknown))
	for i, pos := range unknown {
		positions[i] = strconv.Itoa(pos + 1)
	}
	if len(positions) == 1 {
		return "Word " + positions[0] + " is not in the word list."
	}
	return "Words " + strings.Join(positions, ", ") + " are not in the word list."
}
