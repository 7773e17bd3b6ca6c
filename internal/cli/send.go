package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/backend"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	sendTo     string
	sendAmount int64
	sendYes    bool
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send bitcoin on-chain",
	Long: `Send bitcoin from the selected wallet. The amount is in satoshis; the
backend adds the network fee.

Example:
  skibidi send --to tb1qexample... --amount 5000
  skibidi send --wallet "Rizz Reserve" --to tb1q... --amount 21000 --yes`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVar(&sendTo, "to", "", "destination address")
	sendCmd.Flags().Int64Var(&sendAmount, "amount", 0, "amount in satoshis")
	sendCmd.Flags().BoolVarP(&sendYes, "yes", "y", false, "do not ask for confirmation")
}

func runSend(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	rec, err := cc.Selected()
	if err != nil {
		return err
	}
	api, err := cc.API()
	if err != nil {
		return err
	}

	if !confirmed(sendYes, fmt.Sprintf("Send %s from %s to %s?", output.Sats(sendAmount), rec.Name, sendTo)) {
		return skerr.WithSuggestion(skerr.ErrInvalidInput, "cancelled")
	}

	ctx, cancel := contextWithTimeout(cmd, cc.Cfg.GetBackendTimeout())
	defer cancel()

	res, err := api.SendBitcoin(ctx, backend.SendRequest{
		Mnemonic:   rec.Mnemonic,
		ToAddress:  sendTo,
		AmountSats: sendAmount,
	})
	if err != nil {
		return err
	}
	cc.Log.Info("sent %d sats from %s txid=%s", sendAmount, rec.ID, res.TxID)

	if cc.Fmt.IsJSON() {
		return cc.Fmt.Print(res)
	}
	output.Success(cc.Out, "Sent %s", output.Sats(sendAmount))
	_ = cc.Fmt.Field("TxID", res.TxID)
	if res.FeeSats > 0 {
		_ = cc.Fmt.Field("Fee", output.Sats(res.FeeSats))
	}
	return nil
}
