package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	invoiceAmount int64
	invoiceMemo   string
	invoiceNoQR   bool
	payYes        bool
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var lightningCmd = &cobra.Command{
	Use:     "lightning",
	Aliases: []string{"ln"},
	Short:   "Create and pay Lightning invoices",
	Long:    `Create Lightning invoices for the selected wallet and pay invoices from it.`,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var lightningInvoiceCmd = &cobra.Command{
	Use:   "invoice",
	Short: "Create an invoice",
	Long: `Create a Lightning invoice payable to the selected wallet.

Example:
  skibidi lightning invoice --amount 2100 --memo "coffee"`,
	Args: cobra.NoArgs,
	RunE: runLightningInvoice,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var lightningPayCmd = &cobra.Command{
	Use:   "pay <invoice>",
	Short: "Pay an invoice",
	Long: `Pay a Lightning invoice from the selected wallet.

Example:
  skibidi lightning pay lntb21u1p...`,
	Args: cobra.ExactArgs(1),
	RunE: runLightningPay,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(lightningCmd)
	lightningCmd.AddCommand(lightningInvoiceCmd, lightningPayCmd)

	lightningInvoiceCmd.Flags().Int64Var(&invoiceAmount, "amount", 0, "amount in satoshis")
	lightningInvoiceCmd.Flags().StringVar(&invoiceMemo, "memo", "", "description shown to the payer")
	lightningInvoiceCmd.Flags().BoolVar(&invoiceNoQR, "no-qr", false, "do not draw the QR code")
	lightningPayCmd.Flags().BoolVarP(&payYes, "yes", "y", false, "do not ask for confirmation")
}

func runLightningInvoice(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	rec, err := cc.Selected()
	if err != nil {
		return err
	}
	api, err := cc.API()
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(cmd, cc.Cfg.GetBackendTimeout())
	defer cancel()

	inv, err := api.CreateInvoice(ctx, rec.Mnemonic, invoiceAmount, invoiceMemo)
	if err != nil {
		return err
	}

	if cc.Fmt.IsJSON() {
		return cc.Fmt.Print(inv)
	}
	_ = cc.Fmt.Field("Amount", output.Sats(inv.AmountSats))
	if inv.Memo != "" {
		_ = cc.Fmt.Field("Memo", inv.Memo)
	}
	if inv.ExpiresAt > 0 {
		_ = cc.Fmt.Field("Expires", time.Unix(inv.ExpiresAt, 0).Local().Format(time.DateTime))
	}
	_ = cc.Fmt.Field("Invoice", inv.PaymentRequest)
	if !invoiceNoQR && output.CanRenderQR(cc.Out) {
		outln(cc.Out)
		if err = output.RenderQR(cc.Out, "lightning:"+inv.PaymentRequest, output.DefaultQRConfig()); err != nil {
			cc.Log.Debug("qr: %v", err)
		}
	}
	return nil
}

func runLightningPay(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	rec, err := cc.Selected()
	if err != nil {
		return err
	}
	api, err := cc.API()
	if err != nil {
		return err
	}

	if !confirmed(payYes, fmt.Sprintf("Pay this invoice from %s?", rec.Name)) {
		return skerr.WithSuggestion(skerr.ErrInvalidInput, "cancelled")
	}

	ctx, cancel := contextWithTimeout(cmd, cc.Cfg.GetBackendTimeout())
	defer cancel()

	p, err := api.PayInvoice(ctx, rec.Mnemonic, args[0])
	if err != nil {
		return err
	}
	cc.Log.Info("paid invoice from %s hash=%s", rec.ID, p.PaymentHash)

	if cc.Fmt.IsJSON() {
		return cc.Fmt.Print(p)
	}
	output.Success(cc.Out, "Paid %s (%s)", output.Sats(p.AmountSats), p.Status)
	_ = cc.Fmt.Field("Fee", output.Sats(p.FeeSats))
	_ = cc.Fmt.Field("Payment hash", p.PaymentHash)
	return nil
}
