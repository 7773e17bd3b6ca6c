package cli

import (
	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	receivePNG  string
	receiveNoQR bool
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Show the address to receive bitcoin",
	Long: `Show the receiving address of the selected wallet with a QR code.

Example:
  skibidi receive
  skibidi receive --png address.png`,
	Args: cobra.NoArgs,
	RunE: runReceive,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(receiveCmd)
	receiveCmd.Flags().StringVar(&receivePNG, "png", "", "also write the QR code to this PNG file")
	receiveCmd.Flags().BoolVar(&receiveNoQR, "no-qr", false, "do not draw the QR code")
}

func runReceive(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	rec, err := cc.Selected()
	if err != nil {
		return err
	}

	qr := output.DefaultQRConfig()
	if receivePNG != "" {
		if err = output.WriteQRPNG(receivePNG, "bitcoin:"+rec.Address, qr); err != nil {
			return err
		}
	}

	if cc.Fmt.IsJSON() {
		res := map[string]string{"wallet": rec.Name, "address": rec.Address}
		if receivePNG != "" {
			res["png"] = receivePNG
		}
		return cc.Fmt.Print(res)
	}

	_ = cc.Fmt.Field("Wallet", rec.Name)
	_ = cc.Fmt.Field("Address", rec.Address)
	if !receiveNoQR && output.CanRenderQR(cc.Out) {
		outln(cc.Out)
		if err = output.RenderQR(cc.Out, "bitcoin:"+rec.Address, qr); err != nil {
			cc.Log.Debug("qr: %v", err)
		}
	}
	if receivePNG != "" {
		output.Success(cc.Out, "QR code written to %s", receivePNG)
	}
	return nil
}
