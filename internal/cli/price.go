package cli

import (
	"time"

	"github.com/spf13/cobra"

)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var priceCmd = &cobra.Command{
	Use:   "price",
	Short: "Show the BTC/USD spot price",
	Args:  cobra.NoArgs,
	RunE:  runPrice,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(priceCmd)
}

func runPrice(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	ctx, cancel := contextWithTimeout(cmd, cc.Cfg.GetBackendTimeout())
	defer cancel()

	q, err := cc.Prices().Refresh(ctx)
	if err != nil && q.USD == 0 {
		return err
	}

	if cc.Fmt.IsJSON() {
		return cc.Fmt.Print(q)
	}
	_ = cc.Fmt.Field("BTC/USD", priceLabel(q.USD, q))
	if !q.LastUpdated.IsZero() {
		_ = cc.Fmt.Field("Updated", q.LastUpdated.Local().Format(time.DateTime))
	}
	return nil
}
