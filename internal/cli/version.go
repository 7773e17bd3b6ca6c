package cli

import (
	"github.com/spf13/cobra"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/version"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cc := GetCmdContext(cmd)
		info := version.Get()
		if cc.Fmt.IsJSON() {
			return cc.Fmt.Print(info)
		}
		outln(cc.Out, info.String())
		return nil
	},
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(versionCmd)
}
