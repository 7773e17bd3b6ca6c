package cli

import (
	"github.com/spf13/cobra"
)

// completionCmd prints a completion script for the requested shell.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var completionCmd = &cobra.Command{
	Use:   "completion <shell>",
	Short: "Print a shell completion script",
	Long: `Print a completion script for bash, zsh, fish or powershell so the shell
can complete skibidi commands and flags such as --wallet and --output.

Install it once per shell:

  bash        skibidi completion bash > ~/.local/share/bash-completion/completions/skibidi
  zsh         skibidi completion zsh > "${fpath[1]}/_skibidi"
  fish        skibidi completion fish > ~/.config/fish/completions/skibidi.fish
  powershell  skibidi completion powershell >> $PROFILE

Open a new shell afterwards.`,
	DisableFlagsInUseLine: true,
	ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	// Scripts are printed even when the data directory has no usable config.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	RunE:              runCompletion,
}

func runCompletion(cmd *cobra.Command, args []string) error {
	root, w := cmd.Root(), cmd.OutOrStdout()
	gen := map[string]func() error{
		"bash":       func() error { return root.GenBashCompletionV2(w, true) },
		"zsh":        func() error { return root.GenZshCompletion(w) },
		"fish":       func() error { return root.GenFishCompletion(w, true) },
		"powershell": func() error { return root.GenPowerShellCompletionWithDesc(w) },
	}
	return gen[args[0]]()
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(completionCmd)
}
