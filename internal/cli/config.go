package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jrakibi/skibidi-wallet-sub000/internal/config"
	"github.com/jrakibi/skibidi-wallet-sub000/internal/output"
	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// configCmd is the parent command for configuration operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `View and initialize Skibidi Cash configuration settings.`,
}

// configInitCmd initializes the configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a default configuration file at ~/.skibidi/config.yaml.

If a configuration file already exists, this command will not overwrite it
unless --force is specified.

Example:
  skibidi config init
  skibidi config init --force`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

// configShowCmd shows the effective configuration.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the effective configuration after environment and flag overrides.

Example:
  skibidi config show
  skibidi config show -o json`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

// configGetCmd prints one configuration value.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var configGetCmd = &cobra.Command{
	Use:   "get <path>",
	Short: "Get a configuration value",
	Long: `Get a configuration value by its dotted YAML path.

Examples:
  skibidi config get backend.url
  skibidi config get price.staleness_minutes`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var configForce bool

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, configShowCmd, configGetCmd)

	configInitCmd.Flags().BoolVar(&configForce, "force", false, "overwrite existing configuration")
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	home := cc.Cfg.GetHome()
	configPath := config.Path(home)

	if _, err := os.Stat(configPath); err == nil && !configForce {
		return skerr.WithSuggestion(
			skerr.ErrGeneral,
			fmt.Sprintf("configuration already exists at %s. Use --force to overwrite.", configPath),
		)
	}

	defaults := config.Defaults()
	defaults.Home = home
	if err := config.Save(defaults, configPath); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	if cc.Fmt.IsJSON() {
		return cc.Fmt.Print(map[string]string{"path": configPath})
	}
	output.Success(cc.Out, "Configuration initialized at %s", configPath)
	outln(cc.Out)
	outln(cc.Out, "Edit this file to configure:")
	outln(cc.Out, "  - backend.url: the wallet backend")
	outln(cc.Out, "  - storage.driver: file or bolt; storage.encrypt seals wallets.json")
	outln(cc.Out, "  - price.fallback_usd: the price shown while CoinGecko is unreachable")
	outln(cc.Out, "  - logging.level: Log level (off/error/info/debug)")
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cc := GetCmdContext(cmd)
	if cc.Fmt.IsJSON() {
		tree, err := configTree(cc.Cfg)
		if err != nil {
			return err
		}
		return cc.Fmt.Print(tree)
	}

	data, err := yaml.Marshal(cc.Cfg)
	if err != nil {
		return err
	}
	out(cc.Out, "# %s\n%s", config.Path(cc.Cfg.GetHome()), data)
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cc := GetCmdContext(cmd)
	tree, err := configTree(cc.Cfg)
	if err != nil {
		return err
	}

	var node any = tree
	for _, part := range strings.Split(args[0], ".") {
		m, ok := node.(map[string]any)
		if !ok {
			node = nil
			break
		}
		node = m[part]
	}
	if node == nil {
		return skerr.WithSuggestion(
			skerr.WithDetails(skerr.ErrNotFound, map[string]string{"path": args[0]}),
			"run 'skibidi config show' to list the available keys",
		)
	}

	if cc.Fmt.IsJSON() {
		return cc.Fmt.Print(map[string]any{args[0]: node})
	}
	outln(cc.Out, node)
	return nil
}

// configTree converts cfg to its YAML key tree.
func configTree(cfg *config.Config) (map[string]any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	tree := map[string]any{}
	if err := yaml.Unmarshal(data, &tree); err != nil {
		return nil, err
	}
	return tree, nil
}
