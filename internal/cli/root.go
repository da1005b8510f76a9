// Package cli implements the tokenscope command line.
package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/tokenscope/internal/config"
	"github.com/rshade/tokenscope/internal/logging"
)

// logger is the package-level logger for CLI operations.
var logger = zerolog.Nop() //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command for the tokenscope CLI. It loads the
// configuration, wires up logging, and registers the subcommands.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "tokenscope",
		Short:         "Browse token pages of a Blockscout explorer from the terminal",
		Long:          "tokenscope: token details, transfers, holders and inventory from a Blockscout /api/v2 explorer",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// Negative values would make every cache entry expire before it is written.
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			if err := loadConfig(cmd); err != nil {
				return err
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $TOKENSCOPE_HOME/config.yaml)")
	cmd.PersistentFlags().String("api-url", "", "explorer base URL, e.g. https://eth.blockscout.com")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "cache TTL in seconds (0 = use config default, overrides config file and env var)")
	cmd.PersistentFlags().Bool("no-cache", false, "bypass the response cache")

	cmd.AddCommand(NewTokenCmd(), newCacheCmd(), newConfigCmd(), NewVersionCmd(ver))
	return cmd
}

const rootCmdExample = `  # Open the token page for USDT
  tokenscope token 0xdAC17F958D2ee523a2206206994597C13D831ec7

  # Open a token page URL on its holders tab
  tokenscope token "https://eth.blockscout.com/token/0xdAC17F958D2ee523a2206206994597C13D831ec7?tab=holders"

  # Print the inventory of an NFT collection as JSON
  tokenscope token 0xBC4CA0EdA7647A8aB7C2061c2E118A18a936f13D --tab inventory --output json

  # Use another Blockscout instance
  tokenscope --api-url https://base.blockscout.com token 0x833589fCD6eDb6E08f4c7C32D4f71b54bdA02913

  # Show cache usage
  tokenscope cache info`

// loadConfig resolves the configuration for this invocation: the --config
// file or the default one, then flag overrides. The result becomes the
// global config.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	if path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	} else {
		cfg = config.GetGlobalConfig()
	}

	if apiURL, _ := cmd.Flags().GetString("api-url"); apiURL != "" {
		cfg.Explorer.APIURL = apiURL
	}
	if ttl, _ := cmd.Flags().GetInt("cache-ttl"); ttl > 0 {
		cfg.Cache.TTLSeconds = ttl
	}
	if noCache, _ := cmd.Flags().GetBool("no-cache"); noCache {
		cfg.Cache.Enabled = false
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	config.SetGlobalConfig(cfg)
	return nil
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Response cache commands"}
	cmd.AddCommand(NewCacheInfoCmd(), NewCacheClearCmd())
	return cmd
}

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigShowCmd(), NewConfigValidateCmd())
	return cmd
}
