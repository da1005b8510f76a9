package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/tokenscope/internal/config"
	"github.com/rshade/tokenscope/internal/explorer"
)

// remoteVersionTimeout bounds the backend version check.
const remoteVersionTimeout = 10 * time.Second

// NewVersionCmd creates the version command. With --remote it also checks
// that the configured explorer backend is new enough.
func NewVersionCmd(ver string) *cobra.Command {
	var remote bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the tokenscope version",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.Printf("tokenscope %s\n", ver)
			if !remote {
				return nil
			}

			cfg := config.GetGlobalConfig()
			client, err := explorer.NewHTTPClient(cfg.Explorer.APIURL, cfg.Explorer.Timeout,
				explorer.WithLogger(logger), explorer.WithRetry(0, 0))
			if err != nil {
				return err
			}
			ctx, cancel := context.WithTimeout(cmd.Context(), remoteVersionTimeout)
			defer cancel()

			backend, err := client.BackendVersion(ctx)
			if err != nil {
				return fmt.Errorf("querying backend version: %w", err)
			}
			cmd.Printf("explorer %s backend %s\n", cfg.Explorer.APIURL, backend)
			if err := explorer.CheckBackendVersion(backend); err != nil {
				return err
			}
			cmd.Printf("backend is supported (>= %s)\n", explorer.MinBackendVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&remote, "remote", false, "query and check the explorer backend version")
	return cmd
}
