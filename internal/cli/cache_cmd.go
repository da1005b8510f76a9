package cli

import (
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/tokenscope/internal/cache"
	"github.com/rshade/tokenscope/internal/config"
)

// tabPadding is the column gap for tabwriter output.
const tabPadding = 2

// NewCacheInfoCmd creates the cache info command.
func NewCacheInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show response cache location, size and TTL",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if errors.Is(err, cache.ErrCacheDisabled) {
				cmd.Println("Cache is disabled")
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading cache: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintf(w, "Directory\t%s\n", stats.Directory)
			fmt.Fprintf(w, "Entries\t%d (%d expired)\n", stats.Entries, stats.Expired)
			fmt.Fprintf(w, "Size\t%d bytes\n", stats.SizeBytes)
			fmt.Fprintf(w, "TTL\t%s\n", cache.FormatDuration(time.Duration(stats.TTLSeconds)*time.Second))
			return w.Flush()
		},
	}
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	var expiredOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached explorer responses",
		Example: `  # Remove everything
  tokenscope cache clear

  # Remove only expired entries
  tokenscope cache clear --expired`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := openCache(config.GetGlobalConfig())
			if err != nil {
				return err
			}
			if !store.IsEnabled() {
				cmd.Println("Cache is disabled")
				return nil
			}

			var removed int
			if expiredOnly {
				removed, err = store.CleanupExpired()
			} else {
				removed, err = store.Clear()
			}
			if err != nil {
				return fmt.Errorf("clearing cache: %w", err)
			}
			logger.Info().Ctx(cmd.Context()).Int("removed", removed).Bool("expired_only", expiredOnly).Msg("cache cleared")
			cmd.Printf("Removed %d cache entries from %s\n", removed, store.Directory())
			return nil
		},
	}

	cmd.Flags().BoolVar(&expiredOnly, "expired", false, "only remove expired entries")
	return cmd
}
