package cli

import (
	"fmt"
	"time"

	"github.com/rshade/tokenscope/internal/cache"
	"github.com/rshade/tokenscope/internal/config"
	"github.com/rshade/tokenscope/internal/explorer"
	"github.com/rshade/tokenscope/internal/logging"
)

// defaultInitialBackoff is the first retry interval for explorer requests.
const defaultInitialBackoff = 500 * time.Millisecond

// newExplorerClient builds the HTTP client for cfg, wrapped in the response
// cache unless caching is disabled.
func newExplorerClient(cfg *config.Config) (explorer.Client, error) {
	httpClient, err := explorer.NewHTTPClient(
		cfg.Explorer.APIURL,
		cfg.Explorer.Timeout,
		explorer.WithRetry(cfg.Explorer.RetryMaxElapsed, defaultInitialBackoff),
		explorer.WithLogger(logging.ComponentLogger(logger, "explorer")),
	)
	if err != nil {
		return nil, err
	}
	if !cfg.Cache.Enabled {
		return httpClient, nil
	}

	store, err := openCache(cfg)
	if err != nil {
		logger.Warn().Err(err).Msg("response cache unavailable, continuing without it")
		return httpClient, nil
	}
	return explorer.NewCachingClient(httpClient, store, logging.ComponentLogger(logger, "cache")), nil
}

// openCache opens the file store configured in cfg.
func openCache(cfg *config.Config) (*cache.FileStore, error) {
	dir, err := cfg.CacheDirectory()
	if err != nil {
		return nil, fmt.Errorf("resolving cache directory: %w", err)
	}
	return cache.NewFileStore(dir, cfg.Cache.Enabled, cfg.Cache.TTLSeconds, cfg.Cache.MaxSizeMB)
}
