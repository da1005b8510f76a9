// Package config loads tokenscope settings from ~/.tokenscope/config.yaml
// and the environment.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/rshade/tokenscope/internal/cache"
)

// Defaults.
const (
	DefaultAPIURL           = "https://eth.blockscout.com"
	DefaultTimeout          = 15 * time.Second
	DefaultRetryMaxElapsed  = 30 * time.Second
	DefaultCacheTTLSeconds  = cache.DefaultTTLSeconds
	DefaultCacheMaxSizeMB   = cache.DefaultCacheMaxSizeMB
	DefaultConstrainedWidth = 100
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "json"
)

// Environment overrides.
const (
	EnvHome     = "TOKENSCOPE_HOME"
	EnvAPIURL   = "TOKENSCOPE_API_URL"
	EnvCacheTTL = cache.EnvTTLSeconds
	EnvLogLevel = "TOKENSCOPE_LOG_LEVEL"
)

// configFileName is the file name inside the config directory.
const configFileName = "config.yaml"

// Config is the full tokenscope configuration.
type Config struct {
	Explorer ExplorerConfig `yaml:"explorer"`
	Cache    CacheConfig    `yaml:"cache"`
	UI       UIConfig       `yaml:"ui"`
	Logging  LoggingConfig  `yaml:"logging"`

	path string
}

// ExplorerConfig points at the explorer API.
type ExplorerConfig struct {
	APIURL          string        `yaml:"api_url"`
	Timeout         time.Duration `yaml:"timeout"`
	RetryMaxElapsed time.Duration `yaml:"retry_max_elapsed"`
}

// MarshalYAML writes durations as strings such as "15s".
func (e ExplorerConfig) MarshalYAML() (any, error) {
	return struct {
		APIURL          string `yaml:"api_url"`
		Timeout         string `yaml:"timeout"`
		RetryMaxElapsed string `yaml:"retry_max_elapsed"`
	}{e.APIURL, e.Timeout.String(), e.RetryMaxElapsed.String()}, nil
}

// CacheConfig controls the on-disk response cache.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"`
	Directory  string `yaml:"directory,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
}

// UIConfig holds layout and page meta settings.
type UIConfig struct {
	ConstrainedWidth    int    `yaml:"constrained_width"`
	TitleTemplate       string `yaml:"title_template"`
	DescriptionTemplate string `yaml:"description_template"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Explorer: ExplorerConfig{
			APIURL:          DefaultAPIURL,
			Timeout:         DefaultTimeout,
			RetryMaxElapsed: DefaultRetryMaxElapsed,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTLSeconds,
			MaxSizeMB:  DefaultCacheMaxSizeMB,
		},
		UI: UIConfig{
			ConstrainedWidth:    DefaultConstrainedWidth,
			TitleTemplate:       "{hash} token details | tokenscope",
			DescriptionTemplate: "{hash} token details, transfers and holders",
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New loads the default config file, if any, and applies environment
// overrides. A broken config file is ignored in favor of the defaults.
func New() *Config {
	path, err := DefaultConfigPath()
	if err != nil {
		cfg := Default()
		cfg.applyEnv()
		return cfg
	}
	cfg, err := Load(path)
	if err != nil {
		cfg = Default()
		cfg.path = path
		cfg.applyEnv()
	}
	return cfg
}

// Load reads path over the defaults and applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.path = path
	if _, err := os.Stat(path); err == nil {
		if mergeErr := MergeYAMLFile(cfg, path); mergeErr != nil {
			return nil, mergeErr
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config file: %w", err)
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv applies TOKENSCOPE_* overrides. Unparsable values are ignored.
func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.Explorer.APIURL = v
	}
	c.Cache.TTLSeconds = cache.TTLFromEnv(c.Cache.TTLSeconds)
	c.Cache.Enabled = cache.EnabledFromEnv(c.Cache.Enabled)
	if dir := cache.DirFromEnv(); dir != "" {
		c.Cache.Directory = dir
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
}

// Validate checks the settings that would otherwise fail later.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Explorer.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("explorer.api_url %q must be an absolute URL", c.Explorer.APIURL)
	}
	if c.Explorer.Timeout < 0 {
		return errors.New("explorer.timeout must be >= 0")
	}
	if c.Cache.TTLSeconds < 0 {
		return fmt.Errorf("cache.ttl_seconds must be >= 0, got %d", c.Cache.TTLSeconds)
	}
	if c.Cache.MaxSizeMB < 0 {
		return fmt.Errorf("cache.max_size_mb must be >= 0, got %d", c.Cache.MaxSizeMB)
	}
	if c.UI.ConstrainedWidth <= 0 {
		return fmt.Errorf("ui.constrained_width must be > 0, got %d", c.UI.ConstrainedWidth)
	}
	return nil
}

// Path returns the file the config was loaded from, or would be saved to.
func (c *Config) Path() string {
	return c.path
}

// CacheDirectory returns the configured cache directory or the default one
// under the config directory.
func (c *Config) CacheDirectory() (string, error) {
	if c.Cache.Directory != "" {
		return c.Cache.Directory, nil
	}
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "cache"), nil
}

// Save writes the config as YAML to path, creating the parent directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if mkErr := os.MkdirAll(filepath.Dir(path), 0700); mkErr != nil {
		return fmt.Errorf("create config directory: %w", mkErr)
	}
	if writeErr := os.WriteFile(path, data, 0600); writeErr != nil {
		return fmt.Errorf("write config file: %w", writeErr)
	}
	c.path = path
	return nil
}
