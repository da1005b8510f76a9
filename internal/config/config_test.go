package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/tokenscope/internal/logging"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultAPIURL, cfg.Explorer.APIURL)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, DefaultCacheTTLSeconds, cfg.Cache.TTLSeconds)
	assert.Equal(t, DefaultConstrainedWidth, cfg.UI.ConstrainedWidth)
	assert.Contains(t, cfg.UI.TitleTemplate, "{hash}")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MergesSectionsOverDefaults(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvCacheTTL, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
explorer:
  api_url: https://base.blockscout.com
  timeout: 5s
cache:
  ttl_seconds: 60
unknown:
  ignored: true
`), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://base.blockscout.com", cfg.Explorer.APIURL)
	assert.Equal(t, 5*time.Second, cfg.Explorer.Timeout)
	assert.Equal(t, DefaultRetryMaxElapsed, cfg.Explorer.RetryMaxElapsed, "absent field keeps default")
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
	assert.True(t, cfg.Cache.Enabled, "absent field keeps default")
	assert.Equal(t, path, cfg.Path())
}

func TestLoad_MissingAndBrokenFiles(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.Explorer.APIURL)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("explorer: [not, a, map"), 0600))
	_, err = Load(broken)
	assert.Error(t, err)

	empty := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("# nothing here\n"), 0600))
	cfg, err = Load(empty)
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.Explorer.APIURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvAPIURL, "https://gnosis.blockscout.com")
	t.Setenv(EnvCacheTTL, "30")
	t.Setenv(EnvLogLevel, "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "https://gnosis.blockscout.com", cfg.Explorer.APIURL)
	assert.Equal(t, 30, cfg.Cache.TTLSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)

	t.Setenv(EnvCacheTTL, "-5")
	cfg, err = Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheTTLSeconds, cfg.Cache.TTLSeconds)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.Explorer.APIURL = "eth.blockscout.com" }},
		{"negative timeout", func(c *Config) { c.Explorer.Timeout = -time.Second }},
		{"negative ttl", func(c *Config) { c.Cache.TTLSeconds = -1 }},
		{"negative size", func(c *Config) { c.Cache.MaxSizeMB = -1 }},
		{"zero width", func(c *Config) { c.UI.ConstrainedWidth = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvCacheTTL, "")
	t.Setenv(EnvLogLevel, "")

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.UI.ConstrainedWidth = 80
	cfg.Explorer.Timeout = 7 * time.Second
	require.NoError(t, cfg.Save(path))
	assert.Equal(t, path, cfg.Path())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "timeout: 7s")

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 80, loaded.UI.ConstrainedWidth)
	assert.Equal(t, 7*time.Second, loaded.Explorer.Timeout)
}

func TestGlobalConfig(t *testing.T) {
	t.Setenv(EnvHome, t.TempDir())
	ResetGlobalConfigForTest()
	t.Cleanup(ResetGlobalConfigForTest)

	cfg := GetGlobalConfig()
	require.NotNil(t, cfg)
	assert.Same(t, cfg, GetGlobalConfig())

	replacement := Default()
	SetGlobalConfig(replacement)
	assert.Same(t, replacement, GetGlobalConfig())

	ResetGlobalConfigForTest()
	assert.NotSame(t, replacement, GetGlobalConfig())
}

func TestConfigDirs(t *testing.T) {
	home := t.TempDir()
	t.Setenv(EnvHome, home)

	dir, err := GetConfigDir()
	require.NoError(t, err)
	assert.Equal(t, home, dir)

	path, err := DefaultConfigPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml"), path)

	logPath, err := DefaultLogPath()
	require.NoError(t, err)
	require.NoError(t, EnsureLogDir(logPath))
	assert.DirExists(t, filepath.Dir(logPath))
	assert.NoError(t, EnsureLogDir(""))

	cacheDir, err := Default().CacheDirectory()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "cache"), cacheDir)

	custom := Default()
	custom.Cache.Directory = "/var/cache/tokenscope"
	cacheDir, err = custom.CacheDirectory()
	require.NoError(t, err)
	assert.Equal(t, "/var/cache/tokenscope", cacheDir)
}

func TestToLoggingConfig(t *testing.T) {
	lc := LoggingConfig{Level: "debug", Format: "console"}.ToLoggingConfig()
	assert.Equal(t, logging.OutputStderr, lc.Output)
	assert.Equal(t, "debug", lc.Level)

	lc = LoggingConfig{Level: "info", File: "/tmp/x.log"}.ToLoggingConfig()
	assert.Equal(t, logging.OutputFile, lc.Output)
	assert.Equal(t, "/tmp/x.log", lc.File)
}
