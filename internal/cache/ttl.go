package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TTL configuration constants and defaults.
const (
	// DefaultTTLSeconds is the default cache TTL (5 minutes). Explorer
	// listings move quickly, so this is much shorter than a day.
	DefaultTTLSeconds = 300

	// MinTTLSeconds is the minimum allowed TTL.
	MinTTLSeconds = 5

	// MaxTTLSeconds is the maximum allowed TTL (1 day).
	MaxTTLSeconds = 86400

	// DefaultCacheMaxSizeMB is the default maximum cache size in MB.
	DefaultCacheMaxSizeMB = 50

	hoursPerDay = 24

	// EnvTTLSeconds overrides the TTL.
	EnvTTLSeconds = "TOKENSCOPE_CACHE_TTL"

	// EnvCacheEnabled enables or disables the cache.
	EnvCacheEnabled = "TOKENSCOPE_CACHE_ENABLED"

	// EnvCacheDir overrides the cache directory.
	EnvCacheDir = "TOKENSCOPE_CACHE_DIR"
)

// ErrInvalidTTL is returned by ValidateTTL.
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// ValidateTTL checks that seconds is in range.
func ValidateTTL(seconds int) error {
	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return nil
}

// TTLFromEnv returns the TTL from the environment, or fallback when unset
// or out of range.
func TTLFromEnv(fallback int) int {
	envVal := os.Getenv(EnvTTLSeconds)
	if envVal == "" {
		return fallback
	}
	ttl, err := ParseTTL(envVal)
	if err != nil {
		return fallback
	}
	return ttl
}

// EnabledFromEnv returns the cache enabled flag from the environment, or
// fallback when unset or unparsable.
func EnabledFromEnv(fallback bool) bool {
	envVal := os.Getenv(EnvCacheEnabled)
	if envVal == "" {
		return fallback
	}
	enabled, err := strconv.ParseBool(envVal)
	if err != nil {
		return fallback
	}
	return enabled
}

// DirFromEnv returns the cache directory override, or empty.
func DirFromEnv() string {
	return os.Getenv(EnvCacheDir)
}

// ParseTTL accepts either whole seconds ("300") or a Go duration ("5m").
func ParseTTL(s string) (int, error) {
	seconds, err := strconv.Atoi(s)
	if err != nil {
		d, durErr := time.ParseDuration(s)
		if durErr != nil {
			return 0, fmt.Errorf("invalid TTL %q: use seconds or a duration like 5m", s)
		}
		seconds = int(d / time.Second)
	}
	if validateErr := ValidateTTL(seconds); validateErr != nil {
		return 0, validateErr
	}
	return seconds, nil
}

// FormatDuration formats a duration like "45s", "5m", "2h30m" or "1d".
func FormatDuration(d time.Duration) string {
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%.0fs", d.Seconds())
	case d < time.Hour:
		return fmt.Sprintf("%.0fm", d.Minutes())
	case d < hoursPerDay*time.Hour:
		h := int(d.Hours())
		m := int(d.Minutes()) - h*60
		if m == 0 {
			return fmt.Sprintf("%dh", h)
		}
		return fmt.Sprintf("%dh%dm", h, m)
	default:
		return fmt.Sprintf("%dd", int(d.Hours())/hoursPerDay)
	}
}
