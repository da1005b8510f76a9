// Package version exposes build-time version information for tokenscope.
package version

// version is overridden at build time via
// -ldflags "-X github.com/rshade/tokenscope/pkg/version.version=v1.2.3".
//
//nolint:gochecknoglobals // Set by the linker.
var version = "v0.1.0-dev"

// GetVersion returns the tokenscope version string.
func GetVersion() string {
	return version
}
