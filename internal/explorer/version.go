package explorer

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

// MinBackendVersion is the oldest backend serving the /api/v2 token endpoints.
const MinBackendVersion = "5.0.0"

// CheckBackendVersion verifies that a reported backend version (for example
// "v6.3.0-beta") satisfies MinBackendVersion.
func CheckBackendVersion(reported string) error {
	v, err := semver.NewVersion(reported)
	if err != nil {
		return fmt.Errorf("parse backend version %q: %w", reported, err)
	}
	// The -0 suffix lets pre-release builds of a supported version through.
	constraint, err := semver.NewConstraint(">= " + MinBackendVersion + "-0")
	if err != nil {
		return fmt.Errorf("parse version constraint: %w", err)
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s < %s", ErrUnsupportedBackend, v.String(), MinBackendVersion)
	}
	return nil
}
