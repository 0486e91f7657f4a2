package manifest

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"
)

// ParseVersion canonicalizes a manifest version to semver's "v" form
// ("2019.3.0" becomes "v2019.3.0"). Versions are MAJOR.MINOR.PATCH with
// an optional pre-release suffix.
func ParseVersion(version string) (string, error) {
	v := strings.TrimSpace(version)
	if v == "" {
		return "", fmt.Errorf("empty version")
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", fmt.Errorf("%q is not a MAJOR.MINOR.PATCH version", version)
	}
	return v, nil
}

// CompareVersions orders two manifest versions like semver.Compare:
// -1 when a < b, 0 when equal, +1 when a > b. A version that does not
// parse sorts before any valid one.
func CompareVersions(a, b string) int {
	shim := func(s string) string {
		s = strings.TrimSpace(s)
		if s != "" && !strings.HasPrefix(s, "v") {
			s = "v" + s
		}
		return s
	}
	return semver.Compare(shim(a), shim(b))
}
