package rules

import (
	"fmt"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterProject(ManifestVersion)
}

// ManifestVersion validates the version the next release would ship with.
var ManifestVersion = lint.ProjectRuleDef{
	ID:          "PR01",
	Name:        "release.manifest-version",
	Group:       "release",
	Description: "The manifest version must parse and be newer than the changelog head.",
	Severity:    lint.SeverityError,
	Check:       checkManifestVersion,

	Rationale: `The release takes its version from the package manifest. A version
that does not parse, or that is not newer than the last heading already
in the changelog, produces a changelog that lies about what shipped.`,

	BadExample:  `"version": "2019.3.0" while CHANGELOG.md already has ## 2019.3.0`,
	GoodExample: `"version": "2019.4.0" after 2019.3.0 shipped`,

	Fix: "Bump the version field in the package manifest before releasing.",
}

func checkManifestVersion(ctx lint.ProjectContext, _ map[string]any) []lint.Diagnostic {
	if ctx.Manifest == nil {
		return nil
	}

	version := strings.TrimSpace(ctx.Manifest.Version)
	if version == "" {
		return []lint.Diagnostic{{
			RuleID:   "PR01",
			Severity: lint.SeverityError,
			Message:  "Package manifest has no version field",
			Path:     ctx.Manifest.Path,
		}}
	}

	normalized := normalizeVersion(version)
	if normalized == "" {
		return []lint.Diagnostic{{
			RuleID:   "PR01",
			Severity: lint.SeverityError,
			Message:  fmt.Sprintf("%q is not a valid version", version),
			Path:     ctx.Manifest.Path,
		}}
	}

	head := normalizeVersion(ctx.Changelog.HeadVersion)
	if head != "" && semver.Compare(normalized, head) <= 0 {
		return []lint.Diagnostic{{
			RuleID:   "PR01",
			Severity: lint.SeverityError,
			Message: fmt.Sprintf("Manifest version %s is not newer than the last released %s",
				version, ctx.Changelog.HeadVersion),
			Path: ctx.Manifest.Path,
		}}
	}
	return nil
}

// normalizeVersion maps a manifest version to semver's "v" form, returning
// "" when it does not parse.
func normalizeVersion(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return ""
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	if !semver.IsValid(version) {
		return ""
	}
	return version
}
