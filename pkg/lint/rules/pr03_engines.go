package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterProject(ManifestEngines)
}

// ManifestEngines checks the environment markers in the manifest.
var ManifestEngines = lint.ProjectRuleDef{
	ID:          "PR03",
	Name:        "release.engines",
	Group:       "release",
	Description: "Manifest engine constraints must carry a version range.",
	Severity:    lint.SeverityWarning,
	Check:       checkManifestEngines,

	Rationale: `The engines block records which runtime versions the project
supports. An entry with an empty range constrains nothing while looking
like it does.`,

	BadExample:  `"engines": {"node": ""}`,
	GoodExample: `"engines": {"node": ">=18"}`,
}

func checkManifestEngines(ctx lint.ProjectContext, _ map[string]any) []lint.Diagnostic {
	if ctx.Manifest == nil {
		return nil
	}

	names := make([]string, 0, len(ctx.Manifest.Engines))
	for name := range ctx.Manifest.Engines {
		names = append(names, name)
	}
	sort.Strings(names)

	var diagnostics []lint.Diagnostic
	for _, name := range names {
		if strings.TrimSpace(ctx.Manifest.Engines[name]) != "" {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "PR03",
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("Engine %q has an empty version range", name),
			Path:     ctx.Manifest.Path,
		})
	}
	return diagnostics
}
