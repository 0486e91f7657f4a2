package rules

import (
	"fmt"
	"path/filepath"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterProject(SectionNaming)
}

// SectionNaming flags news subdirectories that are not numbered sections.
var SectionNaming = lint.ProjectRuleDef{
	ID:          "PS01",
	Name:        "sections.naming",
	Group:       "sections",
	Description: "News subdirectories must be numbered sections.",
	Severity:    lint.SeverityWarning,
	Check:       checkSectionNaming,

	Rationale: `Directories without an index prefix are invisible to the release
pipeline. Entries filed there never reach the changelog and nobody
notices until after the release ships.`,

	BadExample:  "news/Enhancements/",
	GoodExample: "news/1 Enhancements/",

	Fix: "Rename the directory to \"<index> <Title>\", choosing the index by its position in the changelog.",
}

func checkSectionNaming(ctx lint.ProjectContext, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, dir := range ctx.Project.StrayDirs {
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "PS01",
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("Directory %q is not a numbered section (expected \"<index> <Title>\")", filepath.Base(dir)),
			Path:     dir,
		})
	}
	return diagnostics
}
