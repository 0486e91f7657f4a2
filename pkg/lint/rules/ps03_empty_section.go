package rules

import (
	"fmt"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterProject(EmptySection)
}

// EmptySection notes sections with no pending entries.
var EmptySection = lint.ProjectRuleDef{
	ID:          "PS03",
	Name:        "sections.empty",
	Group:       "sections",
	Description: "Sections without pending entries are reported.",
	Severity:    lint.SeverityHint,
	Check:       checkEmptySection,

	Rationale: `Empty sections are the normal state right after a release, so this
is only a hint. It surfaces sections that stay empty release after
release and could be folded into another.`,
}

func checkEmptySection(ctx lint.ProjectContext, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic
	for _, se := range ctx.Project.Sections {
		if len(se.Entries) > 0 {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "PS03",
			Severity: lint.SeverityHint,
			Message:  fmt.Sprintf("Section %q has no pending entries", se.Section.Title),
			Path:     se.Section.Path,
		})
	}
	return diagnostics
}
