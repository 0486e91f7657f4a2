package rules

import (
	"fmt"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterProject(SectionOrder)
}

// SectionOrder checks that section indexes are unique and contiguous.
var SectionOrder = lint.ProjectRuleDef{
	ID:          "PS02",
	Name:        "sections.order",
	Group:       "sections",
	Description: "Section indexes should be unique and contiguous from 1.",
	Severity:    lint.SeverityInfo,
	Check:       checkSectionOrder,

	Rationale: `Two sections sharing an index sort by title, which is rarely the
intended order. Gaps suggest a section was deleted without renumbering
and make the next author guess at the convention.`,

	BadExample:  "news/1 Enhancements/  news/3 Code Health/",
	GoodExample: "news/1 Enhancements/  news/2 Code Health/",
}

func checkSectionOrder(ctx lint.ProjectContext, _ map[string]any) []lint.Diagnostic {
	var diagnostics []lint.Diagnostic

	prev := 0
	for _, se := range ctx.Project.Sections {
		index := se.Section.Index
		switch {
		case index == prev:
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "PS02",
				Severity: lint.SeverityInfo,
				Message:  fmt.Sprintf("Section index %d is used more than once", index),
				Path:     se.Section.Path,
			})
		case index != prev+1:
			diagnostics = append(diagnostics, lint.Diagnostic{
				RuleID:   "PS02",
				Severity: lint.SeverityInfo,
				Message:  fmt.Sprintf("Section indexes are not contiguous: expected %d, found %d", prev+1, index),
				Path:     se.Section.Path,
			})
		}
		prev = index
	}
	return diagnostics
}
