package rules

import (
	"fmt"
	"sort"
	"strings"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterProject(DuplicateIssue)
}

// DuplicateIssue flags one issue spread across several sections.
var DuplicateIssue = lint.ProjectRuleDef{
	ID:          "PS04",
	Name:        "sections.duplicate-issue",
	Group:       "sections",
	Description: "An issue number should only appear in one section.",
	Severity:    lint.SeverityWarning,
	Check:       checkDuplicateIssue,

	Rationale: `Multiple entries for one issue are fine inside a section (that is
what the nonce suffix is for), but the same issue filed under both
"Fixes" and "Enhancements" is usually a mistake made while resolving a
merge conflict.`,

	Fix: "Keep all entries for an issue in the section that matches the change, using nonce suffixes to separate them.",
}

func checkDuplicateIssue(ctx lint.ProjectContext, _ map[string]any) []lint.Diagnostic {
	sectionsByIssue := make(map[int]map[string]bool)
	pathByIssue := make(map[int]string)

	for _, se := range ctx.Project.Sections {
		for _, entry := range se.Entries {
			if sectionsByIssue[entry.Issue] == nil {
				sectionsByIssue[entry.Issue] = make(map[string]bool)
				pathByIssue[entry.Issue] = entry.Path
			}
			sectionsByIssue[entry.Issue][se.Section.Title] = true
		}
	}

	var issues []int
	for issue, sections := range sectionsByIssue {
		if len(sections) > 1 {
			issues = append(issues, issue)
		}
	}
	sort.Ints(issues)

	var diagnostics []lint.Diagnostic
	for _, issue := range issues {
		titles := make([]string, 0, len(sectionsByIssue[issue]))
		for title := range sectionsByIssue[issue] {
			titles = append(titles, title)
		}
		sort.Strings(titles)

		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "PS04",
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("Issue #%d has entries in multiple sections: %s", issue, strings.Join(titles, ", ")),
			Path:     pathByIssue[issue],
		})
	}
	return diagnostics
}
