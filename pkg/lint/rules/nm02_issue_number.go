package rules

import (
	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(EntryIssueNumber)
}

// EntryIssueNumber requires a positive issue number.
var EntryIssueNumber = lint.EntryRuleDef{
	ID:          "NM02",
	Name:        "naming.issue-number",
	Group:       "naming",
	Description: "Entry issue numbers must be positive.",
	Severity:    lint.SeverityWarning,
	Check:       checkEntryIssueNumber,

	Rationale: `Issue trackers number from 1. An entry named 0.md renders a link
to an issue that cannot exist.`,

	BadExample:  "news/1 Enhancements/0.md",
	GoodExample: "news/1 Enhancements/4240.md",
}

func checkEntryIssueNumber(ctx lint.EntryContext, _ map[string]any) []lint.Diagnostic {
	if ctx.Entry == nil || ctx.Entry.Issue > 0 {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "NM02",
		Severity: lint.SeverityWarning,
		Message:  "Issue number should be positive",
		Path:     ctx.Path,
	}}
}
