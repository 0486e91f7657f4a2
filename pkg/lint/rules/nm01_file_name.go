package rules

import (
	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(EntryFileName)
}

// EntryFileName enforces the issue-number naming convention.
var EntryFileName = lint.EntryRuleDef{
	ID:          "NM01",
	Name:        "naming.file-name",
	Group:       "naming",
	Description: "Entry files must be named <issue>.md or <issue>-<nonce>.md.",
	Severity:    lint.SeverityError,
	Check:       checkEntryFileName,

	Rationale: `The issue number in the file name is what links a changelog line
back to its tracker issue. A file outside the convention either silently
drops out of the release or blocks it, depending on the pipeline stage
that trips over it first.`,

	BadExample:  "news/2 Fixes/fixed-the-crash.md",
	GoodExample: "news/2 Fixes/4240.md (or 4240-second-fix.md)",

	Fix: "Rename the file to the number of the issue it closes, with an optional -<nonce> suffix for additional entries on the same issue.",
}

func checkEntryFileName(ctx lint.EntryContext, _ map[string]any) []lint.Diagnostic {
	if ctx.Entry != nil {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "NM01",
		Severity: lint.SeverityError,
		Message:  "File name must look like <issue>.md or <issue>-<nonce>.md",
		Path:     ctx.Path,
	}}
}
