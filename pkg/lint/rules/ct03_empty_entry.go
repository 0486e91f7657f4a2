package rules

import (
	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(EmptyEntry)
}

// EmptyEntry rejects entries with no description.
var EmptyEntry = lint.EntryRuleDef{
	ID:          "CT03",
	Name:        "content.empty",
	Group:       "content",
	Description: "News entries must contain a description.",
	Severity:    lint.SeverityError,
	Check:       checkEmptyEntry,

	Rationale: `An empty entry renders as a changelog bullet with nothing but an
issue link. The reader learns that something changed, but not what.`,

	Fix: "Write one or two sentences describing the change from the user's point of view.",
}

func checkEmptyEntry(ctx lint.EntryContext, _ map[string]any) []lint.Diagnostic {
	text, ok := parsedText(ctx)
	if !ok || text != "" {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "CT03",
		Severity: lint.SeverityError,
		Message:  "News entry is empty",
		Path:     ctx.Path,
	}}
}
