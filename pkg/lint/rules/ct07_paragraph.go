package rules

import (
	"strings"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(SingleParagraph)
}

// SingleParagraph keeps entries to one paragraph.
var SingleParagraph = lint.EntryRuleDef{
	ID:          "CT07",
	Name:        "content.single-paragraph",
	Group:       "content",
	Description: "Entries should be a single paragraph.",
	Severity:    lint.SeverityInfo,
	Check:       checkSingleParagraph,

	Rationale: `Each entry becomes one list item in the changelog. Blank lines
split the item into separate paragraphs and break the list numbering in
some renderers. Split multi-change descriptions into separate entries
with a nonce suffix instead.`,

	Fix: "Keep one change per entry; add 1234-extra.md for a second entry on the same issue.",
}

func checkSingleParagraph(ctx lint.EntryContext, _ map[string]any) []lint.Diagnostic {
	text, ok := parsedText(ctx)
	if !ok || !strings.Contains(text, "\n\n") {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "CT07",
		Severity: lint.SeverityInfo,
		Message:  "Entry has more than one paragraph",
		Path:     ctx.Path,
	}}
}
