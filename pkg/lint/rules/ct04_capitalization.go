package rules

import (
	"unicode"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(Capitalization)
}

// Capitalization nudges entries to start with a capital letter.
var Capitalization = lint.EntryRuleDef{
	ID:          "CT04",
	Name:        "content.capitalization",
	Group:       "content",
	Description: "Entry descriptions should start with a capital letter.",
	Severity:    lint.SeverityHint,
	Check:       checkCapitalization,

	Rationale: `Changelog bullets are sentences. Entries that open lowercase read
as fragments next to their neighbors. Entries starting with code spans or
literals are left alone.`,

	BadExample:  "fixed the interpreter discovery on Windows.",
	GoodExample: "Fixed the interpreter discovery on Windows.",
}

func checkCapitalization(ctx lint.EntryContext, _ map[string]any) []lint.Diagnostic {
	text, ok := parsedText(ctx)
	if !ok || text == "" {
		return nil
	}

	first := []rune(text)[0]
	if !unicode.IsLetter(first) || unicode.IsUpper(first) {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "CT04",
		Severity: lint.SeverityHint,
		Message:  "Description should start with a capital letter",
		Path:     ctx.Path,
		Line:     1,
	}}
}
