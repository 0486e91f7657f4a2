package rules

import (
	"strings"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(Punctuation)
}

// Punctuation nudges entries to end like sentences.
var Punctuation = lint.EntryRuleDef{
	ID:          "CT05",
	Name:        "content.punctuation",
	Group:       "content",
	Description: "Entry descriptions should end with terminal punctuation.",
	Severity:    lint.SeverityHint,
	ConfigKeys:  []string{"characters"},
	Check:       checkPunctuation,

	Rationale: `Entries are rendered as full sentences in the changelog. A missing
full stop stands out in an otherwise uniform list.`,

	BadExample:  "Added support for conda environments",
	GoodExample: "Added support for conda environments.",

	Fix: "End the description with one of the configured characters (\".!?\" by default).",
}

func checkPunctuation(ctx lint.EntryContext, opts map[string]any) []lint.Diagnostic {
	text, ok := parsedText(ctx)
	if !ok || text == "" {
		return nil
	}

	characters := lint.GetStringOption(opts, "characters", ".!?")
	runes := []rune(text)
	last := string(runes[len(runes)-1])
	if strings.Contains(characters, last) || last == "`" || last == ")" {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "CT05",
		Severity: lint.SeverityHint,
		Message:  "Description should end with terminal punctuation",
		Path:     ctx.Path,
	}}
}
