package rules

import (
	"strings"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(TrailingWhitespace)
}

// TrailingWhitespace flags spaces or tabs at line ends.
var TrailingWhitespace = lint.EntryRuleDef{
	ID:          "CT02",
	Name:        "content.trailing-whitespace",
	Group:       "content",
	Description: "Entry lines must not end with whitespace.",
	Severity:    lint.SeverityWarning,
	Check:       checkTrailingWhitespace,

	Rationale: `Two trailing spaces are a markdown hard line break. Entries pick
them up by accident and the rendered changelog breaks mid-sentence.`,

	Fix: "Strip trailing spaces and tabs; most editors can do this on save.",
}

func checkTrailingWhitespace(ctx lint.EntryContext, _ map[string]any) []lint.Diagnostic {
	if _, ok := parsedText(ctx); !ok {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for i, line := range splitLines(ctx.Raw) {
		if line == "" || strings.TrimRight(line, " \t") == line {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "CT02",
			Severity: lint.SeverityWarning,
			Message:  "Line ends with whitespace",
			Path:     ctx.Path,
			Line:     i + 1,
		})
	}
	return diagnostics
}
