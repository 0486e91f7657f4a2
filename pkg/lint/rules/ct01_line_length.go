package rules

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(LineLength)
}

// LineLength limits how wide entry lines may grow.
var LineLength = lint.EntryRuleDef{
	ID:          "CT01",
	Name:        "content.line-length",
	Group:       "content",
	Description: "Entry lines should stay within the maximum length.",
	Severity:    lint.SeverityWarning,
	ConfigKeys:  []string{"max_length", "ignore_urls"},
	Check:       checkLineLength,

	Rationale: `Entries are reviewed as diffs and read in terminals. Very long
lines force horizontal scrolling in both. Lines carrying a URL are exempt
by default since links should not be wrapped.`,

	BadExample: `Fixed the debugger so that attaching to a remote process over SSH no longer hangs forever when the remote interpreter takes more than thirty seconds to come up.`,

	GoodExample: `Fixed the debugger so that attaching to a remote process over SSH
no longer hangs when the remote interpreter is slow to come up.`,

	Fix: "Wrap the text, or raise max_length in the lint configuration.",
}

type lineLengthOptions struct {
	MaxLength  int  `mapstructure:"max_length"`
	IgnoreURLs bool `mapstructure:"ignore_urls"`
}

func checkLineLength(ctx lint.EntryContext, opts map[string]any) []lint.Diagnostic {
	if _, ok := parsedText(ctx); !ok {
		return nil
	}

	cfg := lineLengthOptions{MaxLength: 100, IgnoreURLs: true}
	if err := lint.DecodeOptions(opts, &cfg); err != nil {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for i, line := range splitLines(ctx.Raw) {
		length := utf8.RuneCountInString(line)
		if length <= cfg.MaxLength {
			continue
		}
		if cfg.IgnoreURLs && (strings.Contains(line, "http://") || strings.Contains(line, "https://")) {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "CT01",
			Severity: lint.SeverityWarning,
			Message:  fmt.Sprintf("Line is %d characters long; the limit is %d", length, cfg.MaxLength),
			Path:     ctx.Path,
			Line:     i + 1,
		})
	}
	return diagnostics
}
