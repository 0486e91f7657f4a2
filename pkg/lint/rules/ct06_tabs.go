package rules

import (
	"strings"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(TabIndentation)
}

// TabIndentation flags tab-indented lines.
var TabIndentation = lint.EntryRuleDef{
	ID:          "CT06",
	Name:        "content.tabs",
	Group:       "content",
	Description: "Entries should be indented with spaces, not tabs.",
	Severity:    lint.SeverityInfo,
	ConfigKeys:  []string{"allow_tabs"},
	Check:       checkTabIndentation,

	Rationale: `Markdown renderers treat tab indentation as a code block. An entry
continuation line indented with a tab renders as monospace instead of
prose.`,

	Fix: "Indent continuation lines with spaces, or set allow_tabs: true.",
}

func checkTabIndentation(ctx lint.EntryContext, opts map[string]any) []lint.Diagnostic {
	if _, ok := parsedText(ctx); !ok {
		return nil
	}
	if lint.GetBoolOption(opts, "allow_tabs", false) {
		return nil
	}

	var diagnostics []lint.Diagnostic
	for i, line := range splitLines(ctx.Raw) {
		if !strings.HasPrefix(line, "\t") {
			continue
		}
		diagnostics = append(diagnostics, lint.Diagnostic{
			RuleID:   "CT06",
			Severity: lint.SeverityInfo,
			Message:  "Line is indented with a tab",
			Path:     ctx.Path,
			Line:     i + 1,
		})
	}
	return diagnostics
}
