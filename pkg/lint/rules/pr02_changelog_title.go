package rules

import (
	"fmt"
	"strings"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterProject(ChangelogTitle)
}

// ChangelogTitle requires a changelog file opening with a markdown title.
var ChangelogTitle = lint.ProjectRuleDef{
	ID:          "PR02",
	Name:        "release.changelog-title",
	Group:       "release",
	Description: "The changelog must exist and start with a markdown title line.",
	Severity:    lint.SeverityError,
	Check:       checkChangelogTitle,

	Rationale: `New release sections are inserted directly below the changelog's
first line. Without a title line the newest release heading would be
swallowed into whatever happens to be at the top of the file.`,

	BadExample:  "## 2019.2.0 (28 Feb 2019)  (as the first line)",
	GoodExample: "# Our most excellent changelog  (as the first line)",

	Fix: "Create the changelog with a single \"# <title>\" line before the first release.",
}

func checkChangelogTitle(ctx lint.ProjectContext, _ map[string]any) []lint.Diagnostic {
	if !ctx.Changelog.Exists {
		return []lint.Diagnostic{{
			RuleID:   "PR02",
			Severity: lint.SeverityError,
			Message:  fmt.Sprintf("Changelog %s not found", ctx.Changelog.Path),
			Path:     ctx.Changelog.Path,
		}}
	}
	if strings.HasPrefix(ctx.Changelog.Title, "# ") {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "PR02",
		Severity: lint.SeverityError,
		Message:  "Changelog should start with a markdown title line (\"# ...\")",
		Path:     ctx.Changelog.Path,
		Line:     1,
	}}
}
