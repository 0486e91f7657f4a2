package rules

import (
	"unicode/utf8"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(EntryUTF8)
}

// EntryUTF8 requires entry content to be plain UTF-8.
var EntryUTF8 = lint.EntryRuleDef{
	ID:          "EN01",
	Name:        "encoding.utf8",
	Group:       "encoding",
	Description: "News entries must be valid UTF-8 text.",
	Severity:    lint.SeverityError,
	Check:       checkEntryUTF8,

	Rationale: `The changelog is assembled by concatenating entry files. A single
entry in another encoding (UTF-16 is a common editor default on Windows)
corrupts the generated markdown for every reader.`,

	Fix: "Re-save the file as UTF-8 without a byte order mark.",
}

func checkEntryUTF8(ctx lint.EntryContext, _ map[string]any) []lint.Diagnostic {
	if utf8.Valid(ctx.Raw) {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "EN01",
		Severity: lint.SeverityError,
		Message:  "Entry content is not valid UTF-8",
		Path:     ctx.Path,
	}}
}
