package rules

import (
	"bytes"

	"github.com/leapstack-labs/newsroom/pkg/lint"
)

func init() {
	lint.RegisterEntry(EntryBOM)
}

// EntryBOM rejects a UTF-8 byte order mark at the start of an entry.
var EntryBOM = lint.EntryRuleDef{
	ID:          "EN02",
	Name:        "encoding.bom",
	Group:       "encoding",
	Description: "News entries must not start with a byte order mark.",
	Severity:    lint.SeverityError,
	Check:       checkEntryBOM,

	Rationale: `A BOM is invisible in most editors but becomes stray bytes in the
middle of the assembled changelog, garbling the first word of the entry.`,

	Fix: "Re-save the file as UTF-8 without a byte order mark.",
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func checkEntryBOM(ctx lint.EntryContext, _ map[string]any) []lint.Diagnostic {
	if !bytes.HasPrefix(ctx.Raw, utf8BOM) {
		return nil
	}
	return []lint.Diagnostic{{
		RuleID:   "EN02",
		Severity: lint.SeverityError,
		Message:  "Entry starts with a UTF-8 byte order mark",
		Path:     ctx.Path,
		Line:     1,
	}}
}
