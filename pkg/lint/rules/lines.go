// Package rules holds the built-in news lint rules. Each rule registers
// itself on import, so callers blank-import this package to populate the
// registry.
package rules

import (
	"strings"
	"unicode/utf8"

	"github.com/leapstack-labs/newsroom/pkg/lint"
	"github.com/leapstack-labs/newsroom/pkg/news"
)

// splitLines splits raw content for per-line checks, tolerating CRLF.
func splitLines(raw []byte) []string {
	lines := strings.Split(string(raw), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// parsedText returns the entry description for content rules, reporting
// ok=false for files the encoding or naming rules already reject.
func parsedText(ctx lint.EntryContext) (string, bool) {
	if ctx.Entry == nil {
		return "", false
	}
	if !utf8.Valid(ctx.Raw) || news.ValidateContent(ctx.Raw) != nil {
		return "", false
	}
	return ctx.Entry.Description, true
}
