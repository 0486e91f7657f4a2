package changelog

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var headingRE = regexp.MustCompile(`^## +(\S+) +\(.+\)\s*$`)

// Complete inserts a new release section into existing changelog content.
// The first line of the existing content is kept as the document title,
// the new heading and body follow it, and prior releases are preserved
// below, separated by a double blank line.
func Complete(existing, version string, date time.Time, body string) string {
	title, rest, _ := strings.Cut(existing, "\n")
	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n\n%s",
		title, Heading(version, date), strings.TrimSpace(body), strings.TrimSpace(rest))
}

// Title returns the first line of changelog content.
func Title(content string) string {
	title, _, _ := strings.Cut(content, "\n")
	return title
}

// HeadVersion returns the version of the most recent release heading in
// changelog content, or the empty string when no release has been
// recorded yet.
func HeadVersion(content string) string {
	for _, line := range strings.Split(content, "\n") {
		if m := headingRE.FindStringSubmatch(line); m != nil {
			return m[1]
		}
	}
	return ""
}
