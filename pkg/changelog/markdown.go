// Package changelog renders gathered news entries into markdown and
// inserts finished release sections into a changelog file.
package changelog

import (
	"fmt"
	"strings"
	"time"

	"github.com/leapstack-labs/newsroom/pkg/news"
)

// IssueURL derives the issue link base from a repository reference. A bare
// "owner/name" slug becomes a GitHub issues URL; full http(s) URLs are
// used as-is. Empty input disables linking.
func IssueURL(repository string) string {
	repository = strings.TrimSuffix(strings.TrimSpace(repository), "/")
	if repository == "" {
		return ""
	}
	if strings.HasPrefix(repository, "http://") || strings.HasPrefix(repository, "https://") {
		return repository + "/issues"
	}
	return "https://github.com/" + repository + "/issues"
}

// EntryMarkdown renders a single news entry as a markdown list item with a
// link to the issue it closes.
func EntryMarkdown(entry news.Entry, issueURL string) string {
	if issueURL == "" {
		return fmt.Sprintf("1. %s\n   (#%d)", entry.Description, entry.Issue)
	}
	return fmt.Sprintf("1. %s\n   ([#%d](%s/%d))", entry.Description, entry.Issue, issueURL, entry.Issue)
}

// Render produces the pending release body: one "### <title>" block per
// section holding entries. Sections without entries are omitted.
func Render(gathered []news.SectionEntries, issueURL string) string {
	return RenderAll(news.NonEmpty(gathered), issueURL)
}

// RenderAll is Render without the empty-section filter.
func RenderAll(gathered []news.SectionEntries, issueURL string) string {
	blocks := make([]string, 0, len(gathered))
	for _, se := range gathered {
		var b strings.Builder
		b.WriteString("### ")
		b.WriteString(se.Section.Title)
		b.WriteString("\n")
		for _, entry := range se.Entries {
			b.WriteString("\n")
			b.WriteString(EntryMarkdown(entry, issueURL))
		}
		blocks = append(blocks, b.String())
	}
	return strings.Join(blocks, "\n\n")
}

// Heading formats the release heading for a version, with the day of the
// month unpadded ("## 2019.3.0 (3 March 2019)").
func Heading(version string, date time.Time) string {
	return fmt.Sprintf("## %s (%s)", version, date.Format("2 January 2006"))
}
