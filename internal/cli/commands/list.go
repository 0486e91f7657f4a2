package commands

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/newsroom/internal/cli/output"
	"github.com/leapstack-labs/newsroom/pkg/news"
)

// NewListCommand creates the list command.
func NewListCommand() *cobra.Command {
	var section string
	var format string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pending news entries by section",
		Long: `List the news entries waiting for the next release, grouped by section.

Output adapts to environment:
  - Terminal: Styled, colored output
  - Piped/Scripted: Markdown format (agent-friendly)

Use --output to override: auto, text, markdown, json`,
		Example: `  # List all pending entries
  newsroom list

  # List one section only
  newsroom list --section Fixes

  # List entries as JSON
  newsroom list --output json

  # List entries as a table
  newsroom list --format table`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, section, format)
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Limit the listing to one section (title or index)")
	cmd.Flags().StringVarP(&format, "format", "f", "", "Force a format: table, text, markdown, json")

	return cmd
}

func runList(cmd *cobra.Command, section, format string) error {
	cc := NewCommandContextWithoutStore(cmd)
	if err := cc.Cfg.ValidateDirectories(); err != nil {
		return err
	}

	gathered, err := news.Gather(cc.Cfg.NewsDir)
	if err != nil {
		return err
	}
	if section != "" {
		gathered, err = filterSection(gathered, section)
		if err != nil {
			return err
		}
	}

	r := cc.Renderer
	if format == "table" {
		return listTable(gathered, r)
	}
	if format != "" {
		r = output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(format))
	}
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return listJSON(cc.Cfg.NewsDir, gathered, r)
	case output.ModeMarkdown:
		return listMarkdown(gathered, r)
	default:
		return listText(gathered, r)
	}
}

// listTable renders pending entries as a table.
func listTable(gathered []news.SectionEntries, r *output.Renderer) error {
	total := news.TotalEntries(gathered)
	if total == 0 {
		r.Muted("No pending news entries.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Section", "Issue", "Description"})
	for _, se := range gathered {
		for _, e := range se.Entries {
			issue := fmt.Sprintf("#%d", e.Issue)
			if e.Nonce != "" {
				issue += "-" + e.Nonce
			}
			t.AppendRow(table.Row{se.Section.Title, issue, e.Description})
		}
	}
	t.Render()

	r.Printf("(%d entries)\n", total)
	return nil
}

// filterSection narrows gathered sections to the one named by title or
// index.
func filterSection(gathered []news.SectionEntries, name string) ([]news.SectionEntries, error) {
	sections := make([]news.Section, len(gathered))
	for i, se := range gathered {
		sections[i] = se.Section
	}
	section, err := pickSection(sections, name)
	if err != nil {
		return nil, err
	}
	for _, se := range gathered {
		if se.Section.Path == section.Path {
			return []news.SectionEntries{se}, nil
		}
	}
	return nil, nil
}

// listText outputs pending entries in styled text format.
func listText(gathered []news.SectionEntries, r *output.Renderer) error {
	r.Header(1, fmt.Sprintf("News entries (%d pending)", news.TotalEntries(gathered)))

	n := 0
	for _, se := range gathered {
		r.Println("")
		r.Header(2, fmt.Sprintf("%s (%d)", se.Section.Title, len(se.Entries)))
		if len(se.Entries) == 0 {
			r.Muted("  (none)")
			continue
		}
		for _, e := range se.Entries {
			n++
			r.EntryLine(n, filepath.Base(e.Path), e.Description)
		}
	}

	return nil
}

// listMarkdown outputs pending entries in markdown format.
func listMarkdown(gathered []news.SectionEntries, r *output.Renderer) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("News entries (%d pending)", news.TotalEntries(gathered))))
	r.Println("")

	for _, se := range gathered {
		r.Println(output.FormatHeader(2, se.Section.Title))
		r.Println("")
		if len(se.Entries) == 0 {
			r.Println("No entries.")
			r.Println("")
			continue
		}
		for _, e := range se.Entries {
			r.Println(output.FormatKeyValue(fmt.Sprintf("#%d", e.Issue), e.Description))
		}
		r.Println("")
	}

	return nil
}

// listJSON outputs pending entries in JSON format.
func listJSON(newsDir string, gathered []news.SectionEntries, r *output.Renderer) error {
	doc := output.NewsOutput{
		NewsDir: newsDir,
		Summary: output.NewsSummary{
			TotalSections: len(gathered),
			TotalEntries:  news.TotalEntries(gathered),
		},
		Sections: make([]output.SectionInfo, 0, len(gathered)),
	}

	for _, se := range gathered {
		info := output.SectionInfo{
			Index:   se.Section.Index,
			Title:   se.Section.Title,
			Path:    se.Section.Path,
			Entries: make([]output.EntryInfo, 0, len(se.Entries)),
		}
		for _, e := range se.Entries {
			info.Entries = append(info.Entries, output.EntryInfo{
				Issue:       e.Issue,
				Nonce:       e.Nonce,
				Description: e.Description,
				Path:        e.Path,
			})
		}
		doc.Sections = append(doc.Sections, info)
	}

	return r.JSON(doc)
}
