package commands

import (
	"errors"
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/newsroom/internal/cli/output"
	"github.com/leapstack-labs/newsroom/internal/store"
)

// NewHistoryCommand creates the history command.
func NewHistoryCommand() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [version]",
		Short: "Show recorded releases",
		Long: `Show the releases recorded by 'newsroom release', newest first.

With a version argument, show that release in full: its date, the
rendered section that went into the changelog, and the entries that
shipped in it.

Output adapts to environment:
  - Terminal: table of releases
  - Piped/Scripted: Markdown format
  - JSON: Machine-readable format`,
		Example: `  # List recorded releases
  newsroom history

  # Show the three most recent releases
  newsroom history -n 3

  # Show one release in full
  newsroom history 2019.3.0

  # Dump history as JSON
  newsroom history --output json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runHistoryDetail(cmd, args[0])
			}
			return runHistoryList(cmd, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show at most this many releases (0 = all)")

	return cmd
}

func runHistoryList(cmd *cobra.Command, limit int) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	releases, err := cc.Store.ListReleases(cmd.Context())
	if err != nil {
		return err
	}
	if limit > 0 && len(releases) > limit {
		releases = releases[:limit]
	}

	r := cc.Renderer
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(releases)
	case output.ModeMarkdown:
		return historyMarkdown(releases, r)
	default:
		return historyTable(releases, r)
	}
}

// historyTable renders releases as a table.
func historyTable(releases []*store.Release, r *output.Renderer) error {
	if len(releases) == 0 {
		r.Muted("No releases recorded yet.")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(r.Writer())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Version", "Released", "Entries"})
	for _, rel := range releases {
		t.AppendRow(table.Row{rel.Version, rel.ReleasedOn.Format("2006-01-02"), rel.EntryCount})
	}
	t.Render()

	r.Printf("(%d releases)\n", len(releases))
	return nil
}

// historyMarkdown renders releases as a markdown table.
func historyMarkdown(releases []*store.Release, r *output.Renderer) error {
	r.Println(output.FormatHeader(1, fmt.Sprintf("Release history (%d releases)", len(releases))))
	r.Println("")
	if len(releases) == 0 {
		r.Println("No releases recorded yet.")
		return nil
	}

	r.Println("| Version | Released | Entries |")
	r.Println("| --- | --- | --- |")
	for _, rel := range releases {
		r.Printf("| %s | %s | %d |\n", rel.Version, rel.ReleasedOn.Format("2006-01-02"), rel.EntryCount)
	}
	return nil
}

// historyDetail is the JSON document for a single recorded release.
type historyDetail struct {
	Release *store.Release        `json:"release"`
	Entries []store.ReleasedEntry `json:"entries"`
}

func runHistoryDetail(cmd *cobra.Command, version string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	release, entries, err := cc.Store.GetRelease(cmd.Context(), version)
	if err != nil {
		if errors.Is(err, store.ErrReleaseNotFound) {
			return fmt.Errorf("no release %s in history", version)
		}
		return err
	}

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(historyDetail{Release: release, Entries: entries})
	}

	r.Header(1, "Release "+release.Version)
	r.Muted(fmt.Sprintf("Released on %s with %d entries",
		release.ReleasedOn.Format("2 January 2006"), release.EntryCount))
	r.Println("")

	if release.Body != "" {
		r.Println(release.Body)
		return nil
	}

	// Old records may predate body storage; reconstruct from entries.
	section := ""
	n := 0
	for _, e := range entries {
		if e.Section != section {
			if section != "" {
				r.Println("")
			}
			section = e.Section
			r.Header(2, section)
		}
		n++
		r.EntryLine(n, fmt.Sprintf("#%d", e.Issue), e.Description)
	}
	return nil
}
