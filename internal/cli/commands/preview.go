package commands

import (
	"github.com/spf13/cobra"

	"github.com/leapstack-labs/newsroom/internal/cli/output"
	"github.com/leapstack-labs/newsroom/pkg/changelog"
	"github.com/leapstack-labs/newsroom/pkg/news"
)

// NewPreviewCommand creates the preview command.
func NewPreviewCommand() *cobra.Command {
	var section string

	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Preview the pending release notes as markdown",
		Long: `Render the pending news entries into the markdown block a release
would insert into the changelog.

This is useful for checking the result before running 'newsroom release',
or for pasting the block somewhere else.`,
		Example: `  # Preview the pending release notes
  newsroom preview

  # Preview one section only
  newsroom preview --section Fixes

  # Preview and save to a file
  newsroom preview > pending.md`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPreview(cmd, section)
		},
	}

	cmd.Flags().StringVarP(&section, "section", "s", "", "Limit the preview to one section (title or index)")

	return cmd
}

func runPreview(cmd *cobra.Command, section string) error {
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

	repository := resolveRepository(cc.Cfg)
	body := changelog.Render(gathered, changelog.IssueURL(repository))

	r := cc.Renderer
	if r.EffectiveMode() == output.ModeJSON {
		return r.JSON(output.PreviewOutput{
			Repository: repository,
			Entries:    news.TotalEntries(gathered),
			Body:       body,
		})
	}

	if body == "" {
		r.Muted("No pending news entries.")
		return nil
	}
	r.Println(body)
	return nil
}
