package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/leapstack-labs/newsroom/pkg/news"
	"github.com/spf13/cobra"
)

// NewOptions holds options for the new command.
type NewOptions struct {
	Section string
	Message string
	Edit    bool
}

// NewNewCommand creates the new command.
func NewNewCommand() *cobra.Command {
	opts := &NewOptions{}

	cmd := &cobra.Command{
		Use:   "new <issue>",
		Short: "Create a news entry for an issue",
		Long: `Create a news entry file for the issue a change closes.

The entry is created in the chosen section of the news directory, named
<issue>.md. When an entry for the issue already exists, --edit files an
additional one with a numeric suffix (<issue>-1.md). Without --message,
an interactive prompt collects the section and description when running
at a terminal.`,
		Example: `  newsroom new 4022 -m "Added a quiet mode to the test runner output."
  newsroom new 4022 --section Fixes -m "Fixed the quiet mode."
  newsroom new 4022`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			issue, err := strconv.Atoi(args[0])
			if err != nil || issue <= 0 {
				return fmt.Errorf("issue must be a positive number, got %q", args[0])
			}

			cc := NewCommandContextWithoutStore(cmd)
			return runNew(cc, issue, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Section, "section", "s", "", "Section to file the entry under (default: first section)")
	cmd.Flags().StringVarP(&opts.Message, "message", "m", "", "Entry text; skips the interactive prompt")
	cmd.Flags().BoolVar(&opts.Edit, "edit", false, "File an additional entry when one already exists for the issue")

	return cmd
}

func runNew(cc *CommandContext, issue int, opts *NewOptions) error {
	sections, err := news.Sections(cc.Cfg.NewsDir)
	if err != nil {
		return err
	}
	if len(sections) == 0 {
		return fmt.Errorf("no sections found in %s (run 'newsroom init' first)", cc.Cfg.NewsDir)
	}

	message := strings.TrimSpace(opts.Message)
	var section news.Section

	if message == "" {
		// No text given: prompt when at a terminal, refuse otherwise.
		if !cc.Renderer.IsTTY() {
			return fmt.Errorf("no entry text given; pass --message or run at a terminal")
		}
		start := 0
		if opts.Section != "" {
			if s, err := pickSection(sections, opts.Section); err == nil {
				start = sectionIndex(sections, s)
			}
		}
		picked, text, err := runEntryForm(sections, start, issue)
		if err != nil {
			return err
		}
		section = picked
		message = text
	} else {
		section, err = pickSection(sections, opts.Section)
		if err != nil {
			return err
		}
	}

	path, err := entryPath(section, issue, opts.Edit)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, []byte(message+"\n"), 0644); err != nil {
		return fmt.Errorf("failed to write entry: %w", err)
	}

	cc.Renderer.Success("Created " + displayPath(path))
	return nil
}

// pickSection resolves a section by title or index, defaulting to the
// first section. Title matching is case-insensitive.
func pickSection(sections []news.Section, name string) (news.Section, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return sections[0], nil
	}

	for _, s := range sections {
		if strings.EqualFold(s.Title, name) {
			return s, nil
		}
	}
	if idx, err := strconv.Atoi(name); err == nil {
		for _, s := range sections {
			if s.Index == idx {
				return s, nil
			}
		}
	}

	titles := make([]string, len(sections))
	for i, s := range sections {
		titles[i] = s.Title
	}
	return news.Section{}, fmt.Errorf("unknown section %q (have: %s)", name, strings.Join(titles, ", "))
}

func sectionIndex(sections []news.Section, section news.Section) int {
	for i, s := range sections {
		if s.Path == section.Path {
			return i
		}
	}
	return 0
}

// entryPath returns the file to create for an issue. An existing
// <issue>.md is an error unless edit is set, in which case the next
// free numeric suffix is used.
func entryPath(section news.Section, issue int, edit bool) (string, error) {
	base := filepath.Join(section.Path, fmt.Sprintf("%d.md", issue))
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return base, nil
	}

	if !edit {
		return "", fmt.Errorf("entry %s already exists; use --edit to file another entry for the issue", displayPath(base))
	}

	for nonce := 1; ; nonce++ {
		candidate := filepath.Join(section.Path, fmt.Sprintf("%d-%d.md", issue, nonce))
		if _, err := os.Stat(candidate); os.IsNotExist(err) {
			return candidate, nil
		}
	}
}

// displayPath shortens a path relative to the working directory when
// possible.
func displayPath(path string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(cwd, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}
