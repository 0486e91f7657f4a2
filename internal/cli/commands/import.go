package commands

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/spf13/cobra"
)

// ImportOptions holds options for the import command.
type ImportOptions struct {
	Output string // Destination file; empty prints to stdout
}

// Pre-compiled cleanup patterns for converted HTML.
var (
	reAnchorLinks       = regexp.MustCompile(`\s*\[#\]\(#[\w-]*\)`)
	reExcessiveNewlines = regexp.MustCompile(`\n{3,}`)
)

// NewImportCommand creates the import command.
func NewImportCommand() *cobra.Command {
	opts := &ImportOptions{}
	cmd := &cobra.Command{
		Use:   "import <file.html>",
		Short: "Convert an HTML release-notes document to markdown",
		Long: `Convert an HTML release-notes or changelog document to markdown.

Projects migrating to newsroom often have release history published as
HTML only. Import converts such a document to clean markdown suitable
for seeding a changelog file, preserving headings, lists, and links.

By default the markdown is printed to stdout; use --output to write it
to a file.`,
		Example: `  # Print converted markdown
  newsroom import release-notes.html

  # Seed a changelog file
  newsroom import release-notes.html --output CHANGELOG.md`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd, args[0], opts)
		},
	}

	// Shadows the global format flag; import always emits markdown.
	cmd.Flags().StringVar(&opts.Output, "output", "", "Write converted markdown to a file instead of stdout")

	return cmd
}

func runImport(cmd *cobra.Command, path string, opts *ImportOptions) error {
	cc := NewCommandContextWithoutStore(cmd)
	r := cc.Renderer

	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	markdown, err := htmltomarkdown.ConvertString(string(raw))
	if err != nil {
		return fmt.Errorf("converting %s: %w", path, err)
	}

	markdown = cleanImportedMarkdown(markdown)
	if markdown == "" {
		return fmt.Errorf("no convertible content in %s", path)
	}

	if opts.Output == "" {
		r.Println(markdown)
		return nil
	}

	if err := os.WriteFile(opts.Output, []byte(markdown+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", opts.Output, err)
	}

	r.Success(fmt.Sprintf("Imported %s -> %s", displayPath(path), displayPath(opts.Output)))
	return nil
}

// cleanImportedMarkdown tidies converter output: heading anchor links
// go away, runs of blank lines collapse, and lines lose trailing
// whitespace so the result passes the content lint rules.
func cleanImportedMarkdown(content string) string {
	content = reAnchorLinks.ReplaceAllString(content, "")
	content = reExcessiveNewlines.ReplaceAllString(content, "\n\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n"))
}
