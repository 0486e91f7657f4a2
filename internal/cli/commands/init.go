package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/newsroom/internal/cli/output"
	"github.com/spf13/cobra"
)

// defaultSections are the section directories a fresh project starts
// with. The template cannot carry them because they start out empty.
var defaultSections = []string{"1 Enhancements", "2 Fixes", "3 Code Health"}

// NewInitCommand creates the init command.
func NewInitCommand() *cobra.Command {
	var force bool
	var example bool

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new newsroom project",
		Long: `Initialize a new newsroom project with default directory structure and configuration.

This creates:
  - newsroom.yaml configuration file
  - news/ directory with a README and the default sections
  - .gitignore covering the release history database

Use --example to create a full working demo project with a manifest,
a changelog, and sample entries in every section.`,
		Example: `  # Initialize in current directory
  newsroom init

  # Initialize with a full working example
  newsroom init --example

  # Initialize in a new directory
  newsroom init my-project --example

  # Force overwrite existing config
  newsroom init --force`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			// Create renderer
			cfg := getConfig()
			mode := output.Mode(cfg.OutputFormat)
			r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode)

			if example {
				return runInitExample(r, dir, force)
			}
			return runInit(r, dir, force)
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing configuration")
	cmd.Flags().BoolVar(&example, "example", false, "Create a full example project with a manifest, changelog, and entries")

	return cmd
}

func runInit(r *output.Renderer, dir string, force bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	configPath := dir + "/newsroom.yaml"
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("newsroom.yaml already exists. Use --force to overwrite")
	}

	// Copy minimal template
	if err := copyTemplate("minimal", dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	// Create the default section directories
	if err := createSections(dir); err != nil {
		return fmt.Errorf("failed to create section directories: %w", err)
	}

	// List created files
	files, _ := listTemplateFiles("minimal")
	for _, f := range files {
		r.StatusLine(f, "success", "")
	}
	for _, section := range defaultSections {
		r.StatusLine("news/"+section+"/", "success", "")
	}

	r.Println("")
	r.Success("Newsroom project initialized!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  1. Run 'newsroom new 1234' to add an entry for issue 1234")
	r.Println("  2. Run 'newsroom lint' to validate pending entries")
	r.Println("  3. Run 'newsroom preview' to render the pending release notes")
	r.Println("  4. Run 'newsroom release' to write them to the changelog")

	return nil
}

func runInitExample(r *output.Renderer, dir string, force bool) error {
	// Create directory if specified and doesn't exist
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	// Check if config already exists
	configPath := dir + "/newsroom.yaml"
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("newsroom.yaml already exists. Use --force to overwrite")
	}

	// Copy example template
	if err := copyTemplate("example", dir, force); err != nil {
		return fmt.Errorf("failed to initialize project: %w", err)
	}

	// List created files by category
	files, _ := listTemplateFiles("example")
	groups := groupTemplateFiles(files)

	// Display files by category
	r.Header(2, "Configuration")
	for _, f := range groups["config"] {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Header(2, "News")
	for _, f := range groups["news"] {
		r.StatusLine(f, "success", "")
	}

	r.Println("")
	r.Success("Newsroom project initialized with example data!")
	r.Println("")
	r.Println("Next steps:")
	r.Println("  newsroom list      View pending entries by section")
	r.Println("  newsroom lint      Validate the entries")
	r.Println("  newsroom preview   Render the pending release notes")
	r.Println("  newsroom serve     Preview them in a browser")

	return nil
}

// createSections creates the default section directories under news/.
func createSections(dir string) error {
	for _, section := range defaultSections {
		if err := os.MkdirAll(filepath.Join(dir, "news", section), 0750); err != nil {
			return err
		}
	}
	return nil
}
