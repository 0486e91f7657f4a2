// Package main provides tests for the Newsroom CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/newsroom/internal/cli"
	"github.com/leapstack-labs/newsroom/internal/cli/config"
)

// scaffoldProject builds a minimal news project in a temp directory.
func scaffoldProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, "newsroom.yaml"), []byte("news_dir: news\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	for _, section := range []string{"1 Enhancements", "2 Fixes"} {
		if err := os.MkdirAll(filepath.Join(dir, "news", section), 0o755); err != nil {
			t.Fatalf("failed to create section: %v", err)
		}
	}

	entry := filepath.Join(dir, "news", "1 Enhancements", "4022.md")
	if err := os.WriteFile(entry, []byte("Added a quiet mode to the test runner output.\n"), 0o644); err != nil {
		t.Fatalf("failed to write entry: %v", err)
	}

	return dir
}

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	cmd := cli.NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	output, err := runRoot(t, "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}

	if !strings.Contains(output, "newsroom v") {
		t.Errorf("version output should contain 'newsroom v', got: %s", output)
	}
}

func TestVersionFlag(t *testing.T) {
	output, err := runRoot(t, "--version")
	if err != nil {
		t.Errorf("--version error = %v", err)
	}

	if !strings.Contains(output, "newsroom") || !strings.Contains(output, "Release notes manager") {
		t.Errorf("--version output unexpected: %s", output)
	}
}

func TestHelpCommand(t *testing.T) {
	output, err := runRoot(t, "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	expectedCommands := []string{
		"init", "new", "list", "preview", "release", "lint",
		"rules", "doctor", "history", "serve", "import", "version",
	}
	for _, expected := range expectedCommands {
		if !strings.Contains(output, expected) {
			t.Errorf("help output should contain %q, got: %s", expected, output)
		}
	}
}

func TestListCommand(t *testing.T) {
	dir := scaffoldProject(t)

	output, err := runRoot(t,
		"list",
		"--news-dir", filepath.Join(dir, "news"),
		"--output", "markdown",
	)
	if err != nil {
		t.Errorf("list command error = %v", err)
	}

	if !strings.Contains(output, "Enhancements") {
		t.Errorf("list output should contain 'Enhancements', got: %s", output)
	}
	if !strings.Contains(output, "Added a quiet mode to the test runner output.") {
		t.Errorf("list output should contain the entry description, got: %s", output)
	}
}

func TestPreviewCommand(t *testing.T) {
	dir := scaffoldProject(t)

	output, err := runRoot(t,
		"preview",
		"--news-dir", filepath.Join(dir, "news"),
		"--repository", "leapstack-labs/launchpad",
	)
	if err != nil {
		t.Errorf("preview command error = %v", err)
	}

	if !strings.Contains(output, "### Enhancements") {
		t.Errorf("preview output should contain '### Enhancements', got: %s", output)
	}
	if !strings.Contains(output, "https://github.com/leapstack-labs/launchpad/issues/4022") {
		t.Errorf("preview output should link the issue, got: %s", output)
	}
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			_, err := runRoot(t, "completion", shell)
			if err != nil {
				t.Errorf("completion %s command error = %v", shell, err)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := runRoot(t, "unknown-command")
	if err == nil {
		t.Error("unknown command should return an error")
	}
}

func TestMain(m *testing.M) {
	os.Exit(m.Run())
}
