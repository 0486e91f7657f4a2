package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/newsroom/internal/cli/config"
	"github.com/leapstack-labs/newsroom/internal/cli/output"
	"github.com/leapstack-labs/newsroom/internal/cli/testutil"
)

// execLint runs the lint command in dir with the given args.
func execLint(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	config.ResetConfig()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(oldWd) }()

	cmd := NewLintCommand()
	// The root command sets SilenceErrors/SilenceUsage; mirror that here so
	// cobra's error output does not pollute the captured command output.
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// writeEntry drops an entry file into a section of the test project.
func writeEntry(t *testing.T, dir, section, name, content string) {
	t.Helper()
	path := filepath.Join(dir, "news", section, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestNewLintCommand(t *testing.T) {
	cmd := NewLintCommand()

	assert.Equal(t, "lint [path]", cmd.Use)
	assert.NotEmpty(t, cmd.Short, "Short should not be empty")
	assert.NotEmpty(t, cmd.Example, "Example should not be empty")

	// Verify flags exist
	flags := []string{"format", "disable", "severity", "rule", "skip-project"}
	for _, flag := range flags {
		assert.NotNil(t, cmd.Flags().Lookup(flag), "flag %q should exist", flag)
	}
}

func TestLintCommand_CleanProject(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, err := execLint(t, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found")
}

func TestLintCommand_FindsIssues(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	writeEntry(t, dir, "2 Fixes", "4099.md", "Fixed the thing.  \n")

	out, err := execLint(t, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lint issues found")

	assert.Contains(t, out, "CT02")
	assert.Contains(t, out, "warning")
	assert.Contains(t, out, filepath.Join("news", "2 Fixes", "4099.md"))
	assert.Contains(t, out, "Summary:")
}

func TestLintCommand_SeverityThreshold(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	writeEntry(t, dir, "2 Fixes", "4099.md", "Fixed the thing.  \n")

	// CT02 is a warning, so an error-only run stays clean.
	out, err := execLint(t, dir, "--severity", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found")

	// At hint level even the pristine project reports its empty section.
	out, err = execLint(t, dir, "--severity", "hint")
	require.Error(t, err)
	assert.Contains(t, out, "PS03")
}

func TestLintCommand_DisableRule(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	writeEntry(t, dir, "2 Fixes", "4099.md", "Fixed the thing.  \n")

	out, err := execLint(t, dir, "--disable", "CT02")
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found")
}

func TestLintCommand_RuleOnly(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	writeEntry(t, dir, "2 Fixes", "4099.md", "Fixed the thing.  \n")
	writeEntry(t, dir, "2 Fixes", "draft-notes.md", "Some draft.\n")

	out, err := execLint(t, dir, "--rule", "CT02")
	require.Error(t, err)
	assert.Contains(t, out, "CT02")
	assert.NotContains(t, out, "NM01")
}

func TestLintCommand_PathFilter(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	writeEntry(t, dir, "1 Enhancements", "4101.md", "Added a thing.  \n")
	writeEntry(t, dir, "2 Fixes", "4099.md", "Fixed the thing.  \n")

	out, err := execLint(t, dir, "news/2 Fixes")
	require.Error(t, err)
	assert.Contains(t, out, "4099.md")
	assert.NotContains(t, out, "4101.md")
}

func TestLintCommand_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	writeEntry(t, dir, "2 Fixes", "4099.md", "Fixed the thing.  \n")

	out, err := execLint(t, dir, "--format", "json")
	require.Error(t, err)

	var doc output.LintOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, doc.Summary.TotalIssues, doc.Summary.Errors+doc.Summary.Warnings+doc.Summary.Info+doc.Summary.Hints)
	require.NotEmpty(t, doc.Files)
	assert.Contains(t, doc.Files[0].Path, "4099.md")
	require.NotEmpty(t, doc.Files[0].Diagnostics)
	assert.Equal(t, "CT02", doc.Files[0].Diagnostics[0].RuleID)
}

func TestLintCommand_SkipProject(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	// PS03 would fire at hint level; --skip-project silences it.
	out, err := execLint(t, dir, "--severity", "hint", "--skip-project")
	require.NoError(t, err)
	assert.Contains(t, out, "No lint issues found")
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		cfg := buildLintConfig(nil, &LintOptions{})

		require.NotNil(t, cfg)
		assert.False(t, cfg.IsDisabled("CT01"))
	})

	t.Run("disable rules", func(t *testing.T) {
		cfg := buildLintConfig(nil, &LintOptions{Disable: []string{"CT01", " PS03"}})

		require.NotNil(t, cfg)
		assert.True(t, cfg.IsDisabled("CT01"))
		assert.True(t, cfg.IsDisabled("PS03"))
		assert.False(t, cfg.IsDisabled("CT02"))
	})

	t.Run("project config applies first", func(t *testing.T) {
		projectCfg := &config.Config{
			Lint: &config.LintConfig{
				Disabled: []string{"CT02"},
				Severity: map[string]string{"CT04": "error"},
				Rules:    map[string]config.RuleOptions{"CT01": {"max_length": 120}},
			},
		}
		cfg := buildLintConfig(projectCfg, &LintOptions{})

		assert.True(t, cfg.IsDisabled("CT02"))
		assert.False(t, cfg.IsDisabled("CT01"))
		assert.EqualValues(t, 120, cfg.GetRuleOptions("CT01")["max_length"])
	})

	t.Run("rule flag disables all others", func(t *testing.T) {
		cfg := buildLintConfig(nil, &LintOptions{Rules: []string{"CT01"}})

		assert.False(t, cfg.IsDisabled("CT01"))
		assert.True(t, cfg.IsDisabled("CT02"))
		assert.True(t, cfg.IsDisabled("PS03"))
	})
}
