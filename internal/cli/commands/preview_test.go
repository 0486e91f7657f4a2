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

// execPreview runs the preview command in dir with the given args.
func execPreview(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()

	config.ResetConfig()
	oldWd, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	defer func() { _ = os.Chdir(oldWd) }()

	cmd := NewPreviewCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

func TestPreviewCommandMetadata(t *testing.T) {
	cmd := NewPreviewCommand()

	assert.Equal(t, "preview", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotNil(t, cmd.Flags().Lookup("section"), "--section flag should exist")
}

func TestPreviewCommand_RendersBody(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, err := execPreview(t, dir)
	require.NoError(t, err)

	assert.Contains(t, out, "### Enhancements")
	assert.Contains(t, out, "### Fixes")
	assert.NotContains(t, out, "### Code Health", "empty sections should be omitted")
	assert.Contains(t, out, "1. Added a quiet mode to the test runner output.")
	// Issue links come from the manifest's repository field.
	assert.Contains(t, out, "([#4022](https://github.com/leapstack-labs/launchpad/issues/4022))")
	testutil.AssertNoANSI(t, out)
}

func TestPreviewCommand_NoManifestMeansNoLinks(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	require.NoError(t, os.Remove(filepath.Join(dir, "package.json")))

	out, err := execPreview(t, dir)
	require.NoError(t, err)

	assert.Contains(t, out, "(#4022)")
	assert.NotContains(t, out, "github.com")
}

func TestPreviewCommand_SectionFilter(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, err := execPreview(t, dir, "--section", "Fixes")
	require.NoError(t, err)

	assert.Contains(t, out, "### Fixes")
	assert.NotContains(t, out, "### Enhancements")
}

func TestPreviewCommand_EmptySection(t *testing.T) {
	dir := testutil.SetupTestProject(t)

	out, err := execPreview(t, dir, "--section", "Code Health")
	require.NoError(t, err)
	assert.Contains(t, out, "No pending news entries.")
}

func TestPreviewCommand_JSON(t *testing.T) {
	dir := testutil.SetupTestProject(t)
	t.Setenv("NEWSROOM_OUTPUT", "json")

	out, err := execPreview(t, dir)
	require.NoError(t, err)

	var doc output.PreviewOutput
	require.NoError(t, json.Unmarshal([]byte(out), &doc))

	assert.Equal(t, "https://github.com/leapstack-labs/launchpad", doc.Repository)
	assert.Equal(t, 2, doc.Entries)
	assert.Contains(t, doc.Body, "### Enhancements")
}
