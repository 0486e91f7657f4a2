package gitcmd

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	rec := &Recorder{Repository: true}
	ctx := context.Background()

	require.NoError(t, rec.Remove(ctx, "repo", "news/1 Fixes/1.md", "news/1 Fixes/2.md"))
	require.NoError(t, rec.Remove(ctx, "repo", "news/2 Misc/3.md"))

	assert.Equal(t, []string{"news/1 Fixes/1.md", "news/1 Fixes/2.md", "news/2 Misc/3.md"}, rec.Removed)
	assert.Equal(t, []string{"repo", "repo"}, rec.Dirs)
	assert.True(t, rec.IsRepository("repo"))

	rec.Err = errors.New("boom")
	assert.Error(t, rec.Remove(ctx, "repo", "x.md"))
}

func TestIsRepository(t *testing.T) {
	dir := t.TempDir()
	runner := ExecRunner{}

	assert.False(t, runner.IsRepository(dir))

	require.NoError(t, os.Mkdir(filepath.Join(dir, ".git"), 0o755))
	assert.True(t, runner.IsRepository(dir))
}

func TestRemoveNoPaths(t *testing.T) {
	// No git invocation happens for an empty path list.
	assert.NoError(t, ExecRunner{}.Remove(context.Background(), "/nonexistent"))
}

func TestRemove(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	ctx := context.Background()

	run := func(args ...string) {
		t.Helper()
		cmd := exec.CommandContext(ctx, "git", args...)
		cmd.Dir = dir
		out, err := cmd.CombinedOutput()
		require.NoError(t, err, "git %v: %s", args, out)
	}

	run("init", "-q")
	path := filepath.Join(dir, "1.md")
	require.NoError(t, os.WriteFile(path, []byte("Fixed a thing.\n"), 0o644))
	run("add", "1.md")
	run("-c", "user.name=test", "-c", "user.email=test@example.com", "commit", "-q", "-m", "add entry")

	require.NoError(t, ExecRunner{}.Remove(ctx, dir, "1.md"))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "git rm removes the work tree file")
}

func TestRemoveUntracked(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	ctx := context.Background()

	cmd := exec.CommandContext(ctx, "git", "init", "-q")
	cmd.Dir = dir
	require.NoError(t, cmd.Run())

	err := ExecRunner{}.Remove(ctx, dir, "missing.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git rm")
}
