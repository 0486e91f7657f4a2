// Package gitcmd wraps the git operations the release pipeline needs.
// Released entry files are removed with git rm so the cleanup lands in
// the same commit as the changelog update.
package gitcmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
)

// Runner executes git operations against a repository.
type Runner interface {
	// Remove stages the deletion of the given paths, relative to dir.
	Remove(ctx context.Context, dir string, paths ...string) error

	// IsRepository reports whether dir is inside a git checkout.
	IsRepository(dir string) bool
}

// ExecRunner runs the real git binary.
type ExecRunner struct{}

// Remove runs git rm -q -- <paths...> in dir.
func (ExecRunner) Remove(ctx context.Context, dir string, paths ...string) error {
	if len(paths) == 0 {
		return nil
	}

	args := append([]string{"rm", "-q", "--"}, paths...)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("git rm: %s: %w", msg, err)
		}
		return fmt.Errorf("git rm: %w", err)
	}
	return nil
}

// IsRepository reports whether dir has a .git entry. Worktrees keep a
// .git file instead of a directory, so any entry counts.
func (ExecRunner) IsRepository(dir string) bool {
	_, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil
}

// Recorder is a Runner that records calls instead of running git.
type Recorder struct {
	mu sync.Mutex

	// Removed collects every path passed to Remove.
	Removed []string
	// Dirs collects the working directory of each Remove call.
	Dirs []string
	// Err, when set, is returned from Remove.
	Err error
	// Repository is what IsRepository reports.
	Repository bool
}

func (r *Recorder) Remove(_ context.Context, dir string, paths ...string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.Err != nil {
		return r.Err
	}
	r.Dirs = append(r.Dirs, dir)
	r.Removed = append(r.Removed, paths...)
	return nil
}

func (r *Recorder) IsRepository(string) bool {
	return r.Repository
}

var (
	_ Runner = ExecRunner{}
	_ Runner = (*Recorder)(nil)
)
