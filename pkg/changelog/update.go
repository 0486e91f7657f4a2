package changelog

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/renameio/v2"
)

// Update inserts a release section into the changelog at path and rewrites
// the file atomically, so a crash mid-release never leaves a truncated
// changelog behind. The file must already exist and start with a title
// line.
func Update(path, version string, date time.Time, body string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("changelog %s does not exist\nHint: create it with a single title line such as \"# Changelog\"", path)
		}
		return fmt.Errorf("reading changelog: %w", err)
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return fmt.Errorf("changelog %s is empty\nHint: add a title line such as \"# Changelog\"", path)
	}

	updated := Complete(string(raw), version, date, body)

	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("create pending changelog: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.WriteString(strings.TrimRight(updated, "\n") + "\n"); err != nil {
		return fmt.Errorf("write changelog: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace changelog: %w", err)
	}
	return nil
}
