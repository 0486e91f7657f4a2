// Package news scans a news directory of per-issue release note files.
//
// The layout is one subdirectory per changelog section, named with a sort
// index ("1 Enhancements", "2 Fixes"), each holding one markdown file per
// closed issue ("4240.md"). A nonce suffix ("4240-keybindings.md") allows
// several entries for the same issue. Section directories may carry a
// README.md explaining the workflow; it is never treated as an entry.
package news

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Entry is a single release note, parsed from one markdown file.
type Entry struct {
	// Issue is the tracker issue number encoded in the file name.
	Issue int
	// Nonce distinguishes multiple entries for the same issue. Empty for
	// plain "<issue>.md" files.
	Nonce string
	// Description is the trimmed file content.
	Description string
	// Path is the file path the entry was read from.
	Path string
}

var entryNameRE = regexp.MustCompile(`^(\d+)(?:-(\S+))?\.md$`)

var (
	// ErrInvalidUTF8 reports entry content that is not valid UTF-8.
	ErrInvalidUTF8 = errors.New("content is not valid UTF-8")
	// ErrBOM reports entry content that starts with a UTF-8 byte order mark.
	ErrBOM = errors.New("content must not start with a byte order mark")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ParseEntryName splits an entry file name into its issue number and
// optional nonce. ok is false when the name does not follow the
// "<issue>.md" / "<issue>-<nonce>.md" convention.
func ParseEntryName(name string) (issue int, nonce string, ok bool) {
	m := entryNameRE.FindStringSubmatch(name)
	if m == nil {
		return 0, "", false
	}
	issue, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, "", false
	}
	return issue, m[2], true
}

// ValidateContent checks that raw entry content is valid UTF-8 and does
// not carry a byte order mark.
func ValidateContent(raw []byte) error {
	if bytes.HasPrefix(raw, utf8BOM) {
		return ErrBOM
	}
	if !utf8.Valid(raw) {
		return ErrInvalidUTF8
	}
	return nil
}

// IsReadme reports whether name is a README file, compared
// case-insensitively so "ReadMe.md" is skipped too.
func IsReadme(name string) bool {
	return strings.EqualFold(name, "README.md")
}

// Entries reads every release note in a section directory, sorted by
// issue number (nonce as tiebreaker). README.md, dotfiles, and nested
// directories are skipped. Any other file that does not follow the entry
// naming convention is an error, as is content that is not plain UTF-8.
func Entries(dir string) ([]Entry, error) {
	items, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading section %s: %w", dir, err)
	}

	var entries []Entry
	for _, item := range items {
		if item.IsDir() || strings.HasPrefix(item.Name(), ".") {
			continue
		}
		if IsReadme(item.Name()) {
			continue
		}

		path := filepath.Join(dir, item.Name())
		issue, nonce, ok := ParseEntryName(item.Name())
		if !ok {
			return nil, fmt.Errorf("%s: file name must look like <issue>.md or <issue>-<nonce>.md", path)
		}

		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading entry %s: %w", path, err)
		}
		if err := ValidateContent(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}

		entries = append(entries, Entry{
			Issue:       issue,
			Nonce:       nonce,
			Description: strings.TrimSpace(string(raw)),
			Path:        path,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Issue != entries[j].Issue {
			return entries[i].Issue < entries[j].Issue
		}
		return entries[i].Nonce < entries[j].Nonce
	})

	return entries, nil
}
