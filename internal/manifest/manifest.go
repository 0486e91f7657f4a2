// Package manifest reads the package.json manifest that drives releases.
// Only the fields the release pipeline consumes are modeled; everything
// else in the file is ignored.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrNotFound reports a missing manifest file.
var ErrNotFound = errors.New("package manifest not found")

// Manifest is the slice of package.json the release pipeline reads.
type Manifest struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Repository      Repository        `json:"repository"`
	Engines         map[string]string `json:"engines"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`

	// Path is where the manifest was loaded from.
	Path string `json:"-"`
}

// Repository models package.json's repository field, which is either a
// shorthand string ("owner/repo") or an object with type and url keys.
type Repository struct {
	Type string `json:"type"`
	URL  string `json:"url"`
}

func (r *Repository) UnmarshalJSON(data []byte) error {
	var shorthand string
	if err := json.Unmarshal(data, &shorthand); err == nil {
		r.URL = shorthand
		return nil
	}

	type repository Repository
	var full repository
	if err := json.Unmarshal(data, &full); err != nil {
		return fmt.Errorf("repository must be a string or an object: %w", err)
	}
	*r = Repository(full)
	return nil
}

// Slug reduces the repository reference to its issue-link form: either
// an "owner/repo" shorthand or a full URL with any ".git" suffix
// stripped. Returns "" when no repository is recorded.
func (r Repository) Slug() string {
	url := strings.TrimSpace(r.URL)
	url = strings.TrimPrefix(url, "git+")
	url = strings.TrimSuffix(url, ".git")
	return url
}

// Load reads and parses a package manifest.
func Load(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	m.Path = path
	return &m, nil
}

// RepositoryURL returns the repository reference for issue links,
// preferring the manifest's repository field and falling back to the
// given default.
func (m *Manifest) RepositoryURL(fallback string) string {
	if slug := m.Repository.Slug(); slug != "" {
		return slug
	}
	return fallback
}
