// Package store persists release history. Every release records which
// entries shipped in it, so past changelogs can be inspected without
// parsing CHANGELOG.md. SQLite is the default backend; PostgreSQL is
// available for teams sharing history across machines.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Dialect selects the SQL backend.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

var (
	// ErrReleaseNotFound reports a version with no recorded release.
	ErrReleaseNotFound = errors.New("release not found")
	// ErrVersionExists reports an attempt to record a version twice.
	ErrVersionExists = errors.New("release version already recorded")
)

// Release is one recorded release.
type Release struct {
	ID         string    `json:"id"`
	Version    string    `json:"version"`
	ReleasedOn time.Time `json:"released_on"`
	EntryCount int       `json:"entry_count"`
	// Body is the rendered markdown that went into the changelog.
	Body      string    `json:"body,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ReleasedEntry is one news entry as it shipped in a release.
type ReleasedEntry struct {
	ID        string `json:"id"`
	ReleaseID string `json:"release_id"`
	Issue     int    `json:"issue"`
	Nonce     string `json:"nonce,omitempty"`
	Section   string `json:"section"`
	// Description is the entry text at release time.
	Description string `json:"description"`
	// Path is where the entry file lived before cleanup.
	Path string `json:"path"`
}

// Store records and queries release history.
type Store interface {
	// RecordRelease stores a release and its entries in one transaction.
	RecordRelease(ctx context.Context, release *Release, entries []ReleasedEntry) error

	// ListReleases returns all releases, newest first.
	ListReleases(ctx context.Context) ([]*Release, error)

	// GetRelease returns one release and its entries by version.
	GetRelease(ctx context.Context, version string) (*Release, []ReleasedEntry, error)

	// LatestRelease returns the newest release, or nil when history is empty.
	LatestRelease(ctx context.Context) (*Release, error)

	// Ping verifies the backend is reachable.
	Ping(ctx context.Context) error

	Close() error
}

// Config selects and configures a history backend.
type Config struct {
	// Backend is "sqlite" (default) or "postgres".
	Backend string
	// Path is the SQLite database file.
	Path string
	// DSN is the PostgreSQL connection string.
	DSN string
}

// Open connects to the configured backend and applies pending
// migrations.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case "", string(DialectSQLite):
		return openSQLite(ctx, cfg.Path)
	case string(DialectPostgres):
		return openPostgres(ctx, cfg.DSN)
	default:
		return nil, fmt.Errorf("unknown history backend %q (expected sqlite or postgres)", cfg.Backend)
	}
}
