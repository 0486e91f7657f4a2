package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// SQLStore implements Store over database/sql for both backends. All
// queries are written with ? placeholders and rebound for PostgreSQL.
type SQLStore struct {
	db      *sql.DB
	dialect Dialect
}

// NewWithDB wraps an existing connection without opening or migrating.
// Used by tests and callers that manage the connection themselves.
func NewWithDB(db *sql.DB, dialect Dialect) *SQLStore {
	return &SQLStore{db: db, dialect: dialect}
}

// rebind rewrites ? placeholders to $1..$n for PostgreSQL.
func (s *SQLStore) rebind(query string) string {
	if s.dialect != DialectPostgres {
		return query
	}

	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// RecordRelease stores a release and its entries in one transaction.
func (s *SQLStore) RecordRelease(ctx context.Context, release *Release, entries []ReleasedEntry) error {
	if s.db == nil {
		return fmt.Errorf("store not opened")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var exists int
	err = tx.QueryRowContext(ctx, s.rebind(`SELECT COUNT(*) FROM releases WHERE version = ?`), release.Version).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check existing release: %w", err)
	}
	if exists > 0 {
		return fmt.Errorf("%w: %s", ErrVersionExists, release.Version)
	}

	if release.ID == "" {
		release.ID = uuid.New().String()
	}
	release.EntryCount = len(entries)
	release.CreatedAt = time.Now().UTC()

	_, err = tx.ExecContext(ctx, s.rebind(
		`INSERT INTO releases (id, version, released_on, entry_count, body, created_at) VALUES (?, ?, ?, ?, ?, ?)`),
		release.ID, release.Version, release.ReleasedOn.UTC(), release.EntryCount, release.Body, release.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert release: %w", err)
	}

	for i := range entries {
		if entries[i].ID == "" {
			entries[i].ID = uuid.New().String()
		}
		entries[i].ReleaseID = release.ID

		_, err = tx.ExecContext(ctx, s.rebind(
			`INSERT INTO release_entries (id, release_id, issue, nonce, section, description, path) VALUES (?, ?, ?, ?, ?, ?, ?)`),
			entries[i].ID, entries[i].ReleaseID, entries[i].Issue, entries[i].Nonce,
			entries[i].Section, entries[i].Description, entries[i].Path,
		)
		if err != nil {
			return fmt.Errorf("failed to insert release entry: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit release: %w", err)
	}
	return nil
}

const releaseColumns = `id, version, released_on, entry_count, body, created_at`

func scanRelease(row interface{ Scan(...any) error }) (*Release, error) {
	release := &Release{}
	err := row.Scan(&release.ID, &release.Version, &release.ReleasedOn,
		&release.EntryCount, &release.Body, &release.CreatedAt)
	if err != nil {
		return nil, err
	}
	return release, nil
}

// ListReleases returns all releases, newest first.
func (s *SQLStore) ListReleases(ctx context.Context) ([]*Release, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not opened")
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT `+releaseColumns+` FROM releases ORDER BY released_on DESC, created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var releases []*Release
	for rows.Next() {
		release, err := scanRelease(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan release: %w", err)
		}
		releases = append(releases, release)
	}
	return releases, rows.Err()
}

// GetRelease returns one release and its entries by version.
func (s *SQLStore) GetRelease(ctx context.Context, version string) (*Release, []ReleasedEntry, error) {
	if s.db == nil {
		return nil, nil, fmt.Errorf("store not opened")
	}

	row := s.db.QueryRowContext(ctx,
		s.rebind(`SELECT `+releaseColumns+` FROM releases WHERE version = ?`), version)
	release, err := scanRelease(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil, fmt.Errorf("%w: %s", ErrReleaseNotFound, version)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get release: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, s.rebind(
		`SELECT id, release_id, issue, nonce, section, description, path
		 FROM release_entries WHERE release_id = ? ORDER BY section, issue, nonce`),
		release.ID,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get release entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var entries []ReleasedEntry
	for rows.Next() {
		var e ReleasedEntry
		if err := rows.Scan(&e.ID, &e.ReleaseID, &e.Issue, &e.Nonce, &e.Section, &e.Description, &e.Path); err != nil {
			return nil, nil, fmt.Errorf("failed to scan release entry: %w", err)
		}
		entries = append(entries, e)
	}
	return release, entries, rows.Err()
}

// LatestRelease returns the newest release, or nil when history is empty.
func (s *SQLStore) LatestRelease(ctx context.Context) (*Release, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not opened")
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT `+releaseColumns+` FROM releases ORDER BY released_on DESC, created_at DESC LIMIT 1`)
	release, err := scanRelease(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest release: %w", err)
	}
	return release, nil
}

// Ping verifies the backend is reachable.
func (s *SQLStore) Ping(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("store not opened")
	}
	return s.db.PingContext(ctx)
}

// Close closes the underlying connection.
func (s *SQLStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Ensure SQLStore implements the Store interface
var _ Store = (*SQLStore)(nil)
