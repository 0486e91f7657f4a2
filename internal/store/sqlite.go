package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// openSQLite opens (creating if needed) the SQLite history database and
// applies pending migrations. Use ":memory:" for an in-memory database.
func openSQLite(ctx context.Context, path string) (*SQLStore, error) {
	if path == "" {
		path = filepath.Join(".newsroom", "history.db")
	}

	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
		dsn = fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(wal)", path)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite database: %w", err)
	}

	if err := Migrate(db, DialectSQLite); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewWithDB(db, DialectSQLite), nil
}
