package store

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// openPostgres connects to a PostgreSQL history database and applies
// pending migrations.
func openPostgres(ctx context.Context, dsn string) (*SQLStore, error) {
	if dsn == "" {
		return nil, fmt.Errorf("history backend postgres requires a dsn")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	if err := Migrate(db, DialectPostgres); err != nil {
		_ = db.Close()
		return nil, err
	}

	return NewWithDB(db, DialectPostgres), nil
}
