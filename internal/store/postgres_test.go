package store

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{
			name:    "sqlite keeps placeholders",
			dialect: DialectSQLite,
			query:   "SELECT * FROM releases WHERE version = ?",
			want:    "SELECT * FROM releases WHERE version = ?",
		},
		{
			name:    "postgres numbers placeholders",
			dialect: DialectPostgres,
			query:   "INSERT INTO t (a, b, c) VALUES (?, ?, ?)",
			want:    "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)",
		},
		{
			name:    "postgres without placeholders",
			dialect: DialectPostgres,
			query:   "SELECT COUNT(*) FROM releases",
			want:    "SELECT COUNT(*) FROM releases",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &SQLStore{dialect: tt.dialect}
			assert.Equal(t, tt.want, s.rebind(tt.query))
		})
	}
}

// The postgres paths run against sqlmock; real connections are covered
// by the sqlite round-trip tests, which share all the query code.
func TestRecordReleasePostgresPlaceholders(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewWithDB(db, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM releases WHERE version = \$1`).
		WithArgs("2019.3.0").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO releases .* VALUES \(\$1, \$2, \$3, \$4, \$5, \$6\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO release_entries .* VALUES \(\$1, \$2, \$3, \$4, \$5, \$6, \$7\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	rel := testRelease("2019.3.0", time.Date(2019, 3, 3, 0, 0, 0, 0, time.UTC))
	entries := []ReleasedEntry{{Issue: 10, Section: "Fixes", Description: "Fixed a thing."}}
	require.NoError(t, s.RecordRelease(context.Background(), rel, entries))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordReleaseDuplicateRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	s := NewWithDB(db, DialectPostgres)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM releases WHERE version = \$1`).
		WithArgs("2019.3.0").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	rel := testRelease("2019.3.0", time.Date(2019, 3, 3, 0, 0, 0, 0, time.UTC))
	err = s.RecordRelease(context.Background(), rel, nil)
	assert.ErrorIs(t, err, ErrVersionExists)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpenPostgresRequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{Backend: "postgres"})
	assert.ErrorContains(t, err, "requires a dsn")
}
