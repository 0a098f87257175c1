package seed

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sync"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

// Dialect selects placeholder syntax and the database/sql driver.
type Dialect string

// Supported dialects.
const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DefaultBucket is the state row read when none is configured.
const DefaultBucket = "records"

var (
	sqlOpen = sql.Open
	openMu  sync.Mutex
)

// SQLSource reads the payload of one row of a state(bucket, payload) table.
// Payloads are JSON documents.
type SQLSource struct {
	DB      *sql.DB
	Dialect Dialect
	Bucket  string
}

// OpenSQLite opens an existing SQLite database file. A missing file is an
// error rather than a freshly created database.
func OpenSQLite(path, bucket string) (*SQLSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db, err := open(string(DialectSQLite), path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return &SQLSource{DB: db, Dialect: DialectSQLite, Bucket: bucket}, nil
}

// OpenPostgres opens and pings a Postgres database through pgx.
func OpenPostgres(ctx context.Context, dsn, bucket string) (*SQLSource, error) {
	db, err := open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return &SQLSource{DB: db, Dialect: DialectPostgres, Bucket: bucket}, nil
}

func open(driverName, dsn string) (*sql.DB, error) {
	openMu.Lock()
	defer openMu.Unlock()
	return sqlOpen(driverName, dsn)
}

// Load selects the payload for the configured bucket.
func (s *SQLSource) Load(ctx context.Context) (Document, error) {
	bucket := s.Bucket
	if bucket == "" {
		bucket = DefaultBucket
	}
	query := `SELECT payload FROM state WHERE bucket = ?`
	if s.Dialect == DialectPostgres {
		query = `SELECT payload FROM state WHERE bucket = $1`
	}
	var payload []byte
	err := s.DB.QueryRowContext(ctx, query, bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Document{}, fmt.Errorf("state bucket %s: %w", bucket, ErrNoDocument)
	}
	if err != nil {
		return Document{}, fmt.Errorf("select state %s: %w", bucket, err)
	}
	return Document{Name: string(s.Dialect) + ":" + bucket, Format: FormatJSON, Data: payload}, nil
}

// Close closes the underlying database.
func (s *SQLSource) Close() error { return s.DB.Close() }

func (s *SQLSource) String() string { return fmt.Sprintf("%s:state/%s", s.Dialect, s.Bucket) }

// OverrideSQLOpen swaps the sqlOpen function for tests and returns a restore function.
func OverrideSQLOpen(fn func(driverName, dataSourceName string) (*sql.DB, error)) func() {
	openMu.Lock()
	defer openMu.Unlock()
	prev := sqlOpen
	sqlOpen = fn
	return func() {
		openMu.Lock()
		defer openMu.Unlock()
		sqlOpen = prev
	}
}
