package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect names a supported SQL backend
type Dialect string

const (
	SQLite   Dialect = "sqlite"
	Postgres Dialect = "postgres"
)

// DB wraps the database connection and knows its dialect
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open opens or creates the SQLite database at dbPath
func Open(dbPath string) (*DB, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}
	return OpenDialect(context.Background(), SQLite, dbPath)
}

// OpenDialect connects to dsn with the given dialect and runs migrations
func OpenDialect(ctx context.Context, dialect Dialect, dsn string) (*DB, error) {
	if dialect != SQLite && dialect != Postgres {
		return nil, fmt.Errorf("unsupported database dialect %q", dialect)
	}

	sqlDB, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test connection
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if dialect == SQLite {
		// single writer connection
		sqlDB.SetMaxOpenConns(1)
		if _, err := sqlDB.ExecContext(ctx, "PRAGMA busy_timeout = 5000"); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("failed to set busy timeout: %w", err)
		}
	}

	db := &DB{DB: sqlDB, dialect: dialect}

	// Run migrations
	if err := db.migrate(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return db, nil
}

// Dialect returns the backend in use
func (db *DB) Dialect() Dialect {
	return db.dialect
}

// rebind rewrites ? placeholders to $n for postgres
func (db *DB) rebind(query string) string {
	if db.dialect != Postgres {
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
