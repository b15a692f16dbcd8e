package db

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

// DB wraps a SQLite connection holding the city catalog and settings tables.
type DB struct {
	*sql.DB

	// homeCountry sorts ahead of all other countries in catalog listings.
	homeCountry string
}

// Option configures a DB.
type Option func(*DB)

// WithHomeCountry overrides the country code that sorts first in city listings.
func WithHomeCountry(code string) Option {
	return func(d *DB) { d.homeCountry = code }
}

// Open opens (or creates) the database at path and ensures the schema exists.
func Open(path string, opts ...Option) (*DB, error) {
	conn, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// All storage access happens on the caller's goroutine; a single
	// connection keeps the SQLite handle out of concurrent use.
	conn.SetMaxOpenConns(1)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err := initSchema(conn); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	d := &DB{DB: conn, homeCountry: "RU"}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

func initSchema(conn *sql.DB) error {
	_, err := conn.Exec(`
		CREATE TABLE IF NOT EXISTS cities (
			id       INTEGER PRIMARY KEY,
			country  TEXT,
			name     TEXT,
			localized_name TEXT,
			lat      REAL,
			lon      REAL,
			favorite BOOLEAN DEFAULT (0)
		);

		CREATE TABLE IF NOT EXISTS settings (
			id    INTEGER PRIMARY KEY AUTOINCREMENT,
			name  TEXT UNIQUE,
			value TEXT
		);
	`)
	return err
}
