// Package database sets up/opens the download history database.
package database

import (
	"database/sql"
	"fmt"

	"grabarr/internal/utils/logging"

	_ "github.com/mattn/go-sqlite3"
)

const dbDriver = "sqlite3"

const downloadsTableSQL = `
CREATE TABLE IF NOT EXISTS downloads (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	video_id TEXT NOT NULL UNIQUE,
	url TEXT NOT NULL DEFAULT '',
	file_path TEXT NOT NULL DEFAULT '',
	status TEXT NOT NULL DEFAULT 'waiting',
	percentage REAL NOT NULL DEFAULT 0,
	error TEXT NOT NULL DEFAULT '',
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// Database wraps the program's SQL handle.
type Database struct {
	DB *sql.DB
}

// InitDB opens (creating if needed) the history database at path.
func InitDB(path string) (*Database, error) {
	d := new(Database)

	var err error
	d.DB, err = sql.Open(dbDriver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database at path %q: %w", path, err)
	}

	if _, err = d.DB.Exec("PRAGMA foreign_keys = ON;"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if err := d.initTables(); err != nil {
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}
	return d, nil
}

// Close closes the underlying handle.
func (d *Database) Close() {
	if err := d.DB.Close(); err != nil {
		logging.E("Failed to close database: %v", err)
	}
}

// initTables initializes the SQL tables.
func (d *Database) initTables() error {
	tx, err := d.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			if rollbackErr := tx.Rollback(); rollbackErr != nil {
				logging.E("transaction rollback failed: %v", rollbackErr)
			}
		}
	}()

	if _, err := tx.Exec(downloadsTableSQL); err != nil {
		return fmt.Errorf("failed to create downloads table: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
