package database

import (
	"database/sql"

	_ "modernc.org/sqlite"
)

// OpenSQLite opens a SQLite database with the pragmas the repositories
// rely on. Use ":memory:" for tests.
func OpenSQLite(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Single writer; the repositories serialize conflicting commits
	// through the write transaction.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, err
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}
