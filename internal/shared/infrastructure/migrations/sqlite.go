package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed sqlite/*.sql
var sqliteFS embed.FS

// RunSQLiteMigrations executes all SQLite migrations in order. Statements
// use IF NOT EXISTS so repeated runs are harmless.
func RunSQLiteMigrations(ctx context.Context, db *sql.DB) error {
	entries, err := sqliteFS.ReadDir("sqlite")
	if err != nil {
		return fmt.Errorf("read migrations directory: %w", err)
	}

	var upFiles []string
	for _, entry := range entries {
		if strings.HasSuffix(entry.Name(), ".up.sql") {
			upFiles = append(upFiles, entry.Name())
		}
	}
	sort.Strings(upFiles)

	for _, file := range upFiles {
		migration, err := sqliteFS.ReadFile("sqlite/" + file)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}
		if _, err := db.ExecContext(ctx, string(migration)); err != nil {
			return fmt.Errorf("execute migration %s: %w", file, err)
		}
	}
	return nil
}
