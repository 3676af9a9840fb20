package implementations

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	_ "github.com/lib/pq"
)

// RunMigrations brings the ledger schema up to date by applying every
// pending .sql file under migrationsDir in lexical order. Each migration
// runs in its own transaction and is recorded in schema_migrations, so a
// restart replays nothing and a failed migration leaves the schema where
// it was. The balance CHECK constraints live in these files, which makes
// an interrupted 001_init the one state the store refuses to run on.
func RunMigrations(ctx context.Context, dsn, migrationsDir string) error {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return fmt.Errorf("open postgres connection: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping postgres: %w", err)
	}

	const ddl = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version TEXT PRIMARY KEY,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}

	pending, err := pendingMigrations(ctx, db, migrationsDir)
	if err != nil {
		return err
	}

	for _, version := range pending {
		if err := applyMigration(ctx, db, migrationsDir, version); err != nil {
			return err
		}
	}

	return nil
}

// pendingMigrations lists the .sql files not yet recorded as applied,
// sorted so numeric filename prefixes dictate order.
func pendingMigrations(ctx context.Context, db *sql.DB, migrationsDir string) ([]string, error) {
	entries, err := os.ReadDir(migrationsDir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory %q: %w", migrationsDir, err)
	}

	applied := make(map[string]bool)
	rows, err := db.QueryContext(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, fmt.Errorf("scan applied migration: %w", err)
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list applied migrations: %w", err)
	}

	var pending []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".sql") {
			continue
		}
		if !applied[entry.Name()] {
			pending = append(pending, entry.Name())
		}
	}

	sort.Strings(pending)
	return pending, nil
}

func applyMigration(ctx context.Context, db *sql.DB, migrationsDir, version string) error {
	statements, err := os.ReadFile(filepath.Join(migrationsDir, version))
	if err != nil {
		return fmt.Errorf("read migration %q: %w", version, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for migration %q: %w", version, err)
	}

	if _, err := tx.ExecContext(ctx, string(statements)); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("execute migration %q: %w", version, err)
	}

	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations(version) VALUES ($1)`, version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("record migration %q: %w", version, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migration %q: %w", version, err)
	}

	return nil
}
