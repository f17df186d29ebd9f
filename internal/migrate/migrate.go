// Package migrate applies SQL files from a directory to the database, at most
// once each, in lexicographic filename order. Executed filenames are recorded
// in a migrations ledger table.
package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"todo_webapp/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Runner struct {
	db  *pgxpool.Pool
	dir string
}

func New(db *pgxpool.Pool, dir string) *Runner {
	return &Runner{db: db, dir: dir}
}

// Status reports executed (by execution order) and pending (lexicographic)
// migration names. It creates the ledger table if it does not exist yet.
type Status struct {
	Executed []string
	Pending  []string
}

func (r *Runner) Status(ctx context.Context) (*Status, error) {
	if err := r.ensureLedger(ctx); err != nil {
		return nil, err
	}

	executed, err := r.executed(ctx)
	if err != nil {
		return nil, err
	}

	all, err := migrationFiles(r.dir)
	if err != nil {
		return nil, err
	}

	return &Status{Executed: executed, Pending: pending(all, executed)}, nil
}

// Run applies every pending migration, one transaction per file. The first
// failure rolls back that file's transaction and aborts the whole run; files
// already committed stay committed.
func (r *Runner) Run(ctx context.Context) error {
	st, err := r.Status(ctx)
	if err != nil {
		return err
	}

	if len(st.Pending) == 0 {
		logger.Info("no pending migrations, database is up to date")
		return nil
	}

	logger.Info("applying migrations", "pending", len(st.Pending))
	for _, name := range st.Pending {
		if err := r.runOne(ctx, name); err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		logger.Info("migration applied", "name", name)
	}

	logger.Info("all migrations completed")
	return nil
}

func (r *Runner) runOne(ctx context.Context, name string) error {
	sql, err := os.ReadFile(filepath.Join(r.dir, name))
	if err != nil {
		return err
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(sql)); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `INSERT INTO migrations (name) VALUES ($1)`, name); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Runner) ensureLedger(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS migrations (
			id SERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL UNIQUE,
			executed_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`)
	return err
}

func (r *Runner) executed(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT name FROM migrations ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		names = append(names, n)
	}
	return names, rows.Err()
}

// migrationFiles lists *.sql files in dir, sorted so numeric-prefixed names
// run in the intended order.
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)
	return files, nil
}

func pending(all, executed []string) []string {
	done := make(map[string]bool, len(executed))
	for _, n := range executed {
		done[n] = true
	}
	var out []string
	for _, n := range all {
		if !done[n] {
			out = append(out, n)
		}
	}
	return out
}
