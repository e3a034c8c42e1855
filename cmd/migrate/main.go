package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Nathan-Omenge/recipe-management-api/config"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

const rollbackSuffix = "_rollback.sql"

const createMigrationsTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version    VARCHAR(64) PRIMARY KEY,
	name       VARCHAR(255) NOT NULL,
	applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

func main() {
	rollback := flag.Bool("rollback", false, "Rollback the last migration")
	dir := flag.String("dir", "migrations", "Directory holding the migration files")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	dsn, err := databaseURL()
	if err != nil {
		logger.Fatal("no database configured", zap.Error(err))
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	m := &migrator{db: db, dir: *dir, logger: logger}
	ctx := context.Background()
	if *rollback {
		err = m.rollback(ctx)
	} else {
		err = m.up(ctx)
	}
	if err != nil {
		logger.Fatal("migration failed", zap.Error(err))
	}
}

// databaseURL prefers DATABASE_URL and falls back to the API's DB_* settings
func databaseURL() (string, error) {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn, nil
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", err
	}
	if cfg.DBDriver != "postgres" {
		return "", fmt.Errorf("migrations only run against postgres, DB_DRIVER is %q", cfg.DBDriver)
	}
	return cfg.PostgresDSN(), nil
}

type migrator struct {
	db     *sql.DB
	dir    string
	logger *zap.Logger
}

func (m *migrator) up(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, createMigrationsTable); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	files, err := migrationFiles(m.dir)
	if err != nil {
		return err
	}

	for _, file := range files {
		version := migrationVersion(file)

		var applied bool
		err := m.db.QueryRowContext(ctx,
			"SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)", version,
		).Scan(&applied)
		if err != nil {
			return fmt.Errorf("check migration %s: %w", file, err)
		}
		if applied {
			m.logger.Info("migration already applied", zap.String("file", file))
			continue
		}

		content, err := os.ReadFile(filepath.Join(m.dir, file))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", file, err)
		}

		err = m.inTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, string(content)); err != nil {
				return fmt.Errorf("apply migration %s: %w", file, err)
			}
			_, err := tx.ExecContext(ctx,
				"INSERT INTO schema_migrations (version, name) VALUES ($1, $2)", version, file)
			return err
		})
		if err != nil {
			return err
		}
		m.logger.Info("applied migration", zap.String("file", file))
	}

	m.logger.Info("all migrations applied")
	return nil
}

func (m *migrator) rollback(ctx context.Context) error {
	var version, name string
	err := m.db.QueryRowContext(ctx,
		"SELECT version, name FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1",
	).Scan(&version, &name)
	if errors.Is(err, sql.ErrNoRows) {
		return errors.New("no migrations to rollback")
	}
	if err != nil {
		return fmt.Errorf("find last migration: %w", err)
	}

	path := filepath.Join(m.dir, rollbackFile(name))
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read rollback file: %w", err)
	}

	err = m.inTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("execute rollback: %w", err)
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = $1", version)
		return err
	})
	if err != nil {
		return err
	}
	m.logger.Info("rolled back migration", zap.String("file", name))
	return nil
}

func (m *migrator) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

// migrationFiles returns the forward migrations in dir, sorted by name
func migrationFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".sql" || strings.HasSuffix(name, rollbackSuffix) {
			continue
		}
		files = append(files, name)
	}
	sort.Strings(files)
	return files, nil
}

// migrationVersion extracts VERSION from VERSION_name.sql
func migrationVersion(file string) string {
	return strings.SplitN(strings.TrimSuffix(file, ".sql"), "_", 2)[0]
}

func rollbackFile(file string) string {
	return strings.TrimSuffix(file, ".sql") + rollbackSuffix
}
