package migrations

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/m04kA/SMC-InterviewScheduler/pkg/dbmetrics"
)

//go:embed *.sql
var files embed.FS

// ErrMigrate ошибка применения миграций
var ErrMigrate = errors.New("migrations: failed to apply")

// DB соединение, в котором применяются миграции
type DB interface {
	dbmetrics.DBExecutor
	BeginTx(ctx context.Context, opts *sql.TxOptions) (dbmetrics.TxExecutor, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
}

// Versions список встроенных миграций в порядке применения
func Versions() ([]string, error) {
	entries, err := files.ReadDir(".")
	if err != nil {
		return nil, err
	}

	versions := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".sql") {
			versions = append(versions, e.Name())
		}
	}
	sort.Strings(versions)
	return versions, nil
}

// Up применяет ещё не применённые миграции; каждая - в своей транзакции.
// Возвращает количество применённых.
func Up(ctx context.Context, db DB, logger Logger) (int, error) {
	versions, err := Versions()
	if err != nil {
		return 0, fmt.Errorf("%w: read embedded files: %v", ErrMigrate, err)
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`); err != nil {
		return 0, fmt.Errorf("%w: create schema_migrations: %v", ErrMigrate, err)
	}

	applied := 0
	for _, version := range versions {
		var exists bool
		err := db.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
		if err != nil {
			return applied, fmt.Errorf("%w: check %s: %v", ErrMigrate, version, err)
		}
		if exists {
			continue
		}

		body, err := files.ReadFile(version)
		if err != nil {
			return applied, fmt.Errorf("%w: read %s: %v", ErrMigrate, version, err)
		}

		if err := apply(ctx, db, version, string(body)); err != nil {
			return applied, err
		}
		logger.Info("Migrations: applied %s", version)
		applied++
	}

	return applied, nil
}

func apply(ctx context.Context, db DB, version, body string) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: begin %s: %v", ErrMigrate, version, err)
	}

	if _, err := tx.ExecContext(ctx, body); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: apply %s: %v", ErrMigrate, version, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("%w: record %s: %v", ErrMigrate, version, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: commit %s: %v", ErrMigrate, version, err)
	}
	return nil
}
