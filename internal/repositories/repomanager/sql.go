package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/mrtrade/internal/migrations"
	"github.com/dmitrijs2005/mrtrade/internal/repositories/accounts"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func migrate(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	return gooseUpContext(ctx, db, dir)
}

// SQLiteManager serves accounts from a local SQLite file.
type SQLiteManager struct{}

func (m *SQLiteManager) DriverName() string { return "sqlite" }

func (m *SQLiteManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, "sqlite3", migrations.SQLiteDir)
}

func (m *SQLiteManager) Accounts(db *sql.DB) accounts.Repository {
	return accounts.NewSQLiteRepository(db)
}

// PostgresManager serves accounts from PostgreSQL via pgx.
type PostgresManager struct{}

func (m *PostgresManager) DriverName() string { return "pgx" }

func (m *PostgresManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	return migrate(ctx, db, "pgx", migrations.PostgresDir)
}

func (m *PostgresManager) Accounts(db *sql.DB) accounts.Repository {
	return accounts.NewPostgresRepository(db)
}
