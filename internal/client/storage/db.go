// Package storage opens the local SQLite database of the client and brings
// its schema up to date.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/dmitrijs2005/notehub/internal/client/migrations"
	"github.com/dmitrijs2005/notehub/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/notehub/internal/client/repositories/notes"
)

// Repositories bundles the repositories over one database handle.
type Repositories struct {
	DB       *sql.DB
	Metadata *metadata.SQLiteRepository
	Notes    *notes.SQLiteRepository
}

// Close closes the underlying database.
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// RunMigrations applies all pending embedded migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

// InitDatabase opens the SQLite database at dsn, migrates it and returns
// the repositories bound to it.
func InitDatabase(ctx context.Context, dsn string) (*Repositories, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dsn, err)
	}
	// one connection: ":memory:" databases are per-connection
	db.SetMaxOpenConns(1)

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Repositories{
		DB:       db,
		Metadata: metadata.NewSQLiteRepository(db),
		Notes:    notes.NewSQLiteRepository(db),
	}, nil
}
