// Package storage opens the local sqlite database and wires up the
// repositories that live on top of it.
package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/ndemidova/chattr/internal/client/migrations"
	"github.com/ndemidova/chattr/internal/client/repositories/messages"
	"github.com/ndemidova/chattr/internal/client/repositories/session"
)

// Store bundles the open database handle with the repositories bound to it.
// Services that need multi-write atomicity build transactional repositories
// from DB via dbx.WithTx.
type Store struct {
	DB       *sql.DB
	Session  session.Repository
	Messages messages.Repository
}

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// Open opens (creating if needed) the database at dsn, migrates it, and
// returns the repositories.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &Store{
		DB:       db,
		Session:  session.NewSQLiteRepository(db),
		Messages: messages.NewSQLiteRepository(db),
	}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.DB.Close()
}
