package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/jlin2026/campusmarket/internal/dbx"
	"github.com/jlin2026/campusmarket/internal/migrations"
	"github.com/jlin2026/campusmarket/internal/models"
)

const userKey = "user"

// SQLiteProvider stores the session in a key-value metadata table of a local
// SQLite database.
type SQLiteProvider struct {
	db *sql.DB
}

var _ Provider = (*SQLiteProvider)(nil)

// Open opens (creating if needed) the client database at dsn and brings its
// schema up to date.
func Open(ctx context.Context, dsn string) (*SQLiteProvider, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening client db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating client db: %w", err)
	}
	return &SQLiteProvider{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return err
	}
	return goose.UpContext(ctx, db, ".")
}

// NewSQLiteProvider wraps an already-migrated database, e.g. in tests.
func NewSQLiteProvider(db *sql.DB) *SQLiteProvider {
	return &SQLiteProvider{db: db}
}

func (p *SQLiteProvider) Close() error {
	return p.db.Close()
}

func (p *SQLiteProvider) Load(ctx context.Context) (*models.User, error) {
	var value []byte
	err := p.db.QueryRowContext(ctx, `SELECT value FROM metadata WHERE key = ?`, userKey).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}

	var u models.User
	if err := json.Unmarshal(value, &u); err != nil {
		// A corrupt session is treated as absent rather than fatal.
		return nil, nil
	}
	return &u, nil
}

func (p *SQLiteProvider) Save(ctx context.Context, u *models.User) error {
	value, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return dbx.WithTx(ctx, p.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO metadata (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value
		`, userKey, value)
		if err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
		return nil
	})
}

func (p *SQLiteProvider) Clear(ctx context.Context) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM metadata WHERE key = ?`, userKey)
	if err != nil {
		return fmt.Errorf("clearing session: %w", err)
	}
	return nil
}
