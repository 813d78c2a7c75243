package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS preference (
	owner      TEXT NOT NULL,
	pref_key   TEXT NOT NULL,
	pref_value TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (owner, pref_key)
)`

var sqlitePragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA busy_timeout = 5000",
}

// SqlitePreferenceRepository stores preferences in an embedded database file,
// for single-node deployments without postgres.
type SqlitePreferenceRepository struct {
	db *sql.DB
}

func NewSqlitePreferenceRepository(ctx context.Context, path string) (*SqlitePreferenceRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	for _, pragma := range sqlitePragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, err)
		}
	}
	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	log.Debug().Str("path", path).Msg("sqlite preference store ready")
	return &SqlitePreferenceRepository{db: db}, nil
}

func (r *SqlitePreferenceRepository) Close() {
	if err := r.db.Close(); err != nil {
		log.Error().Err(err).Msg("can not close sqlite")
	}
}

func (r *SqlitePreferenceRepository) Get(ctx context.Context, owner, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx,
		"SELECT pref_value FROM preference WHERE owner = ? AND pref_key = ?", owner, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *SqlitePreferenceRepository) Set(ctx context.Context, owner, key, value string) error {
	_, err := r.db.ExecContext(ctx, `INSERT INTO preference (owner, pref_key, pref_value, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT (owner, pref_key) DO UPDATE SET pref_value = excluded.pref_value, updated_at = excluded.updated_at`,
		owner, key, value, time.Now().UTC().Format(time.RFC3339Nano))
	return err
}

func (r *SqlitePreferenceRepository) Delete(ctx context.Context, owner string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	args := make([]any, 0, len(keys)+1)
	args = append(args, owner)
	for _, k := range keys {
		args = append(args, k)
	}
	q := "DELETE FROM preference WHERE owner = ? AND pref_key IN (?" + strings.Repeat(", ?", len(keys)-1) + ")"
	_, err := r.db.ExecContext(ctx, q, args...)
	return err
}

func (r *SqlitePreferenceRepository) Clear(ctx context.Context, owner string) error {
	_, err := r.db.ExecContext(ctx, "DELETE FROM preference WHERE owner = ?", owner)
	return err
}
