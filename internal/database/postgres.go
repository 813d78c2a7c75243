package database

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

const (
	upsertPreference = `INSERT INTO Preference (owner, pref_key, pref_value, updated_at)
	VALUES ($1, $2, $3, now())
	ON CONFLICT (owner, pref_key) DO UPDATE SET pref_value = EXCLUDED.pref_value, updated_at = now()`
	searchPreference  = "SELECT pref_value FROM Preference WHERE owner = $1 AND pref_key = $2"
	deletePreferences = "DELETE FROM Preference WHERE owner = $1 AND pref_key = ANY($2)"
	clearPreferences  = "DELETE FROM Preference WHERE owner = $1"
)

type PgPreferenceRepository struct {
	pool *pgxpool.Pool
}

func NewPgPreferenceRepositoryFromAddr(ctx context.Context, addr string) (PreferenceRepository, func(), error) {
	pg, err := pgxpool.New(ctx, addr)
	if err != nil {
		return nil, nil, err
	}
	err = pg.Ping(ctx)
	if err != nil {
		pg.Close()
		return nil, nil, err
	}
	return NewPgPreferenceRepository(ctx, pg), pg.Close, nil
}

func NewPgPreferenceRepository(ctx context.Context, p *pgxpool.Pool) *PgPreferenceRepository {
	return &PgPreferenceRepository{pool: p}
}

func (r *PgPreferenceRepository) Get(ctx context.Context, owner, key string) (string, bool, error) {
	var v string
	err := r.pool.QueryRow(ctx, searchPreference, owner, key).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		log.Error().Err(err).Str("owner", owner).Str("key", key).Msg("can't read preference")
		return "", false, err
	}
	return v, true, nil
}

func (r *PgPreferenceRepository) Set(ctx context.Context, owner, key, value string) error {
	log.Debug().Str("owner", owner).Str("key", key).Msg("set preference")
	_, err := r.pool.Exec(ctx, upsertPreference, owner, key, value)
	if err != nil {
		log.Error().Err(err).Msg("error upsert received")
	}
	return err
}

func (r *PgPreferenceRepository) Delete(ctx context.Context, owner string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	_, err := r.pool.Exec(ctx, deletePreferences, owner, keys)
	if err != nil {
		log.Error().Err(err).Msg("error delete received")
	}
	return err
}

func (r *PgPreferenceRepository) Clear(ctx context.Context, owner string) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		log.Error().Err(err).Msg("can't open transaction for clear preferences")
		return err
	}

	defer func() {
		err := tx.Rollback(ctx)
		if err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			log.Error().Err(err).Msg("Undefinded error in tx")
		}
	}()

	tag, err := tx.Exec(ctx, clearPreferences, owner)
	if err != nil {
		log.Error().Err(err).Msg("error delete received")
		return err
	}
	log.Debug().Str("owner", owner).Int64("rows", tag.RowsAffected()).Msg("preferences cleared")
	return tx.Commit(ctx)
}
