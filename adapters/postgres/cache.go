package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"qqfit/domain/core"
	"qqfit/ports"
)

// ParamCacheRepository implements ports.ParamCache on PostgreSQL. It shares
// the filesystem cache's staleness contract: a stored row is returned
// verbatim until it is deleted out of band.
type ParamCacheRepository struct {
	db *sqlx.DB
}

// NewParamCacheRepository creates a new PostgreSQL parameter cache
func NewParamCacheRepository(db *sqlx.DB) *ParamCacheRepository {
	return &ParamCacheRepository{db: db}
}

// EnsureSchema creates the backing table when it does not exist yet.
func (r *ParamCacheRepository) EnsureSchema(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS fit_params (
			family     TEXT NOT NULL,
			year       INT NOT NULL,
			params     JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			PRIMARY KEY (family, year)
		)
	`)
	if err != nil {
		return fmt.Errorf("%w: creating fit_params table: %v", core.ErrCacheIO, err)
	}
	return nil
}

// Load reads the vector for key. An absent row is a miss, not an error.
func (r *ParamCacheRepository) Load(ctx context.Context, key ports.FitKey) ([]float64, bool, error) {
	var raw []byte
	err := r.db.GetContext(ctx, &raw, `
		SELECT params
		FROM fit_params
		WHERE family = $1 AND year = $2
	`, key.Family.String(), key.Year)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: loading %s/%d: %v", core.ErrCacheIO, key.Family, key.Year, err)
	}

	var params []float64
	if err := json.Unmarshal(raw, &params); err != nil {
		return nil, false, fmt.Errorf("%w: row %s/%d is not a parameter vector: %v", core.ErrCacheIO, key.Family, key.Year, err)
	}
	return params, true, nil
}

// Store writes the vector for key, replacing any existing row.
func (r *ParamCacheRepository) Store(ctx context.Context, key ports.FitKey, params []float64) error {
	raw, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("%w: encoding parameters for %s/%d: %v", core.ErrCacheIO, key.Family, key.Year, err)
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO fit_params (family, year, params, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (family, year) DO UPDATE SET params = EXCLUDED.params, updated_at = NOW()
	`, key.Family.String(), key.Year, raw)
	if err != nil {
		return fmt.Errorf("%w: storing %s/%d: %v", core.ErrCacheIO, key.Family, key.Year, err)
	}
	return nil
}

// Remove deletes the row for key. Removing an absent row is not an error.
func (r *ParamCacheRepository) Remove(ctx context.Context, key ports.FitKey) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM fit_params
		WHERE family = $1 AND year = $2
	`, key.Family.String(), key.Year)
	if err != nil {
		return fmt.Errorf("%w: removing %s/%d: %v", core.ErrCacheIO, key.Family, key.Year, err)
	}
	return nil
}
