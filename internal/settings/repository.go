package settings

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
)

type Repository interface {
	List(ctx context.Context) ([]Setting, error)
	Get(ctx context.Context, key string) (*Setting, error)
	Update(ctx context.Context, key, value string) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Setting, error) {
	settings := []Setting{}
	if err := r.db.SelectContext(ctx, &settings, `SELECT key, value FROM settings ORDER BY key`); err != nil {
		return nil, apperror.Storage(err)
	}
	return settings, nil
}

func (r *repository) Get(ctx context.Context, key string) (*Setting, error) {
	var s Setting
	err := r.db.GetContext(ctx, &s, `SELECT key, value FROM settings WHERE key = $1`, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("setting %q", key)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return &s, nil
}

func (r *repository) Update(ctx context.Context, key, value string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE settings SET value = $2 WHERE key = $1`, key, value)
	if err != nil {
		return apperror.Storage(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage(err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("setting %q", key)
	}
	return nil
}
