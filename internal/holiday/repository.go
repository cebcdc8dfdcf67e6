package holiday

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/db"
)

type Repository interface {
	List(ctx context.Context) ([]Holiday, error)
	Create(ctx context.Context, h *Holiday) error
	Delete(ctx context.Context, id int) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Holiday, error) {
	holidays := []Holiday{}
	err := r.db.SelectContext(ctx, &holidays, `
		SELECT id, name, start_date, end_date, type
		FROM holidays
		ORDER BY start_date, id
	`)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return holidays, nil
}

func (r *repository) Create(ctx context.Context, h *Holiday) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO holidays (name, start_date, end_date, type)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, h.Name, h.StartDate, h.EndDate, h.Type).Scan(&h.ID)
	if db.IsUniqueViolation(err) {
		return apperror.Validation("holiday %q already exists", h.Name)
	}
	return apperror.Storage(err)
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return apperror.Storage(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage(err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("holiday %d", id)
	}
	return nil
}
