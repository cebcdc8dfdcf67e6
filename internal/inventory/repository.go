package inventory

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
	"github.com/alvimrfg/sistema-socio-40graus/internal/db"
)

type repository struct {
	db     *sqlx.DB
	ledger Ledger
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db, ledger: NewLedger()}
}

func (r *repository) List(ctx context.Context) ([]Accommodation, error) {
	query := `
		SELECT id, type, total_quantity
		FROM accommodations
		ORDER BY type
	`

	accommodations := []Accommodation{}
	if err := r.db.SelectContext(ctx, &accommodations, query); err != nil {
		return nil, apperror.Storage(err)
	}

	return accommodations, nil
}

func (r *repository) GetByType(ctx context.Context, name string) (*Accommodation, error) {
	query := `
		SELECT id, type, total_quantity
		FROM accommodations
		WHERE type = $1
	`

	var a Accommodation
	err := r.db.GetContext(ctx, &a, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("accommodation type %q", name)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &a, nil
}

func (r *repository) Create(ctx context.Context, name string, totalQuantity int) (*Accommodation, error) {
	query := `
		INSERT INTO accommodations (type, total_quantity)
		VALUES ($1, $2)
		RETURNING id, type, total_quantity
	`

	var a Accommodation
	err := r.db.GetContext(ctx, &a, query, name, totalQuantity)
	if db.IsUniqueViolation(err) {
		return nil, apperror.Validation("accommodation type %q already exists", name)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &a, nil
}

func (r *repository) UpdateQuantity(ctx context.Context, name string, totalQuantity int) (*Accommodation, error) {
	query := `
		UPDATE accommodations
		SET total_quantity = $2
		WHERE type = $1
		RETURNING id, type, total_quantity
	`

	var a Accommodation
	err := r.db.GetContext(ctx, &a, query, name, totalQuantity)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("accommodation type %q", name)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &a, nil
}

// FreeUnits reads outside any transaction, so the answer may be stale by the
// time the caller acts on it. Booking writes use the Ledger inside their own transaction.
func (r *repository) FreeUnits(ctx context.Context, name string, iv calendar.Interval) (int, error) {
	return r.ledger.FreeUnits(ctx, r.db, name, iv, 0)
}

type ledger struct{}

func NewLedger() Ledger {
	return &ledger{}
}

func (l *ledger) Lock(ctx context.Context, q sqlx.QueryerContext, name string) (*Accommodation, error) {
	query := `
		SELECT id, type, total_quantity
		FROM accommodations
		WHERE type = $1
		FOR UPDATE
	`

	var a Accommodation
	err := sqlx.GetContext(ctx, q, &a, query, name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("accommodation type %q", name)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &a, nil
}

func (l *ledger) FreeUnits(ctx context.Context, q sqlx.QueryerContext, name string, iv calendar.Interval, excludeBookingID int) (int, error) {
	if !iv.Valid() {
		return 0, apperror.ErrInvalidInterval
	}

	query := `
		SELECT a.total_quantity - (
			SELECT COUNT(*)
			FROM bookings b
			WHERE b.accommodation_type = a.type
			  AND b.status = 'confirmed'
			  AND b.start_date < $3
			  AND $2 < b.end_date
			  AND b.id <> $4
		)
		FROM accommodations a
		WHERE a.type = $1
	`

	var free int
	err := sqlx.GetContext(ctx, q, &free, query, name, iv.Start, iv.End, excludeBookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, apperror.Storage(err)
	}

	if free < 0 {
		return 0, nil
	}
	return free, nil
}
