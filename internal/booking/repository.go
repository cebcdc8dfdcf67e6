package booking

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/db"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, q sqlx.QueryerContext, b *Booking) error {
	query := `
		INSERT INTO bookings (member_id, accommodation_type, start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`

	err := q.QueryRowxContext(ctx, query, b.MemberID, b.AccommodationType, b.StartDate, b.EndDate, b.Status).
		Scan(&b.ID, &b.CreatedAt)
	if db.IsForeignKeyViolation(err) {
		return apperror.NotFound("member %d or accommodation type %q", b.MemberID, b.AccommodationType)
	}
	return apperror.Storage(err)
}

func (r *repository) GetForUpdate(ctx context.Context, q sqlx.QueryerContext, id int) (*Booking, error) {
	query := `
		SELECT id, member_id, accommodation_type, start_date, end_date, status, created_at
		FROM bookings
		WHERE id = $1
		FOR UPDATE
	`

	var b Booking
	err := sqlx.GetContext(ctx, q, &b, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("booking %d", id)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &b, nil
}

func (r *repository) UpdateStatus(ctx context.Context, q sqlx.ExecerContext, id int, status Status) error {
	query := `
		UPDATE bookings
		SET status = $2
		WHERE id = $1
	`

	result, err := q.ExecContext(ctx, query, id, status)
	if err != nil {
		return apperror.Storage(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage(err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("booking %d", id)
	}

	return nil
}

const detailsSelect = `
	SELECT
		b.id,
		b.member_id,
		b.accommodation_type,
		b.start_date,
		b.end_date,
		b.status,
		b.created_at,
		m.full_name AS member_name
	FROM bookings b
	JOIN members m ON b.member_id = m.id
`

func (r *repository) GetByID(ctx context.Context, id int) (*BookingWithDetails, error) {
	var b BookingWithDetails
	err := r.db.GetContext(ctx, &b, detailsSelect+` WHERE b.id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("booking %d", id)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &b, nil
}

func (r *repository) List(ctx context.Context) ([]BookingWithDetails, error) {
	bookings := []BookingWithDetails{}
	err := r.db.SelectContext(ctx, &bookings, detailsSelect+` ORDER BY b.start_date DESC, b.id DESC`)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return bookings, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]BookingWithDetails, error) {
	bookings := []BookingWithDetails{}
	err := r.db.SelectContext(ctx, &bookings, detailsSelect+` WHERE b.member_id = $1 ORDER BY b.start_date DESC, b.id DESC`, memberID)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return bookings, nil
}
