package report

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
)

// Repository reads without locks. Results may trail the latest commit.
type Repository interface {
	// CalendarEvents lists confirmed bookings, restricted to those overlapping
	// window when it is not nil.
	CalendarEvents(ctx context.Context, window *calendar.Interval) ([]CalendarEvent, error)
	CountMembers(ctx context.Context) (int, error)
	PaidMembersByQuota(ctx context.Context) ([]QuotaCount, error)
	MembersByQuota(ctx context.Context) ([]QuotaCount, error)
	TotalUnits(ctx context.Context) (int, error)
	// ConfirmedNights counts confirmed booking nights falling inside window.
	ConfirmedNights(ctx context.Context, window calendar.Interval) (int, error)
	// CheckinsBetween lists confirmed bookings starting in [from, to], both inclusive.
	CheckinsBetween(ctx context.Context, from, to time.Time) ([]Checkin, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CalendarEvents(ctx context.Context, window *calendar.Interval) ([]CalendarEvent, error) {
	query := `
		SELECT b.id, m.full_name AS member_name, b.accommodation_type, b.start_date, b.end_date
		FROM bookings b
		JOIN members m ON b.member_id = m.id
		WHERE b.status = 'confirmed'
	`
	args := []interface{}{}
	if window != nil {
		query += ` AND b.start_date < $2 AND $1 < b.end_date`
		args = append(args, window.Start, window.End)
	}
	query += ` ORDER BY b.start_date, b.id`

	events := []CalendarEvent{}
	if err := r.db.SelectContext(ctx, &events, query, args...); err != nil {
		return nil, apperror.Storage(err)
	}
	return events, nil
}

func (r *repository) CountMembers(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM members`); err != nil {
		return 0, apperror.Storage(err)
	}
	return n, nil
}

func (r *repository) PaidMembersByQuota(ctx context.Context) ([]QuotaCount, error) {
	counts := []QuotaCount{}
	err := r.db.SelectContext(ctx, &counts, `
		SELECT quota_type, COUNT(*) AS members
		FROM members
		WHERE payment_status = 'paid'
		GROUP BY quota_type
		ORDER BY quota_type
	`)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return counts, nil
}

func (r *repository) MembersByQuota(ctx context.Context) ([]QuotaCount, error) {
	counts := []QuotaCount{}
	err := r.db.SelectContext(ctx, &counts, `
		SELECT quota_type, COUNT(*) AS members
		FROM members
		GROUP BY quota_type
		ORDER BY quota_type
	`)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return counts, nil
}

func (r *repository) TotalUnits(ctx context.Context) (int, error) {
	var n int
	if err := r.db.GetContext(ctx, &n, `SELECT COALESCE(SUM(total_quantity), 0) FROM accommodations`); err != nil {
		return 0, apperror.Storage(err)
	}
	return n, nil
}

func (r *repository) ConfirmedNights(ctx context.Context, window calendar.Interval) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `
		SELECT COALESCE(SUM(LEAST(end_date, $2::date) - GREATEST(start_date, $1::date)), 0)
		FROM bookings
		WHERE status = 'confirmed' AND start_date < $2 AND $1 < end_date
	`, window.Start, window.End)
	if err != nil {
		return 0, apperror.Storage(err)
	}
	return n, nil
}

func (r *repository) CheckinsBetween(ctx context.Context, from, to time.Time) ([]Checkin, error) {
	checkins := []Checkin{}
	err := r.db.SelectContext(ctx, &checkins, `
		SELECT b.id, m.full_name AS member_name, b.accommodation_type, b.start_date, b.end_date
		FROM bookings b
		JOIN members m ON b.member_id = m.id
		WHERE b.status = 'confirmed' AND b.start_date BETWEEN $1 AND $2
		ORDER BY b.start_date, b.id
	`, from, to)
	if err != nil {
		return nil, apperror.Storage(err)
	}
	return checkins, nil
}
