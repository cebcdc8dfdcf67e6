package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
	"github.com/alvimrfg/sistema-socio-40graus/internal/db"
)

const memberColumns = `id, full_name, tax_id, email, phone, birth_date, address, quota_type, usage_plan,
	allowance_days, used_days, start_date, end_date, payment_status, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Member) error {
	query := `
		INSERT INTO members (full_name, tax_id, email, phone, birth_date, address, quota_type, usage_plan,
			allowance_days, used_days, start_date, end_date, payment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, $10, $11, $12)
		RETURNING id, used_days, created_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		m.FullName, m.TaxID, m.Email, m.Phone, m.BirthDate, m.Address, m.QuotaType, m.UsagePlan,
		m.AllowanceDays, m.StartDate, m.EndDate, m.PaymentStatus,
	).Scan(&m.ID, &m.UsedDays, &m.CreatedAt)
	if db.IsUniqueViolation(err) {
		return apperror.Validation("tax id or email already registered")
	}
	return apperror.Storage(err)
}

func (r *repository) GetByID(ctx context.Context, id int) (*Member, error) {
	query := fmt.Sprintf(`SELECT %s FROM members WHERE id = $1`, memberColumns)

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.NotFound("member %d", id)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &m, nil
}

// List matches search against the name, or against the tax id when the
// search holds digits.
func (r *repository) List(ctx context.Context, search string) ([]Member, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM members
		WHERE $1 = ''
		   OR full_name ILIKE '%%' || $1 || '%%'
		   OR ($2 <> '' AND tax_id LIKE '%%' || $2 || '%%')
		ORDER BY full_name
	`, memberColumns)

	members := []Member{}
	if err := r.db.SelectContext(ctx, &members, query, search, DigitsOnly(search)); err != nil {
		return nil, apperror.Storage(err)
	}

	return members, nil
}

// Update rewrites the descriptive fields and the allowance. used_days is not
// touched here; only the booking engine moves it.
func (r *repository) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE members
		SET full_name = $2, tax_id = $3, email = $4, phone = $5, birth_date = $6, address = $7,
			quota_type = $8, usage_plan = $9, allowance_days = $10, payment_status = $11
		WHERE id = $1
		RETURNING used_days
	`

	err := r.db.QueryRowxContext(ctx, query,
		m.ID, m.FullName, m.TaxID, m.Email, m.Phone, m.BirthDate, m.Address,
		m.QuotaType, m.UsagePlan, m.AllowanceDays, m.PaymentStatus,
	).Scan(&m.UsedDays)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("member %d", m.ID)
	}
	if db.IsUniqueViolation(err) {
		return apperror.Validation("tax id or email already registered")
	}
	return apperror.Storage(err)
}

func (r *repository) UpdatePaymentStatus(ctx context.Context, id int, status string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE members SET payment_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return apperror.Storage(err)
	}
	return requireRow(result, "member %d", id)
}

func (r *repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM members WHERE id = $1`, id)
	if db.IsForeignKeyViolation(err) {
		return fmt.Errorf("%w: member %d owns bookings", apperror.ErrConflict, id)
	}
	if err != nil {
		return apperror.Storage(err)
	}
	return requireRow(result, "member %d", id)
}

func (r *repository) HasBookings(ctx context.Context, id int) (bool, error) {
	exists, err := db.Exists(ctx, r.db, `SELECT EXISTS (SELECT 1 FROM bookings WHERE member_id = $1)`, id)
	if err != nil {
		return false, apperror.Storage(err)
	}
	return exists, nil
}

func (r *repository) ListDependents(ctx context.Context, memberID int) ([]Dependent, error) {
	query := `
		SELECT id, member_id, full_name, created_at
		FROM dependents
		WHERE member_id = $1
		ORDER BY id
	`

	dependents := []Dependent{}
	if err := r.db.SelectContext(ctx, &dependents, query, memberID); err != nil {
		return nil, apperror.Storage(err)
	}

	return dependents, nil
}

// AddDependent inserts only while the member is under MaxDependents; the
// count and the insert are one statement.
func (r *repository) AddDependent(ctx context.Context, memberID int, fullName string) (*Dependent, error) {
	query := `
		INSERT INTO dependents (member_id, full_name)
		SELECT $1, $2
		WHERE (SELECT COUNT(*) FROM dependents WHERE member_id = $1) < $3
		RETURNING id, member_id, full_name, created_at
	`

	var d Dependent
	err := r.db.GetContext(ctx, &d, query, memberID, fullName, MaxDependents)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperror.Validation("member %d already has %d dependents", memberID, MaxDependents)
	}
	if db.IsForeignKeyViolation(err) {
		return nil, apperror.NotFound("member %d", memberID)
	}
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return &d, nil
}

func (r *repository) DeleteDependent(ctx context.Context, memberID, dependentID int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM dependents WHERE id = $1 AND member_id = $2`, dependentID, memberID)
	if err != nil {
		return apperror.Storage(err)
	}
	return requireRow(result, "dependent %d", dependentID)
}

func requireRow(result sql.Result, format string, args ...interface{}) error {
	rows, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage(err)
	}
	if rows == 0 {
		return apperror.NotFound(format, args...)
	}
	return nil
}
