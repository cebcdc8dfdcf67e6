package finance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) LockMember(ctx context.Context, q sqlx.QueryerContext, memberID int) error {
	var id int
	err := sqlx.GetContext(ctx, q, &id, `
		SELECT id
		FROM members
		WHERE id = $1
		FOR UPDATE
	`, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return apperror.NotFound("member %d", memberID)
	}
	return apperror.Storage(err)
}

func (r *repository) Insert(ctx context.Context, q sqlx.QueryerContext, t *Transaction) error {
	query := `
		INSERT INTO transactions (member_id, amount, description, transaction_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	err := q.QueryRowxContext(ctx, query, t.MemberID, t.Amount, t.Description, t.TransactionDate).
		Scan(&t.ID, &t.CreatedAt)
	return apperror.Storage(err)
}

func (r *repository) MarkMemberPaid(ctx context.Context, q sqlx.ExecerContext, memberID int) error {
	result, err := q.ExecContext(ctx, `
		UPDATE members
		SET payment_status = 'paid'
		WHERE id = $1
	`, memberID)
	if err != nil {
		return apperror.Storage(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage(err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("member %d", memberID)
	}
	return nil
}

func (r *repository) ListByMember(ctx context.Context, memberID int) ([]Transaction, error) {
	txs := []Transaction{}
	err := r.db.SelectContext(ctx, &txs, `
		SELECT id, member_id, amount, description, transaction_date, created_at
		FROM transactions
		WHERE member_id = $1
		ORDER BY transaction_date DESC, id DESC
	`, memberID)
	if err != nil {
		return nil, apperror.Storage(err)
	}

	return txs, nil
}

func (r *repository) TotalByMember(ctx context.Context, memberID int) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.GetContext(ctx, &total, `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE member_id = $1
	`, memberID)
	if err != nil {
		return decimal.Zero, apperror.Storage(err)
	}

	return total, nil
}
