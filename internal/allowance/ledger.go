package allowance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/apperror"
)

// Balance is a member's stay-day entitlement for the membership period.
type Balance struct {
	MemberID  int `db:"id" json:"member_id"`
	Total     int `db:"allowance_days" json:"total"`
	Used      int `db:"used_days" json:"used"`
	Available int `db:"-" json:"available"`
}

func (b Balance) CanDebit(days int) bool {
	return days >= 0 && b.Available >= days
}

// Ledger reads and mutates members.used_days. Every method runs on the
// executor it is given, so callers decide the transaction boundary.
type Ledger interface {
	Balance(ctx context.Context, q sqlx.QueryerContext, memberID int) (Balance, error)
	// Lock reads the balance holding a row lock on the member until the transaction ends.
	Lock(ctx context.Context, q sqlx.QueryerContext, memberID int) (Balance, error)
	Debit(ctx context.Context, q sqlx.ExtContext, memberID, days int) error
	Credit(ctx context.Context, q sqlx.ExtContext, memberID, days int) error
}

type ledger struct{}

func NewLedger() Ledger {
	return &ledger{}
}

func (l *ledger) Balance(ctx context.Context, q sqlx.QueryerContext, memberID int) (Balance, error) {
	return l.read(ctx, q, `
		SELECT id, allowance_days, used_days
		FROM members
		WHERE id = $1
	`, memberID)
}

func (l *ledger) Lock(ctx context.Context, q sqlx.QueryerContext, memberID int) (Balance, error) {
	return l.read(ctx, q, `
		SELECT id, allowance_days, used_days
		FROM members
		WHERE id = $1
		FOR UPDATE
	`, memberID)
}

func (l *ledger) read(ctx context.Context, q sqlx.QueryerContext, query string, memberID int) (Balance, error) {
	var b Balance
	err := sqlx.GetContext(ctx, q, &b, query, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return Balance{}, apperror.NotFound("member %d", memberID)
	}
	if err != nil {
		return Balance{}, apperror.Storage(err)
	}

	b.Available = b.Total - b.Used
	return b, nil
}

// Debit consumes days from the member's allowance. The guard lives in the
// UPDATE itself so the balance can never be overdrawn by this statement.
func (l *ledger) Debit(ctx context.Context, q sqlx.ExtContext, memberID, days int) error {
	if days < 0 {
		return apperror.Validation("cannot debit %d days", days)
	}

	result, err := q.ExecContext(ctx, `
		UPDATE members
		SET used_days = used_days + $2
		WHERE id = $1 AND allowance_days - used_days >= $2
	`, memberID, days)
	if err != nil {
		return apperror.Storage(err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperror.Storage(err)
	}
	if rowsAffected == 1 {
		return nil
	}

	b, err := l.Balance(ctx, q, memberID)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: member %d has %d days available, %d requested", apperror.ErrInsufficientBalance, memberID, b.Available, days)
}

// Credit releases days back to the member. used_days never goes below zero.
func (l *ledger) Credit(ctx context.Context, q sqlx.ExtContext, memberID, days int) error {
	if days < 0 {
		return apperror.Validation("cannot credit %d days", days)
	}

	result, err := q.ExecContext(ctx, `
		UPDATE members
		SET used_days = GREATEST(used_days - $2, 0)
		WHERE id = $1
	`, memberID, days)
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
