package finance

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type Repository interface {
	// LockMember holds the member row until the surrounding transaction ends.
	LockMember(ctx context.Context, q sqlx.QueryerContext, memberID int) error
	Insert(ctx context.Context, q sqlx.QueryerContext, t *Transaction) error
	MarkMemberPaid(ctx context.Context, q sqlx.ExecerContext, memberID int) error

	ListByMember(ctx context.Context, memberID int) ([]Transaction, error)
	TotalByMember(ctx context.Context, memberID int) (decimal.Decimal, error)
}
