package booking

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// Repository methods taking an executor run inside the caller's transaction.
type Repository interface {
	Insert(ctx context.Context, q sqlx.QueryerContext, b *Booking) error
	GetForUpdate(ctx context.Context, q sqlx.QueryerContext, id int) (*Booking, error)
	UpdateStatus(ctx context.Context, q sqlx.ExecerContext, id int, status Status) error

	GetByID(ctx context.Context, id int) (*BookingWithDetails, error)
	List(ctx context.Context) ([]BookingWithDetails, error)
	ListByMember(ctx context.Context, memberID int) ([]BookingWithDetails, error)
}
