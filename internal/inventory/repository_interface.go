package inventory

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
)

type Repository interface {
	List(ctx context.Context) ([]Accommodation, error)
	GetByType(ctx context.Context, name string) (*Accommodation, error)
	Create(ctx context.Context, name string, totalQuantity int) (*Accommodation, error)
	UpdateQuantity(ctx context.Context, name string, totalQuantity int) (*Accommodation, error)
	FreeUnits(ctx context.Context, name string, iv calendar.Interval) (int, error)
}

// Ledger answers capacity questions on the executor it is given so the
// check can share a transaction with the write that depends on it.
type Ledger interface {
	// Lock takes a row lock on the accommodation type. Every writer that
	// confirms bookings of a type goes through this lock first.
	Lock(ctx context.Context, q sqlx.QueryerContext, name string) (*Accommodation, error)
	// FreeUnits is totalQuantity minus confirmed bookings overlapping iv,
	// never negative and 0 for an unknown type. excludeBookingID is left
	// out of the count; pass 0 to count every booking.
	FreeUnits(ctx context.Context, q sqlx.QueryerContext, name string, iv calendar.Interval, excludeBookingID int) (int, error)
}
