package booking

import (
	"time"

	"github.com/alvimrfg/sistema-socio-40graus/internal/calendar"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled:
		return true
	}
	return false
}

// HoldsDebit reports whether a booking in this status has its nights
// debited from the member allowance. Only confirmed bookings do.
func (s Status) HoldsDebit() bool {
	return s == StatusConfirmed
}

type Booking struct {
	ID                int       `db:"id" json:"id"`
	MemberID          int       `db:"member_id" json:"member_id"`
	AccommodationType string    `db:"accommodation_type" json:"accommodation_type"`
	StartDate         time.Time `db:"start_date" json:"start_date"`
	EndDate           time.Time `db:"end_date" json:"end_date"`
	Status            Status    `db:"status" json:"status"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

func (b *Booking) Interval() calendar.Interval {
	return calendar.Interval{Start: calendar.Day(b.StartDate), End: calendar.Day(b.EndDate)}
}

// Days is the number of nights the booking debits while confirmed.
func (b *Booking) Days() int {
	return b.Interval().Days()
}

type BookingWithDetails struct {
	Booking
	MemberName string `db:"member_name" json:"member_name"`
}

type CreateBookingRequest struct {
	MemberID          int    `json:"member_id" binding:"required,gt=0"`
	AccommodationType string `json:"accommodation_type" binding:"required"`
	StartDate         string `json:"start_date" binding:"required,datetime=2006-01-02" example:"2026-01-10"`
	EndDate           string `json:"end_date" binding:"required,datetime=2006-01-02" example:"2026-01-13"`
	// Status defaults to confirmed. A pending booking holds neither days nor a unit.
	Status string `json:"status" binding:"omitempty,oneof=confirmed pending" example:"confirmed"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled" example:"cancelled"`
}
