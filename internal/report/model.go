package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// CalendarEvent is one confirmed booking on the occupancy calendar.
type CalendarEvent struct {
	BookingID         int       `db:"id" json:"id"`
	Title             string    `db:"-" json:"title"`
	MemberName        string    `db:"member_name" json:"member_name"`
	AccommodationType string    `db:"accommodation_type" json:"accommodation_type"`
	Start             time.Time `db:"start_date" json:"start"`
	End               time.Time `db:"end_date" json:"end"`
}

type Dashboard struct {
	TotalMembers  int             `json:"total_members"`
	TotalRevenue  decimal.Decimal `json:"total_revenue" swaggertype:"string" example:"3400.00"`
	OccupancyRate float64         `json:"occupancy_rate" example:"12.5"`
	WindowStart   string          `json:"window_start" example:"2026-01-01"`
	WindowEnd     string          `json:"window_end" example:"2026-01-31"`
}

type QuotaCount struct {
	QuotaType string `db:"quota_type" json:"quota_type"`
	Members   int    `db:"members" json:"members"`
}

type Checkin struct {
	BookingID         int       `db:"id" json:"id"`
	MemberName        string    `db:"member_name" json:"member_name"`
	AccommodationType string    `db:"accommodation_type" json:"accommodation_type"`
	StartDate         time.Time `db:"start_date" json:"start_date"`
	EndDate           time.Time `db:"end_date" json:"end_date"`
}

type CalendarQuery struct {
	Start string `form:"start" binding:"omitempty,datetime=2006-01-02"`
	End   string `form:"end" binding:"omitempty,datetime=2006-01-02"`
}
