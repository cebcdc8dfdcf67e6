package holiday

import "time"

const (
	TypeSpecial = "special"
	TypeRegular = "regular"
)

// Holiday is a named period, inclusive of both ends.
type Holiday struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	StartDate time.Time `db:"start_date" json:"start_date"`
	EndDate   time.Time `db:"end_date" json:"end_date"`
	Type      string    `db:"type" json:"type"`
}

type CreateHolidayRequest struct {
	Name      string `json:"name" binding:"required,max=100" example:"Carnaval 2027"`
	StartDate string `json:"start_date" binding:"required,datetime=2006-01-02" example:"2027-02-05"`
	EndDate   string `json:"end_date" binding:"required,datetime=2006-01-02" example:"2027-02-10"`
	Type      string `json:"type" binding:"omitempty,oneof=special regular" example:"special"`
}
