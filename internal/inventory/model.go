package inventory

type Accommodation struct {
	ID            int    `db:"id" json:"id"`
	Type          string `db:"type" json:"type"`
	TotalQuantity int    `db:"total_quantity" json:"total_quantity"`
}

// Availability is the free-unit count of one accommodation type over a half-open date range.
type Availability struct {
	Type          string `json:"type"`
	StartDate     string `json:"start_date"`
	EndDate       string `json:"end_date"`
	TotalQuantity int    `json:"total_quantity"`
	FreeUnits     int    `json:"free_units"`
}

type CreateAccommodationRequest struct {
	Type          string `json:"type" binding:"required,max=100"`
	TotalQuantity int    `json:"total_quantity" binding:"gte=0"`
}

type UpdateQuantityRequest struct {
	TotalQuantity int `json:"total_quantity" binding:"gte=0"`
}

type AvailabilityQuery struct {
	Start string `form:"start" binding:"required"`
	End   string `form:"end" binding:"required"`
}
