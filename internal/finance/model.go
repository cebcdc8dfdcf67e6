package finance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is one payment received from a member. Rows are never
// updated or deleted.
type Transaction struct {
	ID              int             `db:"id" json:"id"`
	MemberID        int             `db:"member_id" json:"member_id"`
	Amount          decimal.Decimal `db:"amount" json:"amount" swaggertype:"string" example:"1400.00"`
	Description     string          `db:"description" json:"description"`
	TransactionDate time.Time       `db:"transaction_date" json:"transaction_date"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
}

type Statement struct {
	MemberID     int             `json:"member_id"`
	TotalPaid    decimal.Decimal `json:"total_paid" swaggertype:"string" example:"2800.00"`
	Transactions []Transaction   `json:"transactions"`
}

type RecordPaymentRequest struct {
	Amount          string `json:"amount" binding:"required" example:"1400.00"`
	Description     string `json:"description" binding:"required,max=200" example:"Quota 2026"`
	TransactionDate string `json:"transaction_date" binding:"omitempty,datetime=2006-01-02" example:"2026-01-05"`
	// MarkPaid also sets the member payment status to paid, in the same transaction.
	MarkPaid bool `json:"mark_paid"`
}
