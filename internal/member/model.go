package member

import (
	"time"
)

const (
	QuotaSimple  = "simple"
	QuotaPremium = "premium"

	PaymentPaid    = "paid"
	PaymentPending = "pending"
	PaymentOverdue = "overdue"

	// MaxDependents is how many dependents a single membership may carry.
	MaxDependents = 3

	// MembershipLength is the validity of a quota counted from its start date.
	MembershipLength = 365 * 24 * time.Hour
)

type Member struct {
	ID            int        `db:"id" json:"id"`
	FullName      string     `db:"full_name" json:"full_name"`
	TaxID         string     `db:"tax_id" json:"tax_id"`
	Email         string     `db:"email" json:"email"`
	Phone         string     `db:"phone" json:"phone"`
	BirthDate     *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	Address       string     `db:"address" json:"address"`
	QuotaType     string     `db:"quota_type" json:"quota_type"`
	UsagePlan     string     `db:"usage_plan" json:"usage_plan"`
	AllowanceDays int        `db:"allowance_days" json:"allowance_days"`
	UsedDays      int        `db:"used_days" json:"used_days"`
	StartDate     time.Time  `db:"start_date" json:"start_date"`
	EndDate       time.Time  `db:"end_date" json:"end_date"`
	PaymentStatus string     `db:"payment_status" json:"payment_status"`
	CreatedAt     time.Time  `db:"created_at" json:"created_at"`
}

type Dependent struct {
	ID        int       `db:"id" json:"id"`
	MemberID  int       `db:"member_id" json:"member_id"`
	FullName  string    `db:"full_name" json:"full_name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type CreateMemberRequest struct {
	FullName      string `json:"full_name" binding:"required,max=200"`
	TaxID         string `json:"tax_id" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	BirthDate     string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Address       string `json:"address"`
	QuotaType     string `json:"quota_type" binding:"required,oneof=simple premium"`
	UsagePlan     string `json:"usage_plan" binding:"required"`
	StartDate     string `json:"start_date" binding:"required,datetime=2006-01-02"`
	PaymentStatus string `json:"payment_status" binding:"omitempty,oneof=paid pending overdue"`
}

type UpdateMemberRequest struct {
	FullName      string `json:"full_name" binding:"required,max=200"`
	TaxID         string `json:"tax_id" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Phone         string `json:"phone"`
	BirthDate     string `json:"birth_date" binding:"omitempty,datetime=2006-01-02"`
	Address       string `json:"address"`
	QuotaType     string `json:"quota_type" binding:"required,oneof=simple premium"`
	UsagePlan     string `json:"usage_plan" binding:"required"`
	PaymentStatus string `json:"payment_status" binding:"required,oneof=paid pending overdue"`
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" binding:"required,oneof=paid pending overdue"`
}

type AddDependentRequest struct {
	FullName string `json:"full_name" binding:"required,max=200"`
}

type ListQuery struct {
	Search string `form:"search"`
}
