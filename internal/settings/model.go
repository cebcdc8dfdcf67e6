package settings

const (
	KeySimpleQuotaPrice         = "simple_quota_price"
	KeyPremiumQuotaPrice        = "premium_quota_price"
	KeySpecialHolidayFeeSimple  = "special_holiday_fee_simple"
	KeySpecialHolidayFeePremium = "special_holiday_fee_premium"
)

type Setting struct {
	Key   string `db:"key" json:"key" example:"simple_quota_price"`
	Value string `db:"value" json:"value" example:"1400.00"`
}

type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required" example:"1500.00"`
}
