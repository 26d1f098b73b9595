package dto

// SubscriptionInfo 订阅信息
type SubscriptionInfo struct {
	ID        int64  `json:"id"`
	Plan      string `json:"plan"`
	Active    bool   `json:"active"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date,omitempty"`
}

// UpgradeRequest 升级请求
type UpgradeRequest struct {
	Plan string `json:"plan" binding:"required,oneof=AI_PREMIUM"`
}
