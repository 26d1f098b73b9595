package model

import (
	"time"
)

const (
	PlanFree      = "FREE"
	PlanAIPremium = "AI_PREMIUM"
)

type Subscription struct {
	ID        int64      `gorm:"primaryKey" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id"`
	Plan      string     `gorm:"size:20;not null;default:FREE" json:"plan"` // FREE, AI_PREMIUM
	// Active 不带 default 标签：gorm 对带 default 的零值字段会在插入时省略，
	// 导致 Active=false 的行被存成 true。调用方总是显式赋值。
	Active    bool       `gorm:"not null" json:"active"`
	StartDate time.Time  `gorm:"not null" json:"start_date"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}

// IsPremium 当前是否具备 AI 权益
func (s *Subscription) IsPremium() bool {
	return s.Plan == PlanAIPremium && s.Active
}
