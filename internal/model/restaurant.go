package model

import (
	"strings"
	"time"
)

// Subscription plans, lowest to highest entitlement.
const (
	PlanBasic     = "basic"
	PlanPro       = "pro"
	PlanAdvanced  = "advanced"
	PlanExecutive = "executive"
	PlanCustom    = "custom"
)

// Restaurant 餐厅模型 — tenant of the order board.
type Restaurant struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name      string    `json:"name" gorm:"type:varchar(120)"`
	Email     string    `json:"email" gorm:"type:varchar(120);uniqueIndex;not null"`
	Plan      string    `json:"plan" gorm:"type:varchar(20);not null;default:'basic'"`
	// OrderSeq backs the atomic per-restaurant order numbering.
	OrderSeq  int64     `json:"-" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Restaurant) TableName() string { return "restaurants" }

// ResolvedPlan returns the normalized plan, falling back to basic when
// the column is empty.
func (r *Restaurant) ResolvedPlan() string {
	plan := strings.ToLower(strings.TrimSpace(r.Plan))
	if plan == "" {
		return PlanBasic
	}
	return plan
}
