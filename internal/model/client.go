package model

import "time"

// Client 客户目录 — lightweight directory record, one per (restaurant,
// phone) pair. Upserted whenever an order with a phone is created; the CRM
// view itself is recomputed from orders, not from this table.
type Client struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RestaurantID string    `json:"restaurant_id" gorm:"type:varchar(36);index:idx_clients_restaurant_phone,unique;not null"`
	Phone        string    `json:"phone" gorm:"type:varchar(20);index:idx_clients_restaurant_phone,unique;not null"`
	Name         string    `json:"name" gorm:"type:varchar(120)"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
