package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Order origin channels. Anything else is bucketed under OriginOther in
// the metrics report.
const (
	OriginIAWhatsApp = "ia_whatsapp"
	OriginPDV        = "pdv"
	OriginBalcao     = "balcao"
	OriginOther      = "outros"
)

// Service types.
const (
	ServiceDelivery = "delivery"
	ServiceLocal    = "local"
)

// StringList stores a JSON-encoded list of line descriptions in a text
// column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(value any) error {
	if value == nil {
		*l = nil
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported items column type %T", value)
	}
	if len(data) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(data, l)
}

// Order 订单模型 — one customer order, scoped to a restaurant.
type Order struct {
	ID            string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	RestaurantID  string     `json:"restaurant_id" gorm:"type:varchar(36);index:idx_orders_restaurant_created;not null"`
	OrderNumber   int64      `json:"order_number" gorm:"not null;default:0"`
	ClientName    string     `json:"client_name" gorm:"type:varchar(120)"`
	ClientPhone   *string    `json:"client_phone" gorm:"type:varchar(20)"` // digits only, nil when absent
	Items         StringList `json:"items" gorm:"type:text"`
	Notes         string     `json:"notes" gorm:"type:text"`
	Status        string     `json:"status" gorm:"type:varchar(16);index;not null;default:'pending'"`
	ServiceType   string     `json:"service_type" gorm:"type:varchar(16)"`
	Address       string     `json:"address" gorm:"type:varchar(255)"`
	PaymentMethod string     `json:"payment_method" gorm:"type:varchar(40)"`
	TotalPrice    float64    `json:"total_price" gorm:"type:decimal(10,2);not null;default:0"`
	Subtotal      float64    `json:"subtotal" gorm:"type:decimal(10,2);not null;default:0"`
	Discount      float64    `json:"discount" gorm:"type:decimal(10,2);not null;default:0"`
	DeliveryFee   float64    `json:"delivery_fee" gorm:"type:decimal(10,2);not null;default:0"`
	Origin        string     `json:"origin" gorm:"type:varchar(24);not null;default:'ia_whatsapp'"`
	TrackingCode  string     `json:"tracking_code" gorm:"type:varchar(12);index"`
	PDVOrderID    string     `json:"pdv_order_id,omitempty" gorm:"type:varchar(64);column:pdv_order_id"`
	CreatedAt     time.Time  `json:"created_at" gorm:"index:idx_orders_restaurant_created;not null"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"not null"`
}

func (Order) TableName() string { return "orders" }

// Phone returns the normalized phone or "" when absent.
func (o *Order) Phone() string {
	if o.ClientPhone == nil {
		return ""
	}
	return *o.ClientPhone
}
