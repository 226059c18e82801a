package models

import "gorm.io/gorm"

// Order status values. Transitions only move forward:
// new → contacted | delivered.
const (
	OrderStatusNew       = "new"
	OrderStatusContacted = "contacted"
	OrderStatusDelivered = "delivered"
)

// Delivery types for the Algerian courier networks: home delivery or
// pickup at the courier's wilaya desk (stop-desk).
const (
	DeliveryHome = "home"
	DeliveryDesk = "desk"
)

// Order is a cash-on-delivery order placed from the product page.
// TotalPrice is computed at insert time (price × quantity + delivery fee)
// and never recomputed afterwards, so later product price edits do not
// rewrite history.
type Order struct {
	gorm.Model
	CustomerName  string   `gorm:"size:255;not null"            json:"customer_name"`
	Phone         string   `gorm:"size:50;not null"             json:"phone"`
	Wilaya        string   `gorm:"size:100;not null"            json:"wilaya"`
	Baladia       string   `gorm:"size:100"                     json:"baladia"`
	Address       string   `gorm:"type:text"                    json:"address"`
	DeliveryType  string   `gorm:"size:20;not null;default:home" json:"delivery_type"`
	Quantity      int      `gorm:"not null;default:1"           json:"quantity"`
	DeliveryPrice float64  `gorm:"not null;default:0"           json:"delivery_price"`
	TotalPrice    float64  `gorm:"not null;default:0"           json:"total_price"`
	Status        string   `gorm:"size:20;not null;default:new;index" json:"status"`
	ProductID     uint     `gorm:"not null;index"               json:"product_id"`
	Product       *Product `gorm:"foreignKey:ProductID"         json:"product,omitempty"`
}
