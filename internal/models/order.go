package models

import (
	"time"
)

// OrderStatus is the lifecycle state of an order. Completed and Cancelled
// are terminal.
type OrderStatus string

const (
	StatusPending   OrderStatus = "Pending"
	StatusPreparing OrderStatus = "Preparing"
	StatusCompleted OrderStatus = "Completed"
	StatusCancelled OrderStatus = "Cancelled"
)

// ValidStatus reports whether s is one of the four known order states.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusPending, StatusPreparing, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Order struct {
	ID           uint        `gorm:"primarykey" json:"id"`
	CustomerID   uint        `gorm:"not null;index" json:"customer_id"`
	Customer     User        `gorm:"foreignKey:CustomerID;constraint:OnDelete:CASCADE" json:"customer,omitempty"`
	RestaurantID uint        `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant  `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"restaurant,omitempty"`
	// TotalPrice is a snapshot taken at placement time; later menu price
	// changes do not touch it.
	TotalPrice float64     `gorm:"not null" json:"total_price"`
	Status     OrderStatus `gorm:"not null;default:'Pending'" json:"status"`
	Items      []OrderItem `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `gorm:"primarykey" json:"id"`
	OrderID    uint     `gorm:"not null;index" json:"order_id"`
	Order      Order    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	FoodItemID uint     `gorm:"not null;index" json:"food_item_id"`
	FoodItem   FoodItem `gorm:"foreignKey:FoodItemID;constraint:OnDelete:CASCADE" json:"food_item,omitempty"`
	Quantity   int      `gorm:"not null;check:quantity >= 1" json:"quantity"`
}
