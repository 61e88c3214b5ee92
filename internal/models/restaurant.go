package models

import (
	"time"
)

type Restaurant struct {
	ID          uint       `gorm:"primarykey" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Description string     `gorm:"type:text" json:"description"`
	// Owner is nullable: removing the owning account orphans the
	// restaurant instead of deleting it.
	OwnerID  *uint      `json:"owner_id,omitempty"`
	Owner    *User      `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL" json:"owner,omitempty"`
	Location string     `json:"location"`
	Cuisine  string     `json:"cuisine"`
	AvgPrice float64    `gorm:"check:avg_price >= 0" json:"avg_price"`
	PhotoURL string     `json:"photo_url"`
	MenuItems []FoodItem `gorm:"foreignKey:RestaurantID" json:"menu_items,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// IsOwnedBy reports whether the given user id is the restaurant's owner.
func (r *Restaurant) IsOwnedBy(userID uint) bool {
	return r.OwnerID != nil && *r.OwnerID == userID
}

type FoodItem struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	Name         string     `gorm:"not null" json:"name"`
	Description  string     `gorm:"type:text" json:"description"`
	Price        float64    `gorm:"not null;check:price >= 0" json:"price"`
	ImageURL     string     `json:"image_url"`
	IsVeg        bool       `gorm:"default:true" json:"is_veg"`
	IsSpecial    bool       `gorm:"default:false" json:"is_special"`
	DealPrice    *float64   `gorm:"check:deal_price >= 0" json:"deal_price,omitempty"`
	DealActive   bool       `gorm:"default:false" json:"deal_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// EffectivePrice returns the deal price while a deal is active and set,
// otherwise the base price.
func (f *FoodItem) EffectivePrice() float64 {
	if f.DealActive && f.DealPrice != nil {
		return *f.DealPrice
	}
	return f.Price
}
