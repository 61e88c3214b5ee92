package models

import (
	"time"
)

// Review is a customer rating for a restaurant. A customer may leave more
// than one review for the same restaurant.
type Review struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	Rating       int        `gorm:"not null;default:5;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment      string     `gorm:"type:text" json:"comment"`
	// Owners can hide a review from the public listing.
	Visible   bool      `gorm:"default:true" json:"visible"`
	CreatedAt time.Time `json:"created_at"`
}
