package models

import (
	"time"
)

// Feedback types accepted from customers.
const (
	FeedbackComplaint  = "complaint"
	FeedbackSuggestion = "suggestion"
	FeedbackCompliment = "compliment"
	FeedbackGeneral    = "general"
)

// ValidFeedbackType reports whether t is a known feedback type.
func ValidFeedbackType(t string) bool {
	switch t {
	case FeedbackComplaint, FeedbackSuggestion, FeedbackCompliment, FeedbackGeneral:
		return true
	}
	return false
}

type Feedback struct {
	ID           uint       `gorm:"primarykey" json:"id"`
	UserID       uint       `gorm:"not null;index" json:"user_id"`
	User         User       `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	RestaurantID uint       `gorm:"not null;index" json:"restaurant_id"`
	Restaurant   Restaurant `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"-"`
	Type         string     `gorm:"not null;default:'general'" json:"type"`
	Message      string     `gorm:"type:text;not null" json:"message"`
	Priority     string     `gorm:"default:'medium'" json:"priority"` // low, medium, high
	Seen         bool       `gorm:"default:false" json:"seen"`

	// Owner response. Responder is nullable so deleting the responding
	// account keeps the response text.
	Response    string     `gorm:"type:text" json:"response,omitempty"`
	RespondedBy *uint      `json:"responded_by,omitempty"`
	Responder   *User      `gorm:"foreignKey:RespondedBy;constraint:OnDelete:SET NULL" json:"responder,omitempty"`
	RespondedAt *time.Time `json:"responded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Feedback) TableName() string {
	return "feedback"
}

// FeedbackFilters narrows the owner's feedback listing.
type FeedbackFilters struct {
	Status string `json:"status,omitempty"` // all, unseen, responded, pending
	Type   string `json:"type,omitempty"`
}
