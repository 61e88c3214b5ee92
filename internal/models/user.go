package models

import (
	"time"
)

// UserRole distinguishes customers from platform admins. Restaurant owners
// are ordinary users that own at least one restaurant.
type UserRole string

const (
	RoleCustomer UserRole = "customer"
	RoleAdmin    UserRole = "admin"
)

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Role         UserRole  `gorm:"not null;default:'customer'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user has the superuser-equivalent role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Diet preference values accepted on a user profile.
const (
	DietAny    = "any"
	DietVeg    = "veg"
	DietNonVeg = "nonveg"
	DietVegan  = "vegan"
)

type UserProfile struct {
	ID                  uint         `gorm:"primarykey" json:"id"`
	UserID              uint         `gorm:"uniqueIndex;not null" json:"user_id"`
	User                User         `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Phone               string       `json:"phone"`
	DietPreference      string       `gorm:"default:'any'" json:"diet_preference"`
	CuisinePreference   string       `json:"cuisine_preference"`
	FavoriteRestaurants []Restaurant `gorm:"many2many:profile_favorite_restaurants" json:"favorite_restaurants,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
