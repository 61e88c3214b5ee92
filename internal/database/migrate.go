package database

import (
	"fmt"

	"github.com/platemate/platemate-backend/internal/models"
	"gorm.io/gorm"
)

// Migrate brings the schema up to date for every model in the application.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.UserProfile{},
		&models.Restaurant{},
		&models.FoodItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.Review{},
		&models.Feedback{},
	); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
