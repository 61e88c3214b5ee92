package main

import (
	"errors"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/platemate/platemate-backend/config"
	"github.com/platemate/platemate-backend/internal/database"
	"github.com/platemate/platemate-backend/internal/models"
)

// Seeds a development database with a demo owner, a demo customer and two
// restaurants with small menus. Safe to re-run: existing rows are kept.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	owner := seedUser(db, "demo_owner", "owner@platemate.app", "ownerpass123")
	seedUser(db, "demo_customer", "customer@platemate.app", "customerpass123")

	seedRestaurant(db, owner.ID, models.Restaurant{
		Name:        "Spice Route",
		Description: "Authentic North Indian kitchen",
		Location:    "Mumbai",
		Cuisine:     "indian",
		AvgPrice:    350,
	}, []models.FoodItem{
		{Name: "Butter Chicken", Price: 320, IsSpecial: true},
		{Name: "Dal Makhani", Price: 220, IsVeg: true},
		{Name: "Garlic Naan", Price: 60, IsVeg: true},
	})
	seedRestaurant(db, owner.ID, models.Restaurant{
		Name:        "Wok Stories",
		Description: "Street-style Asian bowls",
		Location:    "Pune",
		Cuisine:     "chinese",
		AvgPrice:    280,
	}, []models.FoodItem{
		{Name: "Hakka Noodles", Price: 180, IsVeg: true},
		{Name: "Chilli Chicken", Price: 260},
	})

	log.Println("Seed data applied")
}

func seedUser(db *gorm.DB, username, email, password string) *models.User {
	var user models.User
	err := db.Where("username = ?", username).First(&user).Error
	if err == nil {
		return &user
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up user %s: %v", username, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}
	user = models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}
	if err := db.Create(&user).Error; err != nil {
		log.Fatalf("Failed to create user %s: %v", username, err)
	}
	if err := db.Create(&models.UserProfile{UserID: user.ID}).Error; err != nil {
		log.Fatalf("Failed to create profile for %s: %v", username, err)
	}
	log.Printf("Created user %s", username)
	return &user
}

func seedRestaurant(db *gorm.DB, ownerID uint, restaurant models.Restaurant, items []models.FoodItem) {
	var existing models.Restaurant
	err := db.Where("name = ?", restaurant.Name).First(&existing).Error
	if err == nil {
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Fatalf("Failed to look up restaurant %s: %v", restaurant.Name, err)
	}

	restaurant.OwnerID = &ownerID
	restaurant.MenuItems = items
	if err := db.Create(&restaurant).Error; err != nil {
		log.Fatalf("Failed to create restaurant %s: %v", restaurant.Name, err)
	}
	log.Printf("Created restaurant %s with %d menu items", restaurant.Name, len(items))
}
