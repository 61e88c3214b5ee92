package service

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/platemate/platemate-backend/internal/models"
	"github.com/platemate/platemate-backend/internal/testhelpers"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testhelpers.SetupTestDB(t)
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: string(hash),
		Role:         models.RoleCustomer,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

func createAdmin(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := createUser(t, db, username)
	if err := db.Model(user).Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("failed to promote user: %v", err)
	}
	user.Role = models.RoleAdmin
	return user
}

func createRestaurant(t *testing.T, db *gorm.DB, ownerID uint, name string) *models.Restaurant {
	t.Helper()
	restaurant := &models.Restaurant{
		Name:     name,
		OwnerID:  &ownerID,
		Location: "Springfield",
		Cuisine:  "italian",
		AvgPrice: 20,
	}
	if err := db.Create(restaurant).Error; err != nil {
		t.Fatalf("failed to create restaurant: %v", err)
	}
	return restaurant
}

func createFoodItem(t *testing.T, db *gorm.DB, restaurantID uint, name string, price float64) *models.FoodItem {
	t.Helper()
	item := &models.FoodItem{
		RestaurantID: restaurantID,
		Name:         name,
		Price:        price,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("failed to create food item: %v", err)
	}
	return item
}

func createOrder(t *testing.T, db *gorm.DB, customerID, restaurantID uint, total float64, status models.OrderStatus) *models.Order {
	t.Helper()
	order := &models.Order{
		CustomerID:   customerID,
		RestaurantID: restaurantID,
		TotalPrice:   total,
		Status:       status,
	}
	if err := db.Create(order).Error; err != nil {
		t.Fatalf("failed to create order: %v", err)
	}
	return order
}
