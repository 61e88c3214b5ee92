package service

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/platemate/platemate-backend/internal/models"
)

const (
	topListLimit        = 6
	popularTodayMinQty  = 10
)

// SalesPoint is one calendar day's completed-order revenue.
type SalesPoint struct {
	Day   string  `json:"day"`
	Total float64 `json:"total"`
}

// TopItem is a menu item ranked by quantity sold across completed orders.
type TopItem struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// TopCustomer is a customer ranked by total spend across completed orders.
type TopCustomer struct {
	Username string  `json:"username"`
	Total    float64 `json:"total"`
}

// DashboardStats is the owner dashboard payload. Only Completed orders count
// toward revenue; everything is recomputed from the live tables per request.
type DashboardStats struct {
	TotalSales    float64       `json:"total_sales"`
	TotalOrders   int64         `json:"total_orders"`
	PendingOrders int64         `json:"pending_orders"`
	TotalItems    int64         `json:"total_items"`
	SalesByDay    []SalesPoint  `json:"sales_by_day"`
	TopItems      []TopItem     `json:"top_items"`
	TopCustomers  []TopCustomer `json:"top_customers"`
}

type AnalyticsService struct {
	db *gorm.DB
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{db: db}
}

// Dashboard computes the owner dashboard for a restaurant. Non-owners get
// ErrNotFound, never ErrForbidden, so restaurant ids cannot be probed.
func (s *AnalyticsService) Dashboard(ctx context.Context, ownerID, restaurantID uint) (*DashboardStats, error) {
	if err := requireOwnedRestaurant(ctx, s.db, ownerID, restaurantID); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	stats := &DashboardStats{
		SalesByDay:   []SalesPoint{},
		TopItems:     []TopItem{},
		TopCustomers: []TopCustomer{},
	}

	completed := db.Model(&models.Order{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, models.StatusCompleted)

	if err := completed.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_price), 0)").
		Scan(&stats.TotalSales).Error; err != nil {
		return nil, fmt.Errorf("failed to sum sales: %w", err)
	}
	if err := completed.Session(&gorm.Session{}).
		Count(&stats.TotalOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}
	if err := db.Model(&models.Order{}).
		Where("restaurant_id = ? AND status = ?", restaurantID, models.StatusPending).
		Count(&stats.PendingOrders).Error; err != nil {
		return nil, fmt.Errorf("failed to count pending orders: %w", err)
	}
	if err := db.Model(&models.FoodItem{}).
		Where("restaurant_id = ?", restaurantID).
		Count(&stats.TotalItems).Error; err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}

	if err := completed.Session(&gorm.Session{}).
		Select("DATE(created_at) AS day, SUM(total_price) AS total").
		Group("DATE(created_at)").
		Order("day").
		Scan(&stats.SalesByDay).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate sales by day: %w", err)
	}

	if err := db.Model(&models.OrderItem{}).
		Select("food_items.name AS name, SUM(order_items.quantity) AS quantity").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Joins("JOIN food_items ON food_items.id = order_items.food_item_id").
		Where("orders.restaurant_id = ? AND orders.status = ?", restaurantID, models.StatusCompleted).
		Group("food_items.name").
		Order("quantity DESC").
		Limit(topListLimit).
		Scan(&stats.TopItems).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate top items: %w", err)
	}

	if err := db.Model(&models.Order{}).
		Select("users.username AS username, SUM(orders.total_price) AS total").
		Joins("JOIN users ON users.id = orders.customer_id").
		Where("orders.restaurant_id = ? AND orders.status = ?", restaurantID, models.StatusCompleted).
		Group("users.username").
		Order("total DESC").
		Limit(topListLimit).
		Scan(&stats.TopCustomers).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate top customers: %w", err)
	}

	return stats, nil
}

// PopularToday returns ids of items that sold more than popularTodayMinQty
// units today, any order status. Feeds the "popular right now" menu badge.
func (s *AnalyticsService) PopularToday(ctx context.Context, restaurantID uint) ([]uint, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var ids []uint
	err := s.db.WithContext(ctx).Model(&models.OrderItem{}).
		Select("order_items.food_item_id").
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("orders.restaurant_id = ? AND orders.created_at >= ?", restaurantID, dayStart).
		Group("order_items.food_item_id").
		Having("SUM(order_items.quantity) > ?", popularTodayMinQty).
		Scan(&ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute popular items: %w", err)
	}
	return ids, nil
}
