package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platemate/platemate-backend/internal/models"
)

const ordersPageSize = 6

// PlacementLock serializes order placement per (session, restaurant) so two
// concurrent submissions of the same cart cannot both turn into orders.
type PlacementLock interface {
	Acquire(ctx context.Context, sessionID string, restaurantID uint) (bool, error)
	Release(ctx context.Context, sessionID string, restaurantID uint) error
}

// RedisPlacementLock implements PlacementLock with SETNX and a short TTL so
// a crashed request cannot wedge the cart forever.
type RedisPlacementLock struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisPlacementLock(client *redis.Client, ttl time.Duration) *RedisPlacementLock {
	return &RedisPlacementLock{client: client, ttl: ttl}
}

func placementLockKey(sessionID string, restaurantID uint) string {
	return fmt.Sprintf("order_lock:%s:%d", sessionID, restaurantID)
}

func (l *RedisPlacementLock) Acquire(ctx context.Context, sessionID string, restaurantID uint) (bool, error) {
	ok, err := l.client.SetNX(ctx, placementLockKey(sessionID, restaurantID), 1, l.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire placement lock: %w", err)
	}
	return ok, nil
}

func (l *RedisPlacementLock) Release(ctx context.Context, sessionID string, restaurantID uint) error {
	return l.client.Del(ctx, placementLockKey(sessionID, restaurantID)).Err()
}

// OrderPage is one page of a customer's order history.
type OrderPage struct {
	Orders     []models.Order `json:"orders"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
	Total      int64          `json:"total"`
}

type OrderService struct {
	db    *gorm.DB
	store CartStore
	lock  PlacementLock
	// useEffectivePrice switches order totals from base price to the
	// deal-aware price the cart view shows. Off by default to match the
	// historical billing behavior.
	useEffectivePrice bool
}

func NewOrderService(db *gorm.DB, store CartStore, lock PlacementLock, useEffectivePrice bool) *OrderService {
	return &OrderService{db: db, store: store, lock: lock, useEffectivePrice: useEffectivePrice}
}

// PlaceOrder converts the session's cart for a restaurant into one Order
// plus its OrderItems, atomically. The cart is cleared only after the
// transaction commits.
func (s *OrderService) PlaceOrder(ctx context.Context, customerID uint, sessionID string, restaurantID uint) (*models.Order, error) {
	ok, err := s.lock.Acquire(ctx, sessionID, restaurantID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrOrderInProgress
	}
	defer func() {
		if err := s.lock.Release(ctx, sessionID, restaurantID); err != nil {
			log.Printf("failed to release placement lock for session %s: %v", sessionID, err)
		}
	}()

	cart, err := s.store.Get(ctx, sessionID, restaurantID)
	if err != nil {
		return nil, err
	}
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	ids := make([]uint, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var order *models.Order
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var restaurant models.Restaurant
		if err := tx.First(&restaurant, "id = ?", restaurantID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var total float64
		items := make([]models.OrderItem, 0, len(ids))
		for _, id := range ids {
			var food models.FoodItem
			if err := tx.First(&food, "id = ? AND restaurant_id = ?", id, restaurantID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: food item %d", ErrNotFound, id)
				}
				return err
			}
			price := food.Price
			if s.useEffectivePrice {
				price = food.EffectivePrice()
			}
			qty := cart[id]
			total += price * float64(qty)
			items = append(items, models.OrderItem{FoodItemID: food.ID, Quantity: qty})
		}

		o := &models.Order{
			CustomerID:   customerID,
			RestaurantID: restaurantID,
			TotalPrice:   total,
			Status:       models.StatusPending,
		}
		if err := tx.Create(o).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range items {
			items[i].OrderID = o.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Cart state is advisory once the order exists; a failed clear just
	// leaves a stale cart behind.
	if err := s.store.Delete(ctx, sessionID, restaurantID); err != nil {
		log.Printf("failed to clear cart after order %d: %v", order.ID, err)
	}
	return order, nil
}

// CancelOrder is the customer-side cancellation, legal only while the order
// is still Pending.
func (s *OrderService) CancelOrder(ctx context.Context, customerID, orderID uint) error {
	var order models.Order
	err := s.db.WithContext(ctx).
		First(&order, "id = ? AND customer_id = ?", orderID, customerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load order: %w", err)
	}
	if !CanTransition(order.Status, models.StatusCancelled, ActorCustomer) {
		return ErrInvalidTransition
	}
	return s.db.WithContext(ctx).Model(&order).
		Update("status", models.StatusCancelled).Error
}

// UpdateStatus is the owner-side transition. Only the restaurant's owner or
// an admin may change an order's status, and only along the transition table.
func (s *OrderService) UpdateStatus(ctx context.Context, actorID, orderID uint, status models.OrderStatus) error {
	order, err := s.loadForOwner(ctx, actorID, orderID)
	if err != nil {
		return err
	}
	if !models.ValidStatus(status) || !CanTransition(order.Status, status, ActorOwner) {
		return ErrInvalidTransition
	}
	return s.db.WithContext(ctx).Model(order).Update("status", status).Error
}

// DeleteOrder removes an order and its line items. Owner or admin only.
func (s *OrderService) DeleteOrder(ctx context.Context, actorID, orderID uint) error {
	order, err := s.loadForOwner(ctx, actorID, orderID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", order.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(order).Error
	})
}

// ListCustomerOrders returns the customer's order history, newest first,
// optionally filtered by a free-text search over order id, restaurant name
// and item name.
func (s *OrderService) ListCustomerOrders(ctx context.Context, customerID uint, search string, page int) (*OrderPage, error) {
	if page < 1 {
		page = 1
	}
	q := s.db.WithContext(ctx).Model(&models.Order{}).Where("customer_id = ?", customerID)

	if search = strings.TrimSpace(search); search != "" {
		like := "%" + strings.ToLower(search) + "%"
		matching := s.db.Model(&models.Order{}).
			Select("orders.id").
			Joins("JOIN restaurants ON restaurants.id = orders.restaurant_id").
			Joins("LEFT JOIN order_items ON order_items.order_id = orders.id").
			Joins("LEFT JOIN food_items ON food_items.id = order_items.food_item_id").
			Where("CAST(orders.id AS TEXT) LIKE ? OR LOWER(restaurants.name) LIKE ? OR LOWER(food_items.name) LIKE ?",
				like, like, like)
		q = q.Where("id IN (?)", matching)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []models.Order
	err := q.Preload("Restaurant").Preload("Items.FoodItem").
		Order("created_at DESC").
		Offset((page - 1) * ordersPageSize).Limit(ordersPageSize).
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return &OrderPage{
		Orders:     orders,
		Page:       page,
		TotalPages: totalPages(total, ordersPageSize),
		Total:      total,
	}, nil
}

// ListRestaurantOrders lists all orders for a restaurant, newest first. It
// returns ErrNotFound rather than ErrForbidden for non-owners so that
// restaurant ids cannot be probed.
func (s *OrderService) ListRestaurantOrders(ctx context.Context, actorID, restaurantID uint) ([]models.Order, error) {
	if err := requireOwnedRestaurant(ctx, s.db, actorID, restaurantID); err != nil {
		return nil, err
	}
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Customer").Preload("Items.FoodItem").
		Where("restaurant_id = ?", restaurantID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurant orders: %w", err)
	}
	return orders, nil
}

// loadForOwner fetches an order and authorizes the actor as the owning
// restaurant's owner or an admin.
func (s *OrderService) loadForOwner(ctx context.Context, actorID, orderID uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Restaurant").First(&order, "id = ?", orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load order: %w", err)
	}

	var actor models.User
	if err := s.db.WithContext(ctx).First(&actor, "id = ?", actorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrForbidden
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	if !order.Restaurant.IsOwnedBy(actorID) && !actor.IsAdmin() {
		return nil, ErrForbidden
	}
	return &order, nil
}

// requireOwnedRestaurant resolves a restaurant scoped to its owner,
// reporting ErrNotFound for both missing and foreign restaurants.
func requireOwnedRestaurant(ctx context.Context, db *gorm.DB, ownerID, restaurantID uint) error {
	var restaurant models.Restaurant
	err := db.WithContext(ctx).
		First(&restaurant, "id = ? AND owner_id = ?", restaurantID, ownerID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load restaurant: %w", err)
	}
	return nil
}

func totalPages(total int64, pageSize int) int {
	pages := int((total + int64(pageSize) - 1) / int64(pageSize))
	if pages < 1 {
		pages = 1
	}
	return pages
}
