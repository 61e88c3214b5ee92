package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/platemate/platemate-backend/internal/models"
)

// Cart actions accepted by UpdateItem.
const (
	CartActionIncrease = "increase"
	CartActionDecrease = "decrease"
	CartActionRemove   = "remove"
)

// CartStore persists the ephemeral per-(session, restaurant) quantity map.
// It is deliberately not backed by the relational store: carts live and die
// with the session.
type CartStore interface {
	Get(ctx context.Context, sessionID string, restaurantID uint) (map[uint]int, error)
	Put(ctx context.Context, sessionID string, restaurantID uint, cart map[uint]int) error
	Delete(ctx context.Context, sessionID string, restaurantID uint) error
}

// RedisCartStore keeps each cart in a redis hash (food item id -> quantity)
// with a sliding TTL, so abandoned carts expire with the session.
type RedisCartStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCartStore(client *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{client: client, ttl: ttl}
}

func cartKey(sessionID string, restaurantID uint) string {
	return fmt.Sprintf("cart:%s:%d", sessionID, restaurantID)
}

func (s *RedisCartStore) Get(ctx context.Context, sessionID string, restaurantID uint) (map[uint]int, error) {
	fields, err := s.client.HGetAll(ctx, cartKey(sessionID, restaurantID)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cart: %w", err)
	}
	cart := make(map[uint]int, len(fields))
	for field, value := range fields {
		id, err := strconv.ParseUint(field, 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(value)
		if err != nil || qty < 1 {
			continue
		}
		cart[uint(id)] = qty
	}
	return cart, nil
}

func (s *RedisCartStore) Put(ctx context.Context, sessionID string, restaurantID uint, cart map[uint]int) error {
	key := cartKey(sessionID, restaurantID)
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	if len(cart) > 0 {
		fields := make(map[string]interface{}, len(cart))
		for id, qty := range cart {
			fields[strconv.FormatUint(uint64(id), 10)] = qty
		}
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, s.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to write cart: %w", err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, sessionID string, restaurantID uint) error {
	if err := s.client.Del(ctx, cartKey(sessionID, restaurantID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// CartLine is one cart entry resolved against the live catalog.
type CartLine struct {
	Item     models.FoodItem `json:"item"`
	Quantity int             `json:"quantity"`
	Subtotal float64         `json:"subtotal"`
}

// CartView is the resolved cart with its grand total.
type CartView struct {
	Lines []CartLine `json:"lines"`
	Total float64    `json:"total"`
}

type CartService struct {
	db    *gorm.DB
	store CartStore
}

func NewCartService(db *gorm.DB, store CartStore) *CartService {
	return &CartService{db: db, store: store}
}

// AddItem increments the stored quantity for a food item. Quantities below
// one are floored to one.
func (s *CartService) AddItem(ctx context.Context, sessionID string, restaurantID, foodID uint, qty int) error {
	if _, err := s.fetchItem(ctx, restaurantID, foodID); err != nil {
		return err
	}
	if qty < 1 {
		qty = 1
	}
	cart, err := s.store.Get(ctx, sessionID, restaurantID)
	if err != nil {
		return err
	}
	cart[foodID] += qty
	return s.store.Put(ctx, sessionID, restaurantID, cart)
}

// UpdateItem applies one of the increase/decrease/remove actions. Decreasing
// a quantity-1 entry removes it entirely.
func (s *CartService) UpdateItem(ctx context.Context, sessionID string, restaurantID, foodID uint, action string) error {
	if _, err := s.fetchItem(ctx, restaurantID, foodID); err != nil {
		return err
	}
	cart, err := s.store.Get(ctx, sessionID, restaurantID)
	if err != nil {
		return err
	}
	switch action {
	case CartActionIncrease:
		cart[foodID]++
	case CartActionDecrease:
		if cart[foodID] > 1 {
			cart[foodID]--
		} else {
			delete(cart, foodID)
		}
	case CartActionRemove:
		delete(cart, foodID)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidCartAction, action)
	}
	return s.store.Put(ctx, sessionID, restaurantID, cart)
}

// Clear discards the whole per-restaurant cart.
func (s *CartService) Clear(ctx context.Context, sessionID string, restaurantID uint) error {
	return s.store.Delete(ctx, sessionID, restaurantID)
}

// View resolves the cart against the current catalog. Entries whose item has
// been deleted since they were added are silently dropped, never an error.
// Subtotals use the deal-aware effective price.
func (s *CartService) View(ctx context.Context, sessionID string, restaurantID uint) (*CartView, error) {
	cart, err := s.store.Get(ctx, sessionID, restaurantID)
	if err != nil {
		return nil, err
	}
	view := &CartView{Lines: []CartLine{}}
	if len(cart) == 0 {
		return view, nil
	}

	ids := make([]uint, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var items []models.FoodItem
	if err := s.db.WithContext(ctx).
		Where("id IN ? AND restaurant_id = ?", ids, restaurantID).
		Order("id").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to resolve cart items: %w", err)
	}

	for _, item := range items {
		qty := cart[item.ID]
		subtotal := item.EffectivePrice() * float64(qty)
		view.Lines = append(view.Lines, CartLine{Item: item, Quantity: qty, Subtotal: subtotal})
		view.Total += subtotal
	}
	return view, nil
}

func (s *CartService) fetchItem(ctx context.Context, restaurantID, foodID uint) (*models.FoodItem, error) {
	var item models.FoodItem
	err := s.db.WithContext(ctx).
		First(&item, "id = ? AND restaurant_id = ?", foodID, restaurantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load food item: %w", err)
	}
	return &item, nil
}
