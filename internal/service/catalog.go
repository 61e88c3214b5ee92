package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/platemate/platemate-backend/internal/models"
	"github.com/platemate/platemate-backend/internal/types"
)

const (
	restaurantsPageSize = 6
	menuPageSize        = 4
)

// RestaurantSummary is a restaurant annotated with its review aggregates.
type RestaurantSummary struct {
	models.Restaurant
	AvgRating   float64 `json:"avg_rating"`
	ReviewCount int64   `json:"review_count"`
}

// RestaurantPage is one page of the restaurant listing.
type RestaurantPage struct {
	Restaurants []RestaurantSummary `json:"restaurants"`
	Page        int                 `json:"page"`
	TotalPages  int                 `json:"total_pages"`
	Total       int64               `json:"total"`
}

// RestaurantFilters narrows the restaurant listing. MaxPrice arrives as the
// raw query value: an unparsable price means "no price filter", not an error.
type RestaurantFilters struct {
	Query    string
	Cuisine  string
	Location string
	MaxPrice string
	Page     int
}

// MenuFilters narrows a restaurant's menu. Veg is "", "veg" or "nonveg".
type MenuFilters struct {
	Search   string
	MaxPrice string
	Veg      string
	Page     int
}

// MenuPage is one page of a restaurant's menu.
type MenuPage struct {
	Items      []models.FoodItem `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"total_pages"`
	Total      int64             `json:"total"`

	// Ids of items that crossed the popular-today sales threshold, filled
	// in by the handler so the frontend can badge them.
	PopularToday []uint `json:"popular_today,omitempty"`
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListRestaurants returns restaurants matching the filters, ordered by name,
// each annotated with average rating and review count.
func (s *CatalogService) ListRestaurants(ctx context.Context, filters RestaurantFilters) (*RestaurantPage, error) {
	page := filters.Page
	if page < 1 {
		page = 1
	}

	base := s.db.WithContext(ctx).Model(&models.Restaurant{})
	if q := strings.TrimSpace(filters.Query); q != "" {
		like := "%" + strings.ToLower(q) + "%"
		base = base.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	if cuisine := strings.TrimSpace(filters.Cuisine); cuisine != "" {
		base = base.Where("LOWER(cuisine) LIKE ?", "%"+strings.ToLower(cuisine)+"%")
	}
	if location := strings.TrimSpace(filters.Location); location != "" {
		base = base.Where("LOWER(location) LIKE ?", "%"+strings.ToLower(location)+"%")
	}
	if raw := strings.TrimSpace(filters.MaxPrice); raw != "" {
		if maxPrice, err := strconv.ParseFloat(raw, 64); err == nil {
			base = base.Where("avg_price <= ?", maxPrice)
		} else {
			log.Printf("ignoring invalid price filter %q", raw)
		}
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count restaurants: %w", err)
	}

	var summaries []RestaurantSummary
	err := base.
		Select("restaurants.*, COALESCE(AVG(reviews.rating), 0) AS avg_rating, COUNT(reviews.id) AS review_count").
		Joins("LEFT JOIN reviews ON reviews.restaurant_id = restaurants.id").
		Group("restaurants.id").
		Order("restaurants.name").
		Offset((page - 1) * restaurantsPageSize).Limit(restaurantsPageSize).
		Find(&summaries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}

	return &RestaurantPage{
		Restaurants: summaries,
		Page:        page,
		TotalPages:  totalPages(total, restaurantsPageSize),
		Total:       total,
	}, nil
}

// GetRestaurant returns a single restaurant or ErrNotFound.
func (s *CatalogService) GetRestaurant(ctx context.Context, restaurantID uint) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).First(&restaurant, "id = ?", restaurantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}
	return &restaurant, nil
}

// Menu returns one page of a restaurant's menu. Specials sort first, then
// items with an active deal, then everything else, by id within each group.
func (s *CatalogService) Menu(ctx context.Context, restaurantID uint, filters MenuFilters) (*MenuPage, error) {
	if _, err := s.GetRestaurant(ctx, restaurantID); err != nil {
		return nil, err
	}
	page := filters.Page
	if page < 1 {
		page = 1
	}

	q := s.db.WithContext(ctx).Model(&models.FoodItem{}).Where("restaurant_id = ?", restaurantID)
	if search := strings.TrimSpace(filters.Search); search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if raw := strings.TrimSpace(filters.MaxPrice); raw != "" {
		if maxPrice, err := strconv.ParseFloat(raw, 64); err == nil {
			q = q.Where("price <= ?", maxPrice)
		} else {
			log.Printf("ignoring invalid price filter %q", raw)
		}
	}
	switch filters.Veg {
	case "veg":
		q = q.Where("is_veg = ?", true)
	case "nonveg":
		q = q.Where("is_veg = ?", false)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count menu items: %w", err)
	}

	var items []models.FoodItem
	err := q.
		Order("CASE WHEN is_special THEN 0 WHEN deal_active THEN 1 ELSE 2 END, id").
		Offset((page - 1) * menuPageSize).Limit(menuPageSize).
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list menu items: %w", err)
	}

	return &MenuPage{
		Items:      items,
		Page:       page,
		TotalPages: totalPages(total, menuPageSize),
		Total:      total,
	}, nil
}

// RegisterRestaurant creates a restaurant owned by the given user.
func (s *CatalogService) RegisterRestaurant(ctx context.Context, ownerID uint, req *types.RestaurantRequest) (*models.Restaurant, error) {
	restaurant := &models.Restaurant{
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     &ownerID,
		Location:    req.Location,
		Cuisine:     req.Cuisine,
		AvgPrice:    req.AvgPrice,
	}
	if err := s.db.WithContext(ctx).Create(restaurant).Error; err != nil {
		return nil, fmt.Errorf("failed to register restaurant: %w", err)
	}
	return restaurant, nil
}

// UpdateRestaurant updates a restaurant's profile. Owner only; non-owners
// see ErrNotFound.
func (s *CatalogService) UpdateRestaurant(ctx context.Context, ownerID, restaurantID uint, req *types.RestaurantRequest) (*models.Restaurant, error) {
	if err := requireOwnedRestaurant(ctx, s.db, ownerID, restaurantID); err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"location":    req.Location,
		"cuisine":     req.Cuisine,
		"avg_price":   req.AvgPrice,
	}
	if err := s.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("id = ?", restaurantID).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update restaurant: %w", err)
	}
	return s.GetRestaurant(ctx, restaurantID)
}

// SetRestaurantPhoto stores the uploaded photo URL. Owner only.
func (s *CatalogService) SetRestaurantPhoto(ctx context.Context, ownerID, restaurantID uint, url string) error {
	if err := requireOwnedRestaurant(ctx, s.db, ownerID, restaurantID); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&models.Restaurant{}).
		Where("id = ?", restaurantID).Update("photo_url", url).Error
}

// AddFoodItem adds a menu item to an owned restaurant. Non-owners see
// ErrNotFound, matching the dashboard's information hiding.
func (s *CatalogService) AddFoodItem(ctx context.Context, ownerID, restaurantID uint, req *types.FoodItemRequest) (*models.FoodItem, error) {
	if err := requireOwnedRestaurant(ctx, s.db, ownerID, restaurantID); err != nil {
		return nil, err
	}
	item := &models.FoodItem{
		RestaurantID: restaurantID,
		Name:         req.Name,
		Description:  req.Description,
		Price:        req.Price,
		IsVeg:        req.IsVeg,
		IsSpecial:    req.IsSpecial,
		DealPrice:    req.DealPrice,
		DealActive:   req.DealActive,
	}
	if err := s.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("failed to add food item: %w", err)
	}
	return item, nil
}

// UpdateFoodItem edits a menu item. Editing someone else's item is
// ErrForbidden, not ErrNotFound: the item id was already public on the menu.
func (s *CatalogService) UpdateFoodItem(ctx context.Context, ownerID, foodID uint, req *types.FoodItemRequest) (*models.FoodItem, error) {
	item, err := s.loadOwnedItem(ctx, ownerID, foodID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"name":        req.Name,
		"description": req.Description,
		"price":       req.Price,
		"is_veg":      req.IsVeg,
		"is_special":  req.IsSpecial,
		"deal_price":  req.DealPrice,
		"deal_active": req.DealActive,
	}
	if err := s.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update food item: %w", err)
	}
	return item, nil
}

// DeleteFoodItem removes a menu item together with the order lines that
// reference it.
func (s *CatalogService) DeleteFoodItem(ctx context.Context, ownerID, foodID uint) error {
	item, err := s.loadOwnedItem(ctx, ownerID, foodID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("food_item_id = ?", item.ID).Delete(&models.OrderItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(item).Error
	})
}

// SetFoodImage stores the uploaded image URL for a menu item.
func (s *CatalogService) SetFoodImage(ctx context.Context, ownerID, foodID uint, url string) error {
	item, err := s.loadOwnedItem(ctx, ownerID, foodID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(item).Update("image_url", url).Error
}

func (s *CatalogService) loadOwnedItem(ctx context.Context, ownerID, foodID uint) (*models.FoodItem, error) {
	var item models.FoodItem
	err := s.db.WithContext(ctx).Preload("Restaurant").First(&item, "id = ?", foodID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load food item: %w", err)
	}
	if !item.Restaurant.IsOwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return &item, nil
}
