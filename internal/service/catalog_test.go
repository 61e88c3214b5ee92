package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platemate/platemate-backend/internal/models"
	"github.com/platemate/platemate-backend/internal/types"
)

func TestListRestaurantsPagination(t *testing.T) {
	db := setupDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	owner := createUser(t, db, "cat_owner")
	for i := 0; i < 8; i++ {
		createRestaurant(t, db, owner.ID, fmt.Sprintf("Restaurant %02d", i))
	}

	page, err := svc.ListRestaurants(ctx, RestaurantFilters{Page: 1})
	require.NoError(t, err)
	assert.Len(t, page.Restaurants, 6)
	assert.Equal(t, int64(8), page.Total)
	assert.Equal(t, 2, page.TotalPages)

	page2, err := svc.ListRestaurants(ctx, RestaurantFilters{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Restaurants, 2)

	// Ordered by name.
	assert.Equal(t, "Restaurant 00", page.Restaurants[0].Name)
}

func TestListRestaurantsFilters(t *testing.T) {
	db := setupDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	owner := createUser(t, db, "filter_owner")
	cheap := createRestaurant(t, db, owner.ID, "Cheap Eats")
	require.NoError(t, db.Model(cheap).Updates(map[string]interface{}{
		"cuisine": "mexican", "location": "Austin", "avg_price": 8.0,
	}).Error)
	posh := createRestaurant(t, db, owner.ID, "Posh Plates")
	require.NoError(t, db.Model(posh).Updates(map[string]interface{}{
		"cuisine": "french", "location": "Paris", "avg_price": 80.0,
	}).Error)

	byCuisine, err := svc.ListRestaurants(ctx, RestaurantFilters{Cuisine: "MEX"})
	require.NoError(t, err)
	require.Len(t, byCuisine.Restaurants, 1)
	assert.Equal(t, "Cheap Eats", byCuisine.Restaurants[0].Name)

	byPrice, err := svc.ListRestaurants(ctx, RestaurantFilters{MaxPrice: "10"})
	require.NoError(t, err)
	require.Len(t, byPrice.Restaurants, 1)
	assert.Equal(t, "Cheap Eats", byPrice.Restaurants[0].Name)

	byQuery, err := svc.ListRestaurants(ctx, RestaurantFilters{Query: "posh"})
	require.NoError(t, err)
	require.Len(t, byQuery.Restaurants, 1)
	assert.Equal(t, "Posh Plates", byQuery.Restaurants[0].Name)
}

func TestListRestaurantsIgnoresBadPriceFilter(t *testing.T) {
	db := setupDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	owner := createUser(t, db, "badprice_owner")
	createRestaurant(t, db, owner.ID, "Unfiltered")

	// Garbage max_price is treated as no filter at all.
	page, err := svc.ListRestaurants(ctx, RestaurantFilters{MaxPrice: "cheap"})
	require.NoError(t, err)
	assert.Len(t, page.Restaurants, 1)
}

func TestListRestaurantsRatingSummary(t *testing.T) {
	db := setupDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	owner := createUser(t, db, "rating_owner")
	reviewer := createUser(t, db, "rating_reviewer")
	restaurant := createRestaurant(t, db, owner.ID, "Rated Room")

	require.NoError(t, db.Create(&models.Review{UserID: reviewer.ID, RestaurantID: restaurant.ID, Rating: 4, Visible: true}).Error)
	require.NoError(t, db.Create(&models.Review{UserID: reviewer.ID, RestaurantID: restaurant.ID, Rating: 2, Visible: true}).Error)

	page, err := svc.ListRestaurants(ctx, RestaurantFilters{})
	require.NoError(t, err)
	require.Len(t, page.Restaurants, 1)
	assert.InDelta(t, 3.0, page.Restaurants[0].AvgRating, 0.001)
	assert.Equal(t, int64(2), page.Restaurants[0].ReviewCount)
}

func TestMenuOrderingAndPagination(t *testing.T) {
	db := setupDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	owner := createUser(t, db, "menu_owner")
	restaurant := createRestaurant(t, db, owner.ID, "Menu Manor")

	plain1 := createFoodItem(t, db, restaurant.ID, "Plain One", 10)
	deal := createFoodItem(t, db, restaurant.ID, "Deal Dish", 10)
	special := createFoodItem(t, db, restaurant.ID, "Special Dish", 10)
	plain2 := createFoodItem(t, db, restaurant.ID, "Plain Two", 10)

	require.NoError(t, db.Model(deal).Updates(map[string]interface{}{"deal_price": 8.0, "deal_active": true}).Error)
	require.NoError(t, db.Model(special).Update("is_special", true).Error)

	page, err := svc.Menu(ctx, restaurant.ID, MenuFilters{Page: 1})
	require.NoError(t, err)
	require.Len(t, page.Items, 4)
	assert.Equal(t, special.ID, page.Items[0].ID)
	assert.Equal(t, deal.ID, page.Items[1].ID)
	assert.Equal(t, plain1.ID, page.Items[2].ID)
	assert.Equal(t, plain2.ID, page.Items[3].ID)

	// Page size is 4; a fifth item spills onto page two.
	createFoodItem(t, db, restaurant.ID, "Plain Three", 10)
	page2, err := svc.Menu(ctx, restaurant.ID, MenuFilters{Page: 2})
	require.NoError(t, err)
	assert.Len(t, page2.Items, 1)
	assert.Equal(t, 2, page2.TotalPages)
}

func TestMenuVegFilter(t *testing.T) {
	db := setupDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	owner := createUser(t, db, "veg_owner")
	restaurant := createRestaurant(t, db, owner.ID, "Veg Villa")
	veg := createFoodItem(t, db, restaurant.ID, "Paneer Tikka", 9)
	require.NoError(t, db.Model(veg).Update("is_veg", true).Error)
	createFoodItem(t, db, restaurant.ID, "Chicken Tikka", 11)

	page, err := svc.Menu(ctx, restaurant.ID, MenuFilters{Veg: "veg"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, veg.ID, page.Items[0].ID)

	page, err = svc.Menu(ctx, restaurant.ID, MenuFilters{Veg: "nonveg"})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Chicken Tikka", page.Items[0].Name)
}

func TestMenuUnknownRestaurant(t *testing.T) {
	db := setupDB(t)
	svc := NewCatalogService(db)

	_, err := svc.Menu(context.Background(), 404, MenuFilters{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRestaurantOwnerGating(t *testing.T) {
	db := setupDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	owner := createUser(t, db, "gating_owner")
	outsider := createUser(t, db, "gating_outsider")
	restaurant := createRestaurant(t, db, owner.ID, "Gated Garden")

	req := &types.RestaurantRequest{Name: "Renamed", AvgPrice: 12}

	// Restaurant-scoped writes hide behind ErrNotFound for non-owners.
	_, err := svc.UpdateRestaurant(ctx, outsider.ID, restaurant.ID, req)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.AddFoodItem(ctx, outsider.ID, restaurant.ID, &types.FoodItemRequest{Name: "Sneaky", Price: 1})
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := svc.UpdateRestaurant(ctx, owner.ID, restaurant.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Name)
}

func TestFoodItemOwnerGating(t *testing.T) {
	db := setupDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	owner := createUser(t, db, "item_owner")
	outsider := createUser(t, db, "item_outsider")
	restaurant := createRestaurant(t, db, owner.ID, "Item Inn")
	item := createFoodItem(t, db, restaurant.ID, "Guarded Dish", 10)

	req := &types.FoodItemRequest{Name: "Hacked", Price: 0}

	// Item-scoped writes are ErrForbidden: the id was already public.
	_, err := svc.UpdateFoodItem(ctx, outsider.ID, item.ID, req)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, svc.DeleteFoodItem(ctx, outsider.ID, item.ID), ErrForbidden)

	_, err = svc.UpdateFoodItem(ctx, owner.ID, item.ID, &types.FoodItemRequest{Name: "Refined Dish", Price: 11})
	require.NoError(t, err)

	var reloaded models.FoodItem
	require.NoError(t, db.First(&reloaded, item.ID).Error)
	assert.Equal(t, "Refined Dish", reloaded.Name)
	assert.InDelta(t, 11, reloaded.Price, 0.001)
}

func TestDeleteFoodItemRemovesOrderLines(t *testing.T) {
	db := setupDB(t)
	svc := NewCatalogService(db)
	ctx := context.Background()

	owner := createUser(t, db, "delitem_owner")
	customer := createUser(t, db, "delitem_customer")
	restaurant := createRestaurant(t, db, owner.ID, "Delete Diner")
	item := createFoodItem(t, db, restaurant.ID, "Doomed Dish", 10)

	order := createOrder(t, db, customer.ID, restaurant.ID, 10, models.StatusCompleted)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, FoodItemID: item.ID, Quantity: 1}).Error)

	require.NoError(t, svc.DeleteFoodItem(ctx, owner.ID, item.ID))

	var itemCount int64
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, itemCount)

	// The order row and its historical total survive.
	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.InDelta(t, 10, reloaded.TotalPrice, 0.001)
}
