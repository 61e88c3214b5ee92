package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platemate/platemate-backend/internal/models"
	"github.com/platemate/platemate-backend/internal/testhelpers"
)

func TestPlaceOrderEmptyCart(t *testing.T) {
	db := setupDB(t)
	orders := NewOrderService(db, testhelpers.NewMemoryCartStore(), testhelpers.NewMemoryPlacementLock(), false)

	owner := createUser(t, db, "order_owner")
	customer := createUser(t, db, "order_customer")
	restaurant := createRestaurant(t, db, owner.ID, "Order House")

	_, err := orders.PlaceOrder(context.Background(), customer.ID, "sess-empty", restaurant.ID)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestPlaceOrder(t *testing.T) {
	db := setupDB(t)
	store := testhelpers.NewMemoryCartStore()
	orders := NewOrderService(db, store, testhelpers.NewMemoryPlacementLock(), false)
	carts := NewCartService(db, store)
	ctx := context.Background()

	owner := createUser(t, db, "place_owner")
	customer := createUser(t, db, "place_customer")
	restaurant := createRestaurant(t, db, owner.ID, "Place Palace")
	dish := createFoodItem(t, db, restaurant.ID, "Signature Dish", 15.99)

	require.NoError(t, carts.AddItem(ctx, "sess-place", restaurant.ID, dish.ID, 2))

	order, err := orders.PlaceOrder(ctx, customer.ID, "sess-place", restaurant.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, order.Status)
	assert.InDelta(t, 31.98, order.TotalPrice, 0.001)

	var items []models.OrderItem
	require.NoError(t, db.Where("order_id = ?", order.ID).Find(&items).Error)
	require.Len(t, items, 1)
	assert.Equal(t, dish.ID, items[0].FoodItemID)
	assert.Equal(t, 2, items[0].Quantity)

	// The cart is gone once the order exists.
	cart, err := store.Get(ctx, "sess-place", restaurant.ID)
	require.NoError(t, err)
	assert.Empty(t, cart)
}

func TestPlaceOrderUsesBasePriceWhileDealActive(t *testing.T) {
	db := setupDB(t)
	store := testhelpers.NewMemoryCartStore()
	orders := NewOrderService(db, store, testhelpers.NewMemoryPlacementLock(), false)
	carts := NewCartService(db, store)
	ctx := context.Background()

	owner := createUser(t, db, "deal_owner")
	customer := createUser(t, db, "deal_customer")
	restaurant := createRestaurant(t, db, owner.ID, "Deal Depot")
	dish := createFoodItem(t, db, restaurant.ID, "Deal Dish", 20)
	require.NoError(t, db.Model(dish).Updates(map[string]interface{}{
		"deal_price":  12.0,
		"deal_active": true,
	}).Error)

	require.NoError(t, carts.AddItem(ctx, "sess-deal", restaurant.ID, dish.ID, 1))

	order, err := orders.PlaceOrder(ctx, customer.ID, "sess-deal", restaurant.ID)
	require.NoError(t, err)
	assert.InDelta(t, 20, order.TotalPrice, 0.001)
}

func TestPlaceOrderEffectivePriceMode(t *testing.T) {
	db := setupDB(t)
	store := testhelpers.NewMemoryCartStore()
	orders := NewOrderService(db, store, testhelpers.NewMemoryPlacementLock(), true)
	carts := NewCartService(db, store)
	ctx := context.Background()

	owner := createUser(t, db, "eff_owner")
	customer := createUser(t, db, "eff_customer")
	restaurant := createRestaurant(t, db, owner.ID, "Effective Eats")
	dish := createFoodItem(t, db, restaurant.ID, "Effective Dish", 20)
	require.NoError(t, db.Model(dish).Updates(map[string]interface{}{
		"deal_price":  12.0,
		"deal_active": true,
	}).Error)

	require.NoError(t, carts.AddItem(ctx, "sess-eff", restaurant.ID, dish.ID, 1))

	order, err := orders.PlaceOrder(ctx, customer.ID, "sess-eff", restaurant.ID)
	require.NoError(t, err)
	assert.InDelta(t, 12, order.TotalPrice, 0.001)
}

func TestPlaceOrderAtomicOnMissingItem(t *testing.T) {
	db := setupDB(t)
	store := testhelpers.NewMemoryCartStore()
	orders := NewOrderService(db, store, testhelpers.NewMemoryPlacementLock(), false)
	carts := NewCartService(db, store)
	ctx := context.Background()

	owner := createUser(t, db, "atomic_owner")
	customer := createUser(t, db, "atomic_customer")
	restaurant := createRestaurant(t, db, owner.ID, "Atomic Arms")
	keep := createFoodItem(t, db, restaurant.ID, "Still Here", 10)
	gone := createFoodItem(t, db, restaurant.ID, "Removed Since", 10)

	require.NoError(t, carts.AddItem(ctx, "sess-atomic", restaurant.ID, keep.ID, 1))
	require.NoError(t, carts.AddItem(ctx, "sess-atomic", restaurant.ID, gone.ID, 1))
	require.NoError(t, db.Delete(gone).Error)

	_, err := orders.PlaceOrder(ctx, customer.ID, "sess-atomic", restaurant.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Nothing committed.
	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)

	// And the cart survives for the customer to fix up.
	cart, err := store.Get(ctx, "sess-atomic", restaurant.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, cart)
}

func TestPlaceOrderHeldLock(t *testing.T) {
	db := setupDB(t)
	store := testhelpers.NewMemoryCartStore()
	lock := testhelpers.NewMemoryPlacementLock()
	orders := NewOrderService(db, store, lock, false)
	ctx := context.Background()

	owner := createUser(t, db, "lock_owner")
	customer := createUser(t, db, "lock_customer")
	restaurant := createRestaurant(t, db, owner.ID, "Lock Lounge")

	held, err := lock.Acquire(ctx, "sess-lock", restaurant.ID)
	require.NoError(t, err)
	require.True(t, held)

	_, err = orders.PlaceOrder(ctx, customer.ID, "sess-lock", restaurant.ID)
	assert.ErrorIs(t, err, ErrOrderInProgress)
}

func TestCancelOrder(t *testing.T) {
	db := setupDB(t)
	orders := NewOrderService(db, testhelpers.NewMemoryCartStore(), testhelpers.NewMemoryPlacementLock(), false)
	ctx := context.Background()

	owner := createUser(t, db, "cancel_owner")
	customer := createUser(t, db, "cancel_customer")
	stranger := createUser(t, db, "cancel_stranger")
	restaurant := createRestaurant(t, db, owner.ID, "Cancel Canteen")

	pending := createOrder(t, db, customer.ID, restaurant.ID, 10, models.StatusPending)
	preparing := createOrder(t, db, customer.ID, restaurant.ID, 10, models.StatusPreparing)

	// Another customer cannot even see the order.
	assert.ErrorIs(t, orders.CancelOrder(ctx, stranger.ID, pending.ID), ErrNotFound)

	require.NoError(t, orders.CancelOrder(ctx, customer.ID, pending.ID))
	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, pending.ID).Error)
	assert.Equal(t, models.StatusCancelled, reloaded.Status)

	// Once the kitchen started, the customer is locked out.
	assert.ErrorIs(t, orders.CancelOrder(ctx, customer.ID, preparing.ID), ErrInvalidTransition)
}

func TestUpdateStatus(t *testing.T) {
	db := setupDB(t)
	orders := NewOrderService(db, testhelpers.NewMemoryCartStore(), testhelpers.NewMemoryPlacementLock(), false)
	ctx := context.Background()

	owner := createUser(t, db, "status_owner")
	customer := createUser(t, db, "status_customer")
	intruder := createUser(t, db, "status_intruder")
	admin := createAdmin(t, db, "status_admin")
	restaurant := createRestaurant(t, db, owner.ID, "Status Station")

	order := createOrder(t, db, customer.ID, restaurant.ID, 25, models.StatusPending)

	assert.ErrorIs(t, orders.UpdateStatus(ctx, intruder.ID, order.ID, models.StatusPreparing), ErrForbidden)
	assert.ErrorIs(t, orders.UpdateStatus(ctx, owner.ID, order.ID, "Shipped"), ErrInvalidTransition)

	require.NoError(t, orders.UpdateStatus(ctx, owner.ID, order.ID, models.StatusPreparing))
	require.NoError(t, orders.UpdateStatus(ctx, admin.ID, order.ID, models.StatusCompleted))

	var reloaded models.Order
	require.NoError(t, db.First(&reloaded, order.ID).Error)
	assert.Equal(t, models.StatusCompleted, reloaded.Status)

	// Completed is terminal.
	assert.ErrorIs(t, orders.UpdateStatus(ctx, owner.ID, order.ID, models.StatusPending), ErrInvalidTransition)
}

func TestDeleteOrder(t *testing.T) {
	db := setupDB(t)
	orders := NewOrderService(db, testhelpers.NewMemoryCartStore(), testhelpers.NewMemoryPlacementLock(), false)
	ctx := context.Background()

	owner := createUser(t, db, "delete_owner")
	customer := createUser(t, db, "delete_customer")
	restaurant := createRestaurant(t, db, owner.ID, "Delete Dhaba")
	dish := createFoodItem(t, db, restaurant.ID, "Dish", 10)

	order := createOrder(t, db, customer.ID, restaurant.ID, 10, models.StatusCancelled)
	require.NoError(t, db.Create(&models.OrderItem{OrderID: order.ID, FoodItemID: dish.ID, Quantity: 1}).Error)

	// The customer cannot delete, only the owner can.
	assert.ErrorIs(t, orders.DeleteOrder(ctx, customer.ID, order.ID), ErrForbidden)

	require.NoError(t, orders.DeleteOrder(ctx, owner.ID, order.ID))
	var orderCount, itemCount int64
	require.NoError(t, db.Model(&models.Order{}).Count(&orderCount).Error)
	require.NoError(t, db.Model(&models.OrderItem{}).Count(&itemCount).Error)
	assert.Zero(t, orderCount)
	assert.Zero(t, itemCount)
}

func TestListCustomerOrders(t *testing.T) {
	db := setupDB(t)
	orders := NewOrderService(db, testhelpers.NewMemoryCartStore(), testhelpers.NewMemoryPlacementLock(), false)
	ctx := context.Background()

	owner := createUser(t, db, "list_owner")
	customer := createUser(t, db, "list_customer")
	restaurant := createRestaurant(t, db, owner.ID, "List Lunchroom")

	for i := 0; i < 8; i++ {
		createOrder(t, db, customer.ID, restaurant.ID, float64(10+i), models.StatusCompleted)
	}

	page, err := orders.ListCustomerOrders(ctx, customer.ID, "", 1)
	require.NoError(t, err)
	assert.Len(t, page.Orders, 6)
	assert.Equal(t, int64(8), page.Total)
	assert.Equal(t, 2, page.TotalPages)

	page2, err := orders.ListCustomerOrders(ctx, customer.ID, "", 2)
	require.NoError(t, err)
	assert.Len(t, page2.Orders, 2)
}

func TestListCustomerOrdersSearch(t *testing.T) {
	db := setupDB(t)
	orders := NewOrderService(db, testhelpers.NewMemoryCartStore(), testhelpers.NewMemoryPlacementLock(), false)
	ctx := context.Background()

	owner := createUser(t, db, "search_owner")
	customer := createUser(t, db, "search_customer")
	curryPlace := createRestaurant(t, db, owner.ID, "Curry Corner")
	pizzaPlace := createRestaurant(t, db, owner.ID, "Pizza Plaza")

	createOrder(t, db, customer.ID, curryPlace.ID, 15, models.StatusCompleted)
	createOrder(t, db, customer.ID, pizzaPlace.ID, 18, models.StatusCompleted)

	page, err := orders.ListCustomerOrders(ctx, customer.ID, "curry", 1)
	require.NoError(t, err)
	require.Len(t, page.Orders, 1)
	assert.Equal(t, curryPlace.ID, page.Orders[0].RestaurantID)
}

func TestListRestaurantOrdersHidesForeign(t *testing.T) {
	db := setupDB(t)
	orders := NewOrderService(db, testhelpers.NewMemoryCartStore(), testhelpers.NewMemoryPlacementLock(), false)
	ctx := context.Background()

	owner := createUser(t, db, "hide_owner")
	outsider := createUser(t, db, "hide_outsider")
	restaurant := createRestaurant(t, db, owner.ID, "Hidden Hall")
	createOrder(t, db, outsider.ID, restaurant.ID, 12, models.StatusPending)

	// A non-owner gets a 404-shaped error, not a 403.
	_, err := orders.ListRestaurantOrders(ctx, outsider.ID, restaurant.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	listed, err := orders.ListRestaurantOrders(ctx, owner.ID, restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, listed, 1)
}

func TestTotalPages(t *testing.T) {
	cases := []struct {
		total int64
		size  int
		want  int
	}{
		{0, 6, 1},
		{1, 6, 1},
		{6, 6, 1},
		{7, 6, 2},
		{12, 4, 3},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprintf("%d_%d", tc.total, tc.size), func(t *testing.T) {
			assert.Equal(t, tc.want, totalPages(tc.total, tc.size))
		})
	}
}
