package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platemate/platemate-backend/internal/models"
)

func TestAddReviewRequiresCompletedOrder(t *testing.T) {
	db := setupDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()

	owner := createUser(t, db, "rev_owner")
	customer := createUser(t, db, "rev_customer")
	restaurant := createRestaurant(t, db, owner.ID, "Review Roost")

	// No orders at all.
	_, err := svc.AddReview(ctx, customer.ID, restaurant.ID, 5, "great")
	assert.ErrorIs(t, err, ErrNotEligible)

	// A pending order is not enough.
	createOrder(t, db, customer.ID, restaurant.ID, 10, models.StatusPending)
	_, err = svc.AddReview(ctx, customer.ID, restaurant.ID, 5, "great")
	assert.ErrorIs(t, err, ErrNotEligible)

	// A cancelled order is not enough either.
	createOrder(t, db, customer.ID, restaurant.ID, 10, models.StatusCancelled)
	_, err = svc.AddReview(ctx, customer.ID, restaurant.ID, 5, "great")
	assert.ErrorIs(t, err, ErrNotEligible)

	createOrder(t, db, customer.ID, restaurant.ID, 10, models.StatusCompleted)
	review, err := svc.AddReview(ctx, customer.ID, restaurant.ID, 4, "solid")
	require.NoError(t, err)
	assert.Equal(t, 4, review.Rating)
	assert.True(t, review.Visible)
}

func TestAddReviewUnknownRestaurant(t *testing.T) {
	db := setupDB(t)
	svc := NewReviewService(db)

	customer := createUser(t, db, "rev_lost_customer")
	_, err := svc.AddReview(context.Background(), customer.ID, 404, 5, "where am i")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAddReviewEligibilityIsPerRestaurant(t *testing.T) {
	db := setupDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()

	owner := createUser(t, db, "rev_per_owner")
	customer := createUser(t, db, "rev_per_customer")
	eaten := createRestaurant(t, db, owner.ID, "Eaten At")
	never := createRestaurant(t, db, owner.ID, "Never Visited")

	createOrder(t, db, customer.ID, eaten.ID, 10, models.StatusCompleted)

	_, err := svc.AddReview(ctx, customer.ID, never.ID, 5, "imaginary meal")
	assert.ErrorIs(t, err, ErrNotEligible)

	_, err = svc.AddReview(ctx, customer.ID, eaten.ID, 5, "real meal")
	assert.NoError(t, err)
}

func TestListVisibleReviews(t *testing.T) {
	db := setupDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()

	owner := createUser(t, db, "rev_list_owner")
	customer := createUser(t, db, "rev_list_customer")
	restaurant := createRestaurant(t, db, owner.ID, "List Lodge")

	require.NoError(t, db.Create(&models.Review{UserID: customer.ID, RestaurantID: restaurant.ID, Rating: 5, Visible: true}).Error)
	require.NoError(t, db.Create(&models.Review{UserID: customer.ID, RestaurantID: restaurant.ID, Rating: 1, Visible: false}).Error)

	reviews, err := svc.ListVisible(ctx, restaurant.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 1)
	assert.Equal(t, 5, reviews[0].Rating)
}

func TestSetReviewVisibility(t *testing.T) {
	db := setupDB(t)
	svc := NewReviewService(db)
	ctx := context.Background()

	owner := createUser(t, db, "rev_vis_owner")
	outsider := createUser(t, db, "rev_vis_outsider")
	customer := createUser(t, db, "rev_vis_customer")
	restaurant := createRestaurant(t, db, owner.ID, "Visibility Venue")

	review := &models.Review{UserID: customer.ID, RestaurantID: restaurant.ID, Rating: 2, Visible: true}
	require.NoError(t, db.Create(review).Error)

	assert.ErrorIs(t, svc.SetVisibility(ctx, outsider.ID, review.ID, false), ErrForbidden)

	require.NoError(t, svc.SetVisibility(ctx, owner.ID, review.ID, false))
	reviews, err := svc.ListVisible(ctx, restaurant.ID)
	require.NoError(t, err)
	assert.Empty(t, reviews)

	// And back again.
	require.NoError(t, svc.SetVisibility(ctx, owner.ID, review.ID, true))
	reviews, err = svc.ListVisible(ctx, restaurant.ID)
	require.NoError(t, err)
	assert.Len(t, reviews, 1)
}
