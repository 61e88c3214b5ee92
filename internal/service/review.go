package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/platemate/platemate-backend/internal/models"
)

// reviewListLimit caps the public review listing shown on a menu page.
const reviewListLimit = 10

type ReviewService struct {
	db *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// AddReview records a rating for a restaurant. It is gated: the customer
// must have at least one Completed order there, otherwise ErrNotEligible
// and nothing is written. Repeat reviews are allowed.
func (s *ReviewService) AddReview(ctx context.Context, userID, restaurantID uint, rating int, comment string) (*models.Review, error) {
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, "id = ?", restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}

	eligible, err := s.HasCompletedOrder(ctx, userID, restaurantID)
	if err != nil {
		return nil, err
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	review := &models.Review{
		UserID:       userID,
		RestaurantID: restaurantID,
		Rating:       rating,
		Comment:      comment,
		Visible:      true,
	}
	if err := s.db.WithContext(ctx).Create(review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return review, nil
}

// HasCompletedOrder reports whether the customer has a Completed order at
// the restaurant, the eligibility condition for reviewing.
func (s *ReviewService) HasCompletedOrder(ctx context.Context, userID, restaurantID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Order{}).
		Where("customer_id = ? AND restaurant_id = ? AND status = ?",
			userID, restaurantID, models.StatusCompleted).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check order history: %w", err)
	}
	return count > 0, nil
}

// ListVisible returns the latest visible reviews for a restaurant.
func (s *ReviewService) ListVisible(ctx context.Context, restaurantID uint) ([]models.Review, error) {
	var reviews []models.Review
	err := s.db.WithContext(ctx).
		Preload("User").
		Where("restaurant_id = ? AND visible = ?", restaurantID, true).
		Order("created_at DESC").
		Limit(reviewListLimit).
		Find(&reviews).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}
	return reviews, nil
}

// SetVisibility lets the restaurant's owner hide or restore a review.
func (s *ReviewService) SetVisibility(ctx context.Context, ownerID, reviewID uint, visible bool) error {
	var review models.Review
	err := s.db.WithContext(ctx).Preload("Restaurant").First(&review, "id = ?", reviewID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load review: %w", err)
	}
	if !review.Restaurant.IsOwnedBy(ownerID) {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Model(&review).Update("visible", visible).Error
}
