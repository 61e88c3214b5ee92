package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/platemate/platemate-backend/internal/models"
	"github.com/platemate/platemate-backend/internal/types"
)

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the user's profile, creating an empty one on first
// access.
func (s *ProfileService) GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).
		Preload("FavoriteRestaurants").
		First(&profile, "user_id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		profile = models.UserProfile{UserID: userID}
		if err := s.db.WithContext(ctx).Create(&profile).Error; err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return &profile, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	return &profile, nil
}

// UpdateProfile applies the editable profile fields.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uint, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	updates := map[string]interface{}{
		"phone":              req.Phone,
		"diet_preference":    req.DietPreference,
		"cuisine_preference": req.CuisinePreference,
	}
	if err := s.db.WithContext(ctx).Model(profile).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(ctx, userID)
}

// AddFavorite marks a restaurant as a favorite.
func (s *ProfileService) AddFavorite(ctx context.Context, userID, restaurantID uint) error {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, "id = ?", restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to load restaurant: %w", err)
	}
	return s.db.WithContext(ctx).Model(profile).
		Association("FavoriteRestaurants").Append(&restaurant)
}

// RemoveFavorite unmarks a favorite restaurant.
func (s *ProfileService) RemoveFavorite(ctx context.Context, userID, restaurantID uint) error {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(profile).
		Association("FavoriteRestaurants").Delete(&models.Restaurant{ID: restaurantID})
}
