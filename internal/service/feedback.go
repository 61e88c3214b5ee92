package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/platemate/platemate-backend/internal/models"
	"github.com/platemate/platemate-backend/internal/types"
)

type FeedbackService struct {
	db           *gorm.DB
	emailService IEmailService
}

func NewFeedbackService(db *gorm.DB, emailService IEmailService) *FeedbackService {
	return &FeedbackService{db: db, emailService: emailService}
}

// CreateFeedback files feedback for a restaurant. Unlike reviews there is no
// eligibility gate: any authenticated customer may file at any time.
func (s *FeedbackService) CreateFeedback(ctx context.Context, userID, restaurantID uint, req *types.FeedbackRequest) (*models.Feedback, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).Preload("Owner").First(&restaurant, "id = ?", restaurantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load restaurant: %w", err)
	}

	feedback := &models.Feedback{
		UserID:       userID,
		RestaurantID: restaurantID,
		Type:         req.Type,
		Message:      req.Message,
		Priority:     req.Priority,
	}
	if feedback.Type == "" {
		feedback.Type = models.FeedbackGeneral
	}
	if feedback.Priority == "" {
		feedback.Priority = "medium"
	}
	if err := s.db.WithContext(ctx).Create(feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to create feedback: %w", err)
	}

	// Notify the owner out of band; a delivery failure never fails the
	// feedback itself.
	if restaurant.Owner != nil && s.emailService != nil {
		owner := *restaurant.Owner
		go func() {
			if err := s.emailService.SendFeedbackNotification(feedback, &owner, restaurant.Name); err != nil {
				log.Printf("failed to send feedback notification: %v", err)
			}
		}()
	}
	return feedback, nil
}

// ListForRestaurant lists a restaurant's feedback for its owner, newest
// first, with optional status and type filters. Non-owners see ErrNotFound.
func (s *FeedbackService) ListForRestaurant(ctx context.Context, ownerID, restaurantID uint, filters models.FeedbackFilters) ([]models.Feedback, error) {
	if err := requireOwnedRestaurant(ctx, s.db, ownerID, restaurantID); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Preload("User").Where("restaurant_id = ?", restaurantID)
	switch filters.Status {
	case "unseen":
		q = q.Where("seen = ?", false)
	case "responded":
		q = q.Where("response <> ''")
	case "pending":
		q = q.Where("response = ''")
	}
	if filters.Type != "" && filters.Type != "all" {
		q = q.Where("type = ?", filters.Type)
	}

	var feedbacks []models.Feedback
	if err := q.Order("created_at DESC").Find(&feedbacks).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedbacks, nil
}

// ListForUser returns the customer's own feedback history, newest first.
func (s *FeedbackService) ListForUser(ctx context.Context, userID uint) ([]models.Feedback, error) {
	var feedbacks []models.Feedback
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&feedbacks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedbacks, nil
}

// Respond records the owner's response: text, responder, timestamp and the
// seen flag are written as a single update.
func (s *FeedbackService) Respond(ctx context.Context, ownerID, feedbackID uint, response string) error {
	feedback, err := s.loadForOwner(ctx, ownerID, feedbackID)
	if err != nil {
		return err
	}
	now := time.Now()
	return s.db.WithContext(ctx).Model(feedback).Updates(map[string]interface{}{
		"response":     response,
		"responded_by": ownerID,
		"responded_at": now,
		"seen":         true,
	}).Error
}

// MarkSeen flags feedback as seen without responding.
func (s *FeedbackService) MarkSeen(ctx context.Context, ownerID, feedbackID uint) error {
	feedback, err := s.loadForOwner(ctx, ownerID, feedbackID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(feedback).Update("seen", true).Error
}

func (s *FeedbackService) loadForOwner(ctx context.Context, ownerID, feedbackID uint) (*models.Feedback, error) {
	var feedback models.Feedback
	err := s.db.WithContext(ctx).Preload("Restaurant").First(&feedback, "id = ?", feedbackID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load feedback: %w", err)
	}
	if !feedback.Restaurant.IsOwnedBy(ownerID) {
		return nil, ErrForbidden
	}
	return &feedback, nil
}
