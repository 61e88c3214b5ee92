package service

import (
	"context"
	"io"

	"github.com/platemate/platemate-backend/internal/models"
	"github.com/platemate/platemate-backend/internal/types"
)

// IAuthService defines authentication operations.
type IAuthService interface {
	Register(ctx context.Context, username, email, password, phone string) (*models.User, error)
	Login(ctx context.Context, usernameOrEmail, password string) (*models.User, string, error)
	GenerateToken(claims *types.TokenClaims) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
	GetUser(ctx context.Context, userID uint) (*models.User, error)
}

// IProfileService defines user profile operations.
type IProfileService interface {
	GetProfile(ctx context.Context, userID uint) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, userID uint, req *types.UpdateProfileRequest) (*models.UserProfile, error)
	AddFavorite(ctx context.Context, userID, restaurantID uint) error
	RemoveFavorite(ctx context.Context, userID, restaurantID uint) error
}

// ICatalogService defines restaurant and menu operations.
type ICatalogService interface {
	ListRestaurants(ctx context.Context, filters RestaurantFilters) (*RestaurantPage, error)
	GetRestaurant(ctx context.Context, restaurantID uint) (*models.Restaurant, error)
	Menu(ctx context.Context, restaurantID uint, filters MenuFilters) (*MenuPage, error)
	RegisterRestaurant(ctx context.Context, ownerID uint, req *types.RestaurantRequest) (*models.Restaurant, error)
	UpdateRestaurant(ctx context.Context, ownerID, restaurantID uint, req *types.RestaurantRequest) (*models.Restaurant, error)
	SetRestaurantPhoto(ctx context.Context, ownerID, restaurantID uint, url string) error
	AddFoodItem(ctx context.Context, ownerID, restaurantID uint, req *types.FoodItemRequest) (*models.FoodItem, error)
	UpdateFoodItem(ctx context.Context, ownerID, foodID uint, req *types.FoodItemRequest) (*models.FoodItem, error)
	DeleteFoodItem(ctx context.Context, ownerID, foodID uint) error
	SetFoodImage(ctx context.Context, ownerID, foodID uint, url string) error
}

// ICartService defines session cart operations.
type ICartService interface {
	AddItem(ctx context.Context, sessionID string, restaurantID, foodID uint, qty int) error
	UpdateItem(ctx context.Context, sessionID string, restaurantID, foodID uint, action string) error
	Clear(ctx context.Context, sessionID string, restaurantID uint) error
	View(ctx context.Context, sessionID string, restaurantID uint) (*CartView, error)
}

// IOrderService defines the order lifecycle.
type IOrderService interface {
	PlaceOrder(ctx context.Context, customerID uint, sessionID string, restaurantID uint) (*models.Order, error)
	CancelOrder(ctx context.Context, customerID, orderID uint) error
	UpdateStatus(ctx context.Context, actorID, orderID uint, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, actorID, orderID uint) error
	ListCustomerOrders(ctx context.Context, customerID uint, search string, page int) (*OrderPage, error)
	ListRestaurantOrders(ctx context.Context, actorID, restaurantID uint) ([]models.Order, error)
}

// IReviewService defines review operations.
type IReviewService interface {
	AddReview(ctx context.Context, userID, restaurantID uint, rating int, comment string) (*models.Review, error)
	HasCompletedOrder(ctx context.Context, userID, restaurantID uint) (bool, error)
	ListVisible(ctx context.Context, restaurantID uint) ([]models.Review, error)
	SetVisibility(ctx context.Context, ownerID, reviewID uint, visible bool) error
}

// IFeedbackService defines feedback operations.
type IFeedbackService interface {
	CreateFeedback(ctx context.Context, userID, restaurantID uint, req *types.FeedbackRequest) (*models.Feedback, error)
	ListForRestaurant(ctx context.Context, ownerID, restaurantID uint, filters models.FeedbackFilters) ([]models.Feedback, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Feedback, error)
	Respond(ctx context.Context, ownerID, feedbackID uint, response string) error
	MarkSeen(ctx context.Context, ownerID, feedbackID uint) error
}

// IAnalyticsService defines the on-demand dashboard aggregates.
type IAnalyticsService interface {
	Dashboard(ctx context.Context, ownerID, restaurantID uint) (*DashboardStats, error)
	PopularToday(ctx context.Context, restaurantID uint) ([]uint, error)
}

// IEmailService defines outbound notifications.
type IEmailService interface {
	SendFeedbackNotification(feedback *models.Feedback, owner *models.User, restaurantName string) error
	SendEmail(to, subject, body string) error
}

// IPhotoService defines photo storage.
type IPhotoService interface {
	Upload(ctx context.Context, folder, filename, contentType string, body io.Reader) (string, error)
}
