package types

// RegisterRequest creates an account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=3,max=64"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"omitempty,max=15"`
}

// LoginRequest authenticates by username or email.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest edits the caller's profile.
type UpdateProfileRequest struct {
	Phone             string `json:"phone" binding:"omitempty,max=15"`
	DietPreference    string `json:"diet_preference" binding:"omitempty,oneof=any veg nonveg vegan"`
	CuisinePreference string `json:"cuisine_preference" binding:"omitempty,max=200"`
}

// RestaurantRequest registers or updates a restaurant.
type RestaurantRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description string  `json:"description"`
	Location    string  `json:"location" binding:"omitempty,max=150"`
	Cuisine     string  `json:"cuisine" binding:"omitempty,max=150"`
	AvgPrice    float64 `json:"avg_price" binding:"gte=0"`
}

// FoodItemRequest creates or updates a menu item. Prices must be
// non-negative; the data layer repeats the check.
type FoodItemRequest struct {
	Name        string   `json:"name" binding:"required,max=255"`
	Description string   `json:"description"`
	Price       float64  `json:"price" binding:"gte=0"`
	IsVeg       bool     `json:"is_veg"`
	IsSpecial   bool     `json:"is_special"`
	DealPrice   *float64 `json:"deal_price" binding:"omitempty,gte=0"`
	DealActive  bool     `json:"deal_active"`
}

// AddCartItemRequest adds quantity to a cart entry. Quantity defaults to 1
// and is floored to 1 by the service.
type AddCartItemRequest struct {
	FoodItemID uint `json:"food_item_id" binding:"required"`
	Quantity   int  `json:"quantity"`
}

// CartActionRequest applies an increase/decrease/remove action to a cart
// entry.
type CartActionRequest struct {
	Action string `json:"action" binding:"required,oneof=increase decrease remove"`
}

// UpdateOrderStatusRequest is the owner-side status change.
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ReviewRequest posts a rating for a restaurant.
type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// ReviewVisibilityRequest hides or restores a review.
type ReviewVisibilityRequest struct {
	Visible *bool `json:"visible" binding:"required"`
}

// FeedbackRequest files customer feedback.
type FeedbackRequest struct {
	Type     string `json:"type" binding:"omitempty,oneof=complaint suggestion compliment general"`
	Message  string `json:"message" binding:"required"`
	Priority string `json:"priority" binding:"omitempty,oneof=low medium high"`
}

// FeedbackResponseRequest is the owner's reply to feedback.
type FeedbackResponseRequest struct {
	Response string `json:"response" binding:"required"`
}
