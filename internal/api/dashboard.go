package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate/platemate-backend/internal/middleware"
	"github.com/platemate/platemate-backend/internal/models"
	"github.com/platemate/platemate-backend/internal/service"
)

// DashboardHandler serves the owner-facing views of a restaurant: live
// orders, feedback and the analytics dashboard. Every route 404s for
// non-owners so restaurant internals stay hidden.
type DashboardHandler struct {
	analyticsService service.IAnalyticsService
	orderService     service.IOrderService
	feedbackService  service.IFeedbackService
	authService      service.IAuthService
}

func NewDashboardHandler(analyticsService service.IAnalyticsService, orderService service.IOrderService, feedbackService service.IFeedbackService, authService service.IAuthService) *DashboardHandler {
	return &DashboardHandler{
		analyticsService: analyticsService,
		orderService:     orderService,
		feedbackService:  feedbackService,
		authService:      authService,
	}
}

func (h *DashboardHandler) RegisterRoutes(router *gin.RouterGroup) {
	dash := router.Group("/restaurants/:id")
	dash.Use(middleware.AuthMiddleware(h.authService))
	{
		dash.GET("/dashboard", h.Stats)
		dash.GET("/orders", h.Orders)
		dash.GET("/feedback", h.Feedback)
	}
}

func (h *DashboardHandler) Stats(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	stats, err := h.analyticsService.Dashboard(c.Request.Context(), userID, restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandler) Orders(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	orders, err := h.orderService.ListRestaurantOrders(c.Request.Context(), userID, restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *DashboardHandler) Feedback(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	filters := models.FeedbackFilters{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}

	list, err := h.feedbackService.ListForRestaurant(c.Request.Context(), userID, restaurantID, filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": list})
}
