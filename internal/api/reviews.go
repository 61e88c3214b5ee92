package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate/platemate-backend/internal/middleware"
	"github.com/platemate/platemate-backend/internal/service"
	"github.com/platemate/platemate-backend/internal/types"
)

type ReviewHandler struct {
	reviewService service.IReviewService
	authService   service.IAuthService
}

func NewReviewHandler(reviewService service.IReviewService, authService service.IAuthService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, authService: authService}
}

func (h *ReviewHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/restaurants/:id/reviews", h.List)

	authed := router.Group("")
	authed.Use(middleware.AuthMiddleware(h.authService))
	{
		authed.POST("/restaurants/:id/reviews", h.Create)
		authed.PUT("/reviews/:id/visibility", h.SetVisibility)
	}
}

func (h *ReviewHandler) List(c *gin.Context) {
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.ListVisible(c.Request.Context(), restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	review, err := h.reviewService.AddReview(c.Request.Context(), userID, restaurantID, req.Rating, req.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) SetVisibility(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	reviewID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.ReviewVisibilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.reviewService.SetVisibility(c.Request.Context(), userID, reviewID, *req.Visible); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "review visibility updated"})
}
