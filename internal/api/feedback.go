package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate/platemate-backend/internal/middleware"
	"github.com/platemate/platemate-backend/internal/service"
	"github.com/platemate/platemate-backend/internal/types"
)

type FeedbackHandler struct {
	feedbackService service.IFeedbackService
	authService     service.IAuthService
	submitLimiter   *middleware.RateLimiter
}

func NewFeedbackHandler(feedbackService service.IFeedbackService, authService service.IAuthService, submitLimiter *middleware.RateLimiter) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
		authService:     authService,
		submitLimiter:   submitLimiter,
	}
}

func (h *FeedbackHandler) RegisterRoutes(router *gin.RouterGroup) {
	submit := router.Group("/restaurants/:id/feedback")
	submit.Use(middleware.AuthMiddleware(h.authService))
	if h.submitLimiter != nil {
		submit.Use(h.submitLimiter.RateLimitMiddleware())
	}
	{
		submit.POST("", h.Create)
	}

	authed := router.Group("/feedback")
	authed.Use(middleware.AuthMiddleware(h.authService))
	{
		authed.GET("/mine", h.ListMine)
		authed.POST("/:id/response", h.Respond)
		authed.POST("/:id/seen", h.MarkSeen)
	}
}

func (h *FeedbackHandler) Create(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	feedback, err := h.feedbackService.CreateFeedback(c.Request.Context(), userID, restaurantID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, feedback)
}

func (h *FeedbackHandler) ListMine(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	list, err := h.feedbackService.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"feedback": list})
}

func (h *FeedbackHandler) Respond(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	feedbackID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.FeedbackResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.feedbackService.Respond(c.Request.Context(), userID, feedbackID, req.Response); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "response recorded"})
}

func (h *FeedbackHandler) MarkSeen(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	feedbackID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.feedbackService.MarkSeen(c.Request.Context(), userID, feedbackID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "feedback marked seen"})
}
