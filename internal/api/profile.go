package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate/platemate-backend/internal/middleware"
	"github.com/platemate/platemate-backend/internal/service"
	"github.com/platemate/platemate-backend/internal/types"
)

type ProfileHandler struct {
	profileService service.IProfileService
	authService    service.IAuthService
}

func NewProfileHandler(profileService service.IProfileService, authService service.IAuthService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService, authService: authService}
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup) {
	profile := router.Group("/profile")
	profile.Use(middleware.AuthMiddleware(h.authService))
	{
		profile.GET("", h.Get)
		profile.PUT("", h.Update)
		profile.POST("/favorites/:id", h.AddFavorite)
		profile.DELETE("/favorites/:id", h.RemoveFavorite)
	}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) Update(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req types.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) AddFavorite(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.AddFavorite(c.Request.Context(), userID, restaurantID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite added"})
}

func (h *ProfileHandler) RemoveFavorite(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.profileService.RemoveFavorite(c.Request.Context(), userID, restaurantID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "favorite removed"})
}
