package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate/platemate-backend/internal/middleware"
	"github.com/platemate/platemate-backend/internal/service"
	"github.com/platemate/platemate-backend/internal/types"
)

type CartHandler struct {
	cartService service.ICartService
	authService service.IAuthService
}

func NewCartHandler(cartService service.ICartService, authService service.IAuthService) *CartHandler {
	return &CartHandler{cartService: cartService, authService: authService}
}

func (h *CartHandler) RegisterRoutes(router *gin.RouterGroup) {
	cart := router.Group("/restaurants/:id/cart")
	cart.Use(middleware.AuthMiddleware(h.authService))
	{
		cart.GET("", h.View)
		cart.POST("/items", h.AddItem)
		cart.PATCH("/items/:food_id", h.UpdateItem)
		cart.DELETE("", h.Clear)
	}
}

func (h *CartHandler) View(c *gin.Context) {
	sessionID, ok := authedSession(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	view, err := h.cartService.View(c.Request.Context(), sessionID, restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *CartHandler) AddItem(c *gin.Context) {
	sessionID, ok := authedSession(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cartService.AddItem(c.Request.Context(), sessionID, restaurantID, req.FoodItemID, req.Quantity); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "item added to cart"})
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	sessionID, ok := authedSession(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}
	foodID, ok := uintParam(c, "food_id")
	if !ok {
		return
	}

	var req types.CartActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.cartService.UpdateItem(c.Request.Context(), sessionID, restaurantID, foodID, req.Action); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart updated"})
}

func (h *CartHandler) Clear(c *gin.Context) {
	sessionID, ok := authedSession(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.cartService.Clear(c.Request.Context(), sessionID, restaurantID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
