package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate/platemate-backend/internal/middleware"
	"github.com/platemate/platemate-backend/internal/models"
	"github.com/platemate/platemate-backend/internal/service"
	"github.com/platemate/platemate-backend/internal/types"
)

type OrderHandler struct {
	orderService service.IOrderService
	authService  service.IAuthService
	placeLimiter *middleware.RateLimiter
}

func NewOrderHandler(orderService service.IOrderService, authService service.IAuthService, placeLimiter *middleware.RateLimiter) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		authService:  authService,
		placeLimiter: placeLimiter,
	}
}

func (h *OrderHandler) RegisterRoutes(router *gin.RouterGroup) {
	orders := router.Group("/orders")
	orders.Use(middleware.AuthMiddleware(h.authService))
	{
		orders.GET("", h.ListMine)
		orders.POST("/:id/cancel", h.Cancel)
		orders.PUT("/:id/status", h.UpdateStatus)
		orders.DELETE("/:id", h.Delete)
	}

	place := router.Group("/restaurants/:id/orders")
	place.Use(middleware.AuthMiddleware(h.authService))
	if h.placeLimiter != nil {
		place.Use(h.placeLimiter.RateLimitMiddleware())
	}
	{
		place.POST("", h.Place)
	}
}

func (h *OrderHandler) Place(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	sessionID, ok := authedSession(c)
	if !ok {
		return
	}
	restaurantID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	order, err := h.orderService.PlaceOrder(c.Request.Context(), userID, sessionID, restaurantID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) ListMine(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	page, err := h.orderService.ListCustomerOrders(c.Request.Context(), userID, c.Query("q"), pageQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *OrderHandler) Cancel(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.CancelOrder(c.Request.Context(), userID, orderID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "order cancelled"})
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.orderService.UpdateStatus(c.Request.Context(), userID, orderID, models.OrderStatus(req.Status)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "status updated"})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	orderID, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), userID, orderID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
