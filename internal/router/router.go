package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate/platemate-backend/internal/api"
	"github.com/platemate/platemate-backend/internal/middleware"
)

// Handlers bundles everything the router mounts.
type Handlers struct {
	Auth       *api.AuthHandler
	Profile    *api.ProfileHandler
	Restaurant *api.RestaurantHandler
	Cart       *api.CartHandler
	Order      *api.OrderHandler
	Review     *api.ReviewHandler
	Feedback   *api.FeedbackHandler
	Dashboard  *api.DashboardHandler
}

// SetupRouter configures the application routes
func SetupRouter(h Handlers, allowedOrigins []string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(allowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	h.Auth.RegisterRoutes(v1)
	h.Profile.RegisterRoutes(v1)
	h.Restaurant.RegisterRoutes(v1)
	h.Cart.RegisterRoutes(v1)
	h.Order.RegisterRoutes(v1)
	h.Review.RegisterRoutes(v1)
	h.Feedback.RegisterRoutes(v1)
	h.Dashboard.RegisterRoutes(v1)

	return router
}
