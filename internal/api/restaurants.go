package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/platemate/platemate-backend/internal/middleware"
	"github.com/platemate/platemate-backend/internal/service"
	"github.com/platemate/platemate-backend/internal/types"
)

const maxPhotoSize = 10 << 20

type RestaurantHandler struct {
	catalogService   service.ICatalogService
	photoService     service.IPhotoService
	authService      service.IAuthService
	analyticsService service.IAnalyticsService
}

func NewRestaurantHandler(catalogService service.ICatalogService, photoService service.IPhotoService, authService service.IAuthService, analyticsService service.IAnalyticsService) *RestaurantHandler {
	return &RestaurantHandler{
		catalogService:   catalogService,
		photoService:     photoService,
		authService:      authService,
		analyticsService: analyticsService,
	}
}

func (h *RestaurantHandler) RegisterRoutes(router *gin.RouterGroup) {
	restaurants := router.Group("/restaurants")
	{
		restaurants.GET("", h.List)
		restaurants.GET("/:id", h.Get)
		restaurants.GET("/:id/menu", h.Menu)
	}

	owned := router.Group("/restaurants")
	owned.Use(middleware.AuthMiddleware(h.authService))
	{
		owned.POST("", h.Create)
		owned.PUT("/:id", h.Update)
		owned.POST("/:id/photo", h.UploadPhoto)
		owned.POST("/:id/menu", h.AddFoodItem)
	}

	items := router.Group("/food-items")
	items.Use(middleware.AuthMiddleware(h.authService))
	{
		items.PUT("/:id", h.UpdateFoodItem)
		items.DELETE("/:id", h.DeleteFoodItem)
		items.POST("/:id/image", h.UploadFoodImage)
	}
}

func (h *RestaurantHandler) List(c *gin.Context) {
	filters := service.RestaurantFilters{
		Query:    c.Query("q"),
		Cuisine:  c.Query("cuisine"),
		Location: c.Query("location"),
		MaxPrice: c.Query("max_price"),
		Page:     pageQuery(c),
	}

	page, err := h.catalogService.ListRestaurants(c.Request.Context(), filters)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *RestaurantHandler) Get(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	restaurant, err := h.catalogService.GetRestaurant(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) Menu(c *gin.Context) {
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	filters := service.MenuFilters{
		Search:   c.Query("q"),
		MaxPrice: c.Query("max_price"),
		Veg:      c.Query("veg"),
		Page:     pageQuery(c),
	}

	menu, err := h.catalogService.Menu(c.Request.Context(), id, filters)
	if err != nil {
		respondError(c, err)
		return
	}

	if h.analyticsService != nil {
		popular, err := h.analyticsService.PopularToday(c.Request.Context(), id)
		if err != nil {
			log.Printf("failed to load popular items for restaurant %d: %v", id, err)
		} else {
			menu.PopularToday = popular
		}
	}
	c.JSON(http.StatusOK, menu)
}

func (h *RestaurantHandler) Create(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}

	var req types.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant, err := h.catalogService.RegisterRestaurant(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, restaurant)
}

func (h *RestaurantHandler) Update(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.RestaurantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	restaurant, err := h.catalogService.UpdateRestaurant(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, restaurant)
}

func (h *RestaurantHandler) UploadPhoto(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	url, ok := h.storeUpload(c, "restaurants")
	if !ok {
		return
	}

	if err := h.catalogService.SetRestaurantPhoto(c.Request.Context(), userID, id, url); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo_url": url})
}

func (h *RestaurantHandler) AddFoodItem(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.catalogService.AddFoodItem(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *RestaurantHandler) UpdateFoodItem(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	var req types.FoodItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.catalogService.UpdateFoodItem(c.Request.Context(), userID, id, &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *RestaurantHandler) DeleteFoodItem(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	if err := h.catalogService.DeleteFoodItem(c.Request.Context(), userID, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *RestaurantHandler) UploadFoodImage(c *gin.Context) {
	userID, ok := authedUser(c)
	if !ok {
		return
	}
	id, ok := uintParam(c, "id")
	if !ok {
		return
	}

	url, ok := h.storeUpload(c, "food-items")
	if !ok {
		return
	}

	if err := h.catalogService.SetFoodImage(c.Request.Context(), userID, id, url); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

// storeUpload reads the multipart "photo" field and pushes it to object
// storage. It writes the error response itself on failure.
func (h *RestaurantHandler) storeUpload(c *gin.Context, folder string) (string, bool) {
	if h.photoService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "photo uploads are disabled"})
		return "", false
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo file is required"})
		return "", false
	}
	if fileHeader.Size > maxPhotoSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photo exceeds the 10MB limit"})
		return "", false
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read photo"})
		return "", false
	}
	defer file.Close()

	url, err := h.photoService.Upload(c.Request.Context(), folder, fileHeader.Filename, fileHeader.Header.Get("Content-Type"), file)
	if err != nil {
		respondError(c, err)
		return "", false
	}
	return url, true
}
