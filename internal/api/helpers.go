package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/platemate/platemate-backend/internal/middleware"
	"github.com/platemate/platemate-backend/internal/service"
)

// respondError translates service errors into HTTP responses. Unknown errors
// are logged and hidden behind a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrEmptyCart):
		c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
	case errors.Is(err, service.ErrNotEligible):
		c.JSON(http.StatusForbidden, gin.H{"error": "only customers with a completed order can review"})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "status change not allowed"})
	case errors.Is(err, service.ErrInvalidCartAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart action"})
	case errors.Is(err, service.ErrOrderInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": "an order is already being placed"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, service.ErrInvalidToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
	case errors.Is(err, service.ErrUserExists):
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already taken"})
	default:
		log.Printf("internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// uintParam parses a numeric path parameter. The second return is false when
// the value is missing or not a positive integer; a 400 has already been
// written in that case.
func uintParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return uint(id), true
}

// pageQuery parses the page query parameter, defaulting to 1.
func pageQuery(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// authedUser pulls the user id the auth middleware stored. Handlers behind
// AuthMiddleware can rely on it; the check guards against route wiring bugs.
func authedUser(c *gin.Context) (uint, bool) {
	id, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	return id, true
}

// authedSession pulls the login session id the auth middleware stored.
func authedSession(c *gin.Context) (string, bool) {
	sid, ok := middleware.SessionID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return "", false
	}
	return sid, true
}
