package api

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/platemate/platemate-backend/internal/service"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
		{"forbidden", service.ErrForbidden, http.StatusForbidden},
		{"empty cart", service.ErrEmptyCart, http.StatusBadRequest},
		{"not eligible", service.ErrNotEligible, http.StatusForbidden},
		{"invalid transition", service.ErrInvalidTransition, http.StatusConflict},
		{"invalid cart action", service.ErrInvalidCartAction, http.StatusBadRequest},
		{"order in progress", service.ErrOrderInProgress, http.StatusConflict},
		{"bad credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"bad token", service.ErrInvalidToken, http.StatusUnauthorized},
		{"user exists", service.ErrUserExists, http.StatusConflict},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			respondError(c, tc.err)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestRespondErrorUnwrapsChains(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	respondError(c, errors.Join(errors.New("food item 3"), service.ErrNotFound))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUintParam(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "17"}}
	id, ok := uintParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint(17), id)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "banana"}}
	_, ok = uintParam(c, "id")
	assert.False(t, ok)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "0"}}
	_, ok = uintParam(c, "id")
	assert.False(t, ok)
}
