package types

import (
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims carried in a bearer token. SessionID scopes the
// session cart: a fresh login gets a fresh session and therefore an empty
// cart.
type TokenClaims struct {
	jwt.RegisteredClaims
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	SessionID string `json:"session_id"`
}
