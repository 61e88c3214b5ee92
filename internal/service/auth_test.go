package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platemate/platemate-backend/internal/models"
	"github.com/platemate/platemate-backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, err := svc.Register(ctx, "newbie", "newbie@example.com", "supersecret", "555-0101")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCustomer, user.Role)

	// Registration also provisions the profile.
	var profile models.UserProfile
	require.NoError(t, db.First(&profile, "user_id = ?", user.ID).Error)
	assert.Equal(t, "555-0101", profile.Phone)

	loggedIn, token, err := svc.Login(ctx, "newbie", "supersecret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)

	// Email works as the login identifier too.
	_, _, err = svc.Login(ctx, "newbie@example.com", "supersecret")
	assert.NoError(t, err)
}

func TestRegisterDuplicate(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "taken", "taken@example.com", "supersecret", "")
	require.NoError(t, err)

	_, err = svc.Register(ctx, "taken", "other@example.com", "supersecret", "")
	assert.ErrorIs(t, err, ErrUserExists)

	_, err = svc.Register(ctx, "other", "taken@example.com", "supersecret", "")
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "victim", "victim@example.com", "supersecret", "")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "victim", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody", "supersecret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")

	token, err := svc.GenerateToken(&types.TokenClaims{
		UserID:    42,
		Username:  "tester",
		SessionID: "session-abc",
	})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "tester", claims.Username)
	assert.Equal(t, "session-abc", claims.SessionID)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := NewAuthService(nil, "test-secret")

	claims, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	signer := NewAuthService(nil, "secret-a")
	verifier := NewAuthService(nil, "secret-b")

	token, err := signer.GenerateToken(&types.TokenClaims{UserID: 1, Username: "x", SessionID: "s"})
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestEachLoginGetsFreshSession(t *testing.T) {
	db := setupDB(t)
	svc := NewAuthService(db, "test-secret")
	ctx := context.Background()

	_, err := svc.Register(ctx, "sessioner", "sessioner@example.com", "supersecret", "")
	require.NoError(t, err)

	_, token1, err := svc.Login(ctx, "sessioner", "supersecret")
	require.NoError(t, err)
	_, token2, err := svc.Login(ctx, "sessioner", "supersecret")
	require.NoError(t, err)

	claims1, err := svc.ValidateToken(token1)
	require.NoError(t, err)
	claims2, err := svc.ValidateToken(token2)
	require.NoError(t, err)
	assert.NotEqual(t, claims1.SessionID, claims2.SessionID)
}
