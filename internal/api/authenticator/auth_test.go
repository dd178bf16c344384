package authenticator

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveen001/trailmap/internal/config"
)

func newTestAuthenticator(t *testing.T) *Authenticator {
	t.Helper()

	auth, err := New(&config.Config{
		JWT_SECRET:   "test-secret",
		STATE_SECRET: "state-secret",
	})
	require.NoError(t, err)
	require.True(t, auth.AuthEnabled())
	require.False(t, auth.Auth0Enabled())

	return auth
}

func TestGenerateAndVerifyToken(t *testing.T) {
	auth := newTestAuthenticator(t)

	userID := uuid.New()
	token, err := auth.GenerateToken(userID, "jo@example.com", "Jo", []string{"learner", "planner"})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := auth.VerifyAccessToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "jo@example.com", claims.Email)
	assert.Equal(t, "Jo", claims.Name)
	assert.Equal(t, []string{"learner", "planner"}, claims.Roles)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	auth := newTestAuthenticator(t)

	other, err := New(&config.Config{JWT_SECRET: "other-secret"})
	require.NoError(t, err)

	token, err := other.GenerateToken(uuid.New(), "jo@example.com", "Jo", nil)
	require.NoError(t, err)

	_, err = auth.VerifyAccessToken(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsExpired(t *testing.T) {
	auth := newTestAuthenticator(t)

	claims := UserClaims{
		UserID: uuid.New(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = auth.VerifyAccessToken(context.Background(), token)
	assert.Error(t, err)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	auth := newTestAuthenticator(t)

	_, err := auth.VerifyAccessToken(context.Background(), "not-a-token")
	assert.Error(t, err)
}

func TestSignedStateRoundTrip(t *testing.T) {
	auth := newTestAuthenticator(t)

	state := OAuthState{
		CSRF:      "abc",
		Redirect:  "http://localhost:3000",
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	}

	encoded, err := auth.GetSignedState(state)
	require.NoError(t, err)

	decoded, err := auth.VerifySignedState(encoded)
	require.NoError(t, err)
	assert.Equal(t, state.CSRF, decoded.CSRF)
	assert.Equal(t, state.Redirect, decoded.Redirect)
}

func TestSignedStateRejectsTampering(t *testing.T) {
	auth := newTestAuthenticator(t)

	encoded, err := auth.GetSignedState(OAuthState{
		CSRF:      "abc",
		ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
	})
	require.NoError(t, err)

	_, err = auth.VerifySignedState("x" + encoded[1:])
	assert.Error(t, err)
}

func TestSignedStateRejectsExpired(t *testing.T) {
	auth := newTestAuthenticator(t)

	encoded, err := auth.GetSignedState(OAuthState{
		CSRF:      "abc",
		ExpiresAt: time.Now().Add(-time.Minute).Unix(),
	})
	require.NoError(t, err)

	_, err = auth.VerifySignedState(encoded)
	assert.Error(t, err)
}
