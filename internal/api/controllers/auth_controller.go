package controllers

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"
	"golang.org/x/oauth2"

	"github.com/praveen001/trailmap/internal/api/authenticator"
	"github.com/praveen001/trailmap/internal/perrors"
	"github.com/praveen001/trailmap/internal/services"
	"github.com/praveen001/trailmap/internal/services/user"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

func toUserResponse(u *user.User) UserResponse {
	return UserResponse{
		ID:    u.ID.String(),
		Name:  u.Name,
		Email: u.Email,
		Roles: u.Roles,
	}
}

func RegisterAuthRoutes(r *router.Router, svc *services.Services, auth *authenticator.Authenticator) {
	r.GET("/api/auth/enabled", func(ctx *fasthttp.RequestCtx) {
		writeOK(ctx, requestContext(ctx), "success", map[string]any{
			"auth_enabled":  auth.AuthEnabled(),
			"auth0_enabled": auth.Auth0Enabled(),
		})
	})

	r.POST("/api/auth/register", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req user.RegisterRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		created, err := svc.User.Register(stdCtx, &req)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to register user", err)
			return
		}

		writeOK(ctx, stdCtx, "success", toUserResponse(created))
	})

	// Login with email/password
	r.POST("/api/auth/login", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		var req LoginRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.Email == "" || req.Password == "" {
			writeError(ctx, stdCtx, "Email and password are required", perrors.NewErrInvalidRequest("Email and password are required", errors.New("missing credentials")))
			return
		}

		// Authenticate user
		u, err := svc.User.Authenticate(stdCtx, req.Email, req.Password)
		if err != nil {
			writeError(ctx, stdCtx, "Invalid credentials", perrors.NewErrUnauthorized("Invalid credentials", err))
			return
		}

		// Generate JWT token
		token, err := auth.GenerateToken(u.ID, u.Email, u.Name, u.Roles)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to generate token", err)
			return
		}

		// Set token as HTTP-only cookie
		var cookie fasthttp.Cookie
		cookie.SetKey("access_token")
		cookie.SetValue(token)
		cookie.SetPath("/")
		cookie.SetHTTPOnly(true)
		cookie.SetSecure(false) // Set to true in production (HTTPS)
		cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
		cookie.SetExpire(time.Now().Add(24 * time.Hour))
		ctx.Response.Header.SetCookie(&cookie)

		writeOK(ctx, stdCtx, "success", LoginResponse{
			Token: token,
			User:  toUserResponse(u),
		})
	})

	// Get current user info
	r.GET("/api/auth/me", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		u, err := svc.User.GetByID(stdCtx, userID)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to get user", err)
			return
		}

		writeOK(ctx, stdCtx, "success", toUserResponse(u))
	})

	// Logout endpoint
	r.POST("/api/auth/logout", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		// Clear the access_token cookie
		var cookie fasthttp.Cookie
		cookie.SetKey("access_token")
		cookie.SetValue("")
		cookie.SetPath("/")
		cookie.SetHTTPOnly(true)
		cookie.SetExpire(time.Now().Add(-1 * time.Hour))
		ctx.Response.Header.SetCookie(&cookie)

		writeOK(ctx, stdCtx, "success", map[string]any{
			"message": "Logged out successfully",
		})
	})

	r.GET("/api/auth/auth0/login", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		csrf := make([]byte, 16)
		rand.Read(csrf)

		state := authenticator.OAuthState{
			CSRF:      base64.RawURLEncoding.EncodeToString(csrf),
			Redirect:  "http://localhost:3000",
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(5 * time.Minute).Unix(),
		}

		encodedState, err := auth.GetSignedState(state)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to create signed state", err)
			return
		}

		url := auth.AuthCodeURL(encodedState, oauth2.SetAuthURLParam("audience", auth.Audience()))
		ctx.Redirect(url, fasthttp.StatusTemporaryRedirect)
	})

	r.GET("/api/auth/auth0/callback", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)
		encodedState := ctx.URI().QueryArgs().Peek("state")
		code := ctx.URI().QueryArgs().Peek("code")

		if encodedState == nil || code == nil {
			writeError(ctx, stdCtx, "missing parameters", perrors.NewErrInvalidRequest("missing parameters", errors.New("missing parameters")))
			return
		}

		state, err := auth.VerifySignedState(string(encodedState))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to decode state", perrors.NewErrInvalidRequest("Failed to decode state", err))
			return
		}

		token, err := auth.Exchange(stdCtx, string(code))
		if err != nil {
			writeError(ctx, stdCtx, "Failed to exchange token", err)
			return
		}

		idToken, err := auth.VerifyIDToken(stdCtx, token)
		if err != nil {
			writeError(ctx, stdCtx, "Failed to verify ID token", err)
			return
		}

		var profile map[string]interface{}
		if err := idToken.Claims(&profile); err != nil {
			writeError(ctx, stdCtx, "Failed to get claims", err)
			return
		}

		// Create cookie
		var cookie fasthttp.Cookie
		cookie.SetKey("access_token")
		cookie.SetValue(token.AccessToken)
		cookie.SetPath("/")
		cookie.SetHTTPOnly(true)
		cookie.SetSecure(false) // MUST be true in production (HTTPS)
		cookie.SetSameSite(fasthttp.CookieSameSiteLaxMode)
		cookie.SetExpire(time.Now().Add(1 * time.Hour))
		ctx.Response.Header.SetCookie(&cookie)

		ctx.Redirect(state.Redirect, fasthttp.StatusFound)
	})
}
