package authenticator

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/url"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/jwks"
	"github.com/auth0/go-jwt-middleware/v2/validator"
	"github.com/bytedance/sonic"
	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"github.com/praveen001/trailmap/internal/config"
)

type Authenticator struct {
	*oidc.Provider
	oauth2.Config

	jwtSecret    string
	stateSecret  string
	issuer       string
	jwksProvider *jwks.CachingProvider
	audience     string
	authEnabled  bool
	auth0Enabled bool
}

// UserClaims is the token payload for password logins. Roles are carried for
// display only; authorization re-reads them from the store on every request.
type UserClaims struct {
	UserID uuid.UUID `json:"uid"`
	Email  string    `json:"email"`
	Name   string    `json:"name"`
	Roles  []string  `json:"roles"`
	jwt.RegisteredClaims
}

func New(conf *config.Config) (*Authenticator, error) {
	a := &Authenticator{
		jwtSecret:   conf.JWT_SECRET,
		stateSecret: conf.STATE_SECRET,
		audience:    "trailmap-api",
		authEnabled: conf.JWT_SECRET != "" || conf.AUTH0_DOMAIN != "",
	}

	if conf.AUTH0_DOMAIN == "" {
		return a, nil
	}

	issuer := "https://" + conf.AUTH0_DOMAIN + "/"

	provider, err := oidc.NewProvider(context.Background(), issuer)
	if err != nil {
		return nil, err
	}

	issuerURL, err := url.Parse(issuer)
	if err != nil {
		return nil, err
	}

	a.Provider = provider
	a.Config = oauth2.Config{
		ClientID:     conf.AUTH0_CLIENT_ID,
		ClientSecret: conf.AUTH0_CLIENT_SECRET,
		RedirectURL:  conf.AUTH0_CALLBACK_URL,
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email"},
	}
	a.issuer = issuer
	a.jwksProvider = jwks.NewCachingProvider(issuerURL, 5*time.Minute)
	a.auth0Enabled = true

	return a, nil
}

func (a *Authenticator) AuthEnabled() bool {
	return a.authEnabled
}

func (a *Authenticator) Auth0Enabled() bool {
	return a.auth0Enabled
}

func (a *Authenticator) Audience() string {
	return a.audience
}

// GenerateToken issues an HS256 access token for a password login.
func (a *Authenticator) GenerateToken(userID uuid.UUID, email, name string, roles []string) (string, error) {
	if a.jwtSecret == "" {
		return "", errors.New("JWT_SECRET is not configured")
	}

	now := time.Now()
	claims := UserClaims{
		UserID: userID,
		Email:  email,
		Name:   name,
		Roles:  roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "trailmap",
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{a.audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(a.jwtSecret))
}

// VerifyAccessToken verifies a token issued by GenerateToken. When Auth0 is
// configured, tokens that are not ours are validated against its JWKS instead.
func (a *Authenticator) VerifyAccessToken(ctx context.Context, token string) (*UserClaims, error) {
	if a.jwtSecret != "" {
		claims := &UserClaims{}
		parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(a.jwtSecret), nil
		})
		if err == nil && parsed.Valid {
			return claims, nil
		}
		if !a.auth0Enabled {
			if err == nil {
				err = errors.New("invalid token")
			}
			return nil, err
		}
	}

	if !a.auth0Enabled {
		return nil, errors.New("no token verifier configured")
	}

	jwtValidator, err := validator.New(
		a.jwksProvider.KeyFunc,
		validator.RS256,
		a.issuer,
		[]string{a.Audience()},
		validator.WithCustomClaims(func() validator.CustomClaims { return &auth0Claims{} }),
	)
	if err != nil {
		return nil, err
	}

	payload, err := jwtValidator.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	validated, ok := payload.(*validator.ValidatedClaims)
	if !ok {
		return nil, errors.New("unexpected claims type")
	}

	claims := &UserClaims{}
	// Auth0 subjects are not local ids; the middleware resolves the local
	// account by email.
	if id, parseErr := uuid.Parse(validated.RegisteredClaims.Subject); parseErr == nil {
		claims.UserID = id
	}
	if custom, ok := validated.CustomClaims.(*auth0Claims); ok {
		claims.Email = custom.Email
		claims.Name = custom.Name
	}

	return claims, nil
}

type auth0Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

func (c *auth0Claims) Validate(context.Context) error {
	return nil
}

// VerifyIDToken verifies that an *oauth2.Token is a valid *oidc.IDToken.
func (a *Authenticator) VerifyIDToken(ctx context.Context, token *oauth2.Token) (*oidc.IDToken, error) {
	rawIDToken, ok := token.Extra("id_token").(string)
	if !ok {
		return nil, errors.New("no id_token field in oauth2 token")
	}

	oidcConfig := &oidc.Config{
		ClientID: a.ClientID,
	}

	return a.Verifier(oidcConfig).Verify(ctx, rawIDToken)
}

type OAuthState struct {
	CSRF      string `json:"csrf"`
	Redirect  string `json:"redirect"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

func (a *Authenticator) GetSignedState(state OAuthState) (string, error) {
	payload, err := sonic.Marshal(state)
	if err != nil {
		return "", err
	}

	mac := hmac.New(sha256.New, []byte(a.stateSecret))
	mac.Write(payload)
	sig := mac.Sum(nil)

	combined := append(payload, sig...)
	return base64.StdEncoding.EncodeToString(combined), nil
}

func (a *Authenticator) VerifySignedState(encodedState string) (*OAuthState, error) {
	raw, err := base64.StdEncoding.DecodeString(encodedState)
	if err != nil {
		return nil, errors.New("invalid base64")
	}

	if len(raw) < sha256.Size {
		return nil, errors.New("state too short")
	}

	payload := raw[:len(raw)-sha256.Size]
	sig := raw[len(raw)-sha256.Size:]

	mac := hmac.New(sha256.New, []byte(a.stateSecret))
	mac.Write(payload)
	expectedSig := mac.Sum(nil)
	if !hmac.Equal(sig, expectedSig) {
		return nil, errors.New("invalid state signature")
	}

	var state OAuthState
	if err := sonic.Unmarshal(payload, &state); err != nil {
		return nil, errors.New("invalid state payload")
	}

	if time.Now().Unix() > state.ExpiresAt {
		return nil, errors.New("state expired")
	}

	return &state, nil
}
