package api

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"

	"github.com/praveen001/trailmap/internal/api/authenticator"
	"github.com/praveen001/trailmap/internal/api/controllers"
	"github.com/praveen001/trailmap/internal/config"
)

var (
	tracer          = otel.Tracer("API")
	tracePropagator = propagation.TraceContext{}
)

func (s *Server) initRoutes() fasthttp.RequestHandler {
	r := router.New()

	r.GET("/api/health", func(ctx *fasthttp.RequestCtx) {
		ctx.SetStatusCode(fasthttp.StatusOK)
		_, _ = ctx.Write([]byte("OK"))
	})

	conf := config.ReadConfig()
	auth, err := authenticator.New(conf)
	if err != nil {
		log.Fatal(err)
	}

	controllers.RegisterAuthRoutes(r, s.services, auth)
	controllers.RegisterUserRoutes(r, s.services)
	controllers.RegisterRoadmapRoutes(r, s.services)
	controllers.RegisterTaskRoutes(r, s.services)
	controllers.RegisterNoteRoutes(r, s.services)
	controllers.RegisterAssignmentRoutes(r, s.services)

	return s.withMiddlewares(r.Handler, auth)
}

func (s *Server) withMiddlewares(next fasthttp.RequestHandler, auth *authenticator.Authenticator) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		applyCORS(ctx)
		if string(ctx.Method()) == fasthttp.MethodOptions {
			ctx.SetStatusCode(fasthttp.StatusNoContent)
			return
		}

		start := time.Now()
		uri := ctx.URI()
		requestURI := string(uri.FullURI())
		slog.Info("Started processing", slog.String("method", string(ctx.Method())), slog.String("request_uri", requestURI))

		h := http.Header{}
		ctx.Request.Header.VisitAll(func(k, v []byte) {
			h[string(k)] = []string{string(v)}
		})
		traceCtx := tracePropagator.Extract(ctx, propagation.HeaderCarrier(h))
		spanCtx, span := tracer.Start(traceCtx, string(ctx.Method())+" "+string(ctx.Path()))
		ctx.SetUserValue("traceCtx", spanCtx)
		defer func() {
			if status := ctx.Response.StatusCode(); status >= fasthttp.StatusInternalServerError {
				span.SetStatus(codes.Error, fasthttp.StatusMessage(status))
			}
			span.End()
		}()

		// Auth check
		if auth.AuthEnabled() && !isPublicRoute(ctx) {
			accessToken := strings.TrimPrefix(string(ctx.Request.Header.Peek("Authorization")), "Bearer ")
			if accessToken == "" {
				accessToken = string(ctx.Request.Header.Cookie("access_token"))
			}

			if accessToken == "" {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			claims, err := auth.VerifyAccessToken(ctx, accessToken)
			if err != nil {
				ctx.SetStatusCode(fasthttp.StatusUnauthorized)
				return
			}

			// External identities carry no local id; resolve the account by
			// the verified email.
			if claims.UserID == uuid.Nil && claims.Email != "" {
				u, err := s.services.User.GetByEmail(ctx, claims.Email)
				if err != nil {
					ctx.SetStatusCode(fasthttp.StatusUnauthorized)
					return
				}
				claims.UserID = u.ID
				claims.Name = u.Name
				claims.Roles = u.Roles
			}

			// Store user claims in context for downstream handlers
			ctx.SetUserValue("userClaims", claims)
		}

		next(ctx)

		slog.Info("Finished processing", slog.String("method", string(ctx.Method())), slog.String("request_uri", requestURI), slog.Duration("duration", time.Since(start)))
	}
}

func applyCORS(ctx *fasthttp.RequestCtx) {
	headers := &ctx.Response.Header
	headers.Set("Access-Control-Allow-Origin", string(ctx.Request.Header.Peek("Origin")))
	headers.Set("Access-Control-Allow-Methods", "GET,POST,PUT,DELETE,OPTIONS,PATCH")
	headers.Set("Access-Control-Allow-Headers", os.Getenv("ALLOWED_HEADERS"))
	headers.Set("Access-Control-Allow-Credentials", "true")
}

func isPublicRoute(ctx *fasthttp.RequestCtx) bool {
	path := string(ctx.Path())

	// Public auth routes
	publicAuthRoutes := []string{
		"/api/auth/login",
		"/api/auth/register",
		"/api/auth/enabled",
		"/api/auth/auth0/login",
		"/api/auth/auth0/callback",
	}

	switch {
	case path == "/api/health":
		return true
	default:
		for _, route := range publicAuthRoutes {
			if path == route {
				return true
			}
		}
		return false
	}
}
