package controllers

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/praveen001/trailmap/internal/services"
)

func RegisterUserRoutes(r *router.Router, svc *services.Services) {
	// The user directory backs the assignment picker, so it is limited to
	// planners and admins.
	r.GET("/api/users", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		if !requirePlanner(ctx, stdCtx, svc, userID) {
			return
		}

		users, err := svc.User.List(stdCtx)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to list users", err)
			return
		}

		writeOK(ctx, stdCtx, "success", users)
	})
}
