package controllers

import (
	"errors"

	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/praveen001/trailmap/internal/perrors"
	"github.com/praveen001/trailmap/internal/services"
	"github.com/praveen001/trailmap/internal/services/activity"
	"github.com/praveen001/trailmap/internal/services/assignment"
)

func RegisterAssignmentRoutes(r *router.Router, svc *services.Services) {
	// List a roadmap's assignments
	r.GET("/api/roadmaps/{id}/assignments", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		roadmapID, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid roadmap id", perrors.NewErrInvalidRequest("Invalid roadmap id", err))
			return
		}

		assignments, err := svc.Assignment.List(stdCtx, roadmapID, userID)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to list assignments", err)
			return
		}

		writeOK(ctx, stdCtx, "success", assignments)
	})

	// Grant a user access to a roadmap
	r.POST("/api/roadmaps/{id}/assignments", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		roadmapID, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid roadmap id", perrors.NewErrInvalidRequest("Invalid roadmap id", err))
			return
		}

		var req assignment.AssignRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.UserID == uuid.Nil {
			writeError(ctx, stdCtx, "user_id is required", perrors.NewErrInvalidRequest("user_id is required", errors.New("missing user_id")))
			return
		}

		created, err := svc.Assignment.Assign(stdCtx, roadmapID, userID, req.UserID, req.AccessType)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to assign roadmap", err)
			return
		}

		svc.Activity.Record(stdCtx, roadmapID, userID, activity.ActionAssignmentGranted, created.AccessType)

		writeOK(ctx, stdCtx, "success", created)
	})

	// Revoke a user's access to a roadmap
	r.DELETE("/api/roadmaps/{id}/assignments", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		roadmapID, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid roadmap id", perrors.NewErrInvalidRequest("Invalid roadmap id", err))
			return
		}

		var req assignment.UnassignRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		if req.UserID == uuid.Nil {
			writeError(ctx, stdCtx, "user_id is required", perrors.NewErrInvalidRequest("user_id is required", errors.New("missing user_id")))
			return
		}

		if err := svc.Assignment.Unassign(stdCtx, roadmapID, userID, req.UserID); err != nil {
			writeServiceError(ctx, stdCtx, "Failed to unassign roadmap", err)
			return
		}

		svc.Activity.Record(stdCtx, roadmapID, userID, activity.ActionAssignmentRevoked, req.UserID.String())

		writeOK(ctx, stdCtx, "success", map[string]any{
			"message": "Assignment removed",
		})
	})
}
