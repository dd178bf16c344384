package controllers

import (
	"errors"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/praveen001/trailmap/internal/perrors"
	"github.com/praveen001/trailmap/internal/services"
	"github.com/praveen001/trailmap/internal/services/activity"
	"github.com/praveen001/trailmap/internal/services/progress"
)

func RegisterTaskRoutes(r *router.Router, svc *services.Services) {
	// Set the requester's completion flag on a task
	r.PUT("/api/tasks/{id}/progress", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		taskID, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid task id", perrors.NewErrInvalidRequest("Invalid task id", err))
			return
		}

		var req progress.SetProgressRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		// completed must be an explicit boolean, not merely truthy
		if req.Completed == nil {
			writeError(ctx, stdCtx, "completed must be a boolean", perrors.NewErrInvalidRequest("completed must be a boolean", errors.New("completed is required")))
			return
		}

		roadmapID, err := svc.Progress.Set(stdCtx, taskID, userID, *req.Completed)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to set progress", err)
			return
		}

		detail := "incomplete"
		if *req.Completed {
			detail = "completed"
		}
		svc.Activity.Record(stdCtx, roadmapID, userID, activity.ActionProgressSet, detail)

		writeOK(ctx, stdCtx, "success", map[string]any{
			"task_id":   taskID,
			"completed": *req.Completed,
		})
	})

	// Get the requester's completion flag for a task
	r.GET("/api/tasks/{id}/progress", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		taskID, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid task id", perrors.NewErrInvalidRequest("Invalid task id", err))
			return
		}

		completed, err := svc.Progress.Get(stdCtx, taskID, userID)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to get progress", err)
			return
		}

		writeOK(ctx, stdCtx, "success", map[string]any{
			"task_id":   taskID,
			"completed": completed,
		})
	})
}
