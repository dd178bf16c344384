package controllers

import (
	"context"
	"errors"
	"strconv"

	json "github.com/bytedance/sonic"
	"github.com/fasthttp/router"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/praveen001/trailmap/internal/perrors"
	"github.com/praveen001/trailmap/internal/services"
	"github.com/praveen001/trailmap/internal/services/access"
	"github.com/praveen001/trailmap/internal/services/activity"
	"github.com/praveen001/trailmap/internal/services/roadmap"
)

// requirePlanner gates roadmap creation on the planner or admin role.
func requirePlanner(ctx *fasthttp.RequestCtx, stdCtx context.Context, svc *services.Services, userID uuid.UUID) bool {
	u, err := svc.User.GetByID(stdCtx, userID)
	if err != nil {
		writeServiceError(ctx, stdCtx, "Failed to get user", err)
		return false
	}

	if !access.HasRole(u.Roles, access.RolePlanner) && !access.HasRole(u.Roles, access.RoleAdmin) {
		writeError(ctx, stdCtx, "Forbidden", perrors.NewErrForbidden("Forbidden", errors.New("planner or admin role required")))
		return false
	}

	return true
}

func RegisterRoadmapRoutes(r *router.Router, svc *services.Services) {
	// Create a roadmap from a JSON tree spec
	r.POST("/api/roadmaps", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		if !requirePlanner(ctx, stdCtx, svc, userID) {
			return
		}

		var spec roadmap.TreeSpec
		if err := parseBody(ctx, &spec); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		created, err := svc.Roadmap.CreateTree(stdCtx, userID, &spec)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to create roadmap", err)
			return
		}

		svc.Activity.Record(stdCtx, created.ID, userID, activity.ActionRoadmapCreated, created.Title)

		writeOK(ctx, stdCtx, "success", created)
	})

	// Create a roadmap from an uploaded JSON file
	r.POST("/api/roadmaps/upload", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		if !requirePlanner(ctx, stdCtx, svc, userID) {
			return
		}

		fh, err := ctx.FormFile("file")
		if err != nil {
			writeError(ctx, stdCtx, "A file is required", perrors.NewErrInvalidRequest("A file is required", err))
			return
		}

		f, err := fh.Open()
		if err != nil {
			writeError(ctx, stdCtx, "Failed to open uploaded file", err)
			return
		}
		defer f.Close()

		var spec roadmap.TreeSpec
		if err := json.ConfigDefault.NewDecoder(f).Decode(&spec); err != nil {
			writeError(ctx, stdCtx, "File is not valid JSON", perrors.NewErrInvalidRequest("File is not valid JSON", err))
			return
		}

		created, err := svc.Roadmap.CreateTree(stdCtx, userID, &spec)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to create roadmap", err)
			return
		}

		svc.Activity.Record(stdCtx, created.ID, userID, activity.ActionRoadmapCreated, created.Title)

		writeOK(ctx, stdCtx, "success", created)
	})

	// List roadmaps visible to the requester
	r.GET("/api/roadmaps", func(ctx *fasthttp.RequestCtx) {
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

		roadmaps, err := svc.Roadmap.List(stdCtx, userID, u.Roles)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to list roadmaps", err)
			return
		}

		writeOK(ctx, stdCtx, "success", roadmaps)
	})

	// Get one roadmap with the requester's progress and notes applied
	r.GET("/api/roadmaps/{id}", func(ctx *fasthttp.RequestCtx) {
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

		assembled, err := svc.Assembler.Assemble(stdCtx, roadmapID, userID)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to get roadmap", err)
			return
		}

		writeOK(ctx, stdCtx, "success", assembled)
	})

	// Delete a roadmap and everything under it
	r.DELETE("/api/roadmaps/{id}", func(ctx *fasthttp.RequestCtx) {
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

		if err := svc.Roadmap.Delete(stdCtx, roadmapID, userID); err != nil {
			writeServiceError(ctx, stdCtx, "Failed to delete roadmap", err)
			return
		}

		svc.Activity.Record(stdCtx, roadmapID, userID, activity.ActionRoadmapDeleted, "")

		writeOK(ctx, stdCtx, "success", map[string]any{
			"message": "Roadmap deleted",
		})
	})

	// Recent mutation events against a roadmap
	r.GET("/api/roadmaps/{id}/activity", func(ctx *fasthttp.RequestCtx) {
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

		level, err := svc.Access.Resolve(stdCtx, userID, roadmapID)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to get activity", err)
			return
		}
		if !level.CanManageAssignments() {
			writeError(ctx, stdCtx, "Forbidden", perrors.NewErrForbidden("Forbidden", errors.New("owner or admin access required")))
			return
		}

		if svc.Activity == nil {
			writeOK(ctx, stdCtx, "success", []activity.Event{})
			return
		}

		limit, _ := strconv.Atoi(string(ctx.QueryArgs().Peek("limit")))
		events, err := svc.Activity.List(stdCtx, roadmapID, limit)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to get activity", err)
			return
		}

		writeOK(ctx, stdCtx, "success", events)
	})
}
