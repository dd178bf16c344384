package controllers

import (
	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	"github.com/praveen001/trailmap/internal/perrors"
	"github.com/praveen001/trailmap/internal/services"
	"github.com/praveen001/trailmap/internal/services/activity"
	"github.com/praveen001/trailmap/internal/services/note"
)

func RegisterNoteRoutes(r *router.Router, svc *services.Services) {
	// Add a note to a task
	r.POST("/api/tasks/{id}/notes", func(ctx *fasthttp.RequestCtx) {
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

		var req note.AddNoteRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		created, err := svc.Note.Add(stdCtx, taskID, userID, &req)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to add note", err)
			return
		}

		if _, roadmapID, err := svc.Access.ResolveForTask(stdCtx, userID, taskID); err == nil {
			svc.Activity.Record(stdCtx, roadmapID, userID, activity.ActionNoteAdded, string(created.Category))
		}

		writeOK(ctx, stdCtx, "success", created)
	})

	// The requester's notes on a task, grouped by category
	r.GET("/api/tasks/{id}/notes", func(ctx *fasthttp.RequestCtx) {
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

		grouped, err := svc.Note.ListForTask(stdCtx, taskID, userID)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to list notes", err)
			return
		}

		writeOK(ctx, stdCtx, "success", grouped)
	})

	// Edit a note's content
	r.PUT("/api/notes/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		noteID, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid note id", perrors.NewErrInvalidRequest("Invalid note id", err))
			return
		}

		var req note.EditNoteRequest
		if err := parseBody(ctx, &req); err != nil {
			writeError(ctx, stdCtx, "Invalid request body", perrors.NewErrInvalidRequest("Invalid request body", err))
			return
		}

		updated, err := svc.Note.Edit(stdCtx, noteID, userID, &req)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to edit note", err)
			return
		}

		if _, roadmapID, err := svc.Access.ResolveForTask(stdCtx, userID, updated.TaskID); err == nil {
			svc.Activity.Record(stdCtx, roadmapID, userID, activity.ActionNoteEdited, string(updated.Category))
		}

		writeOK(ctx, stdCtx, "success", updated)
	})

	// Delete a note
	r.DELETE("/api/notes/{id}", func(ctx *fasthttp.RequestCtx) {
		stdCtx := requestContext(ctx)

		userID, ok := requireUser(ctx, stdCtx)
		if !ok {
			return
		}

		noteID, err := pathParamUUID(ctx, "id")
		if err != nil {
			writeError(ctx, stdCtx, "Invalid note id", perrors.NewErrInvalidRequest("Invalid note id", err))
			return
		}

		deleted, err := svc.Note.Delete(stdCtx, noteID, userID)
		if err != nil {
			writeServiceError(ctx, stdCtx, "Failed to delete note", err)
			return
		}

		if _, roadmapID, err := svc.Access.ResolveForTask(stdCtx, userID, deleted.TaskID); err == nil {
			svc.Activity.Record(stdCtx, roadmapID, userID, activity.ActionNoteDeleted, string(deleted.Category))
		}

		writeOK(ctx, stdCtx, "success", map[string]any{
			"message": "Note deleted",
		})
	})
}
