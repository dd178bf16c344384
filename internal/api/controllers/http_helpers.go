package controllers

import (
	"context"
	"errors"
	"fmt"

	json "github.com/bytedance/sonic"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"

	"github.com/praveen001/trailmap/internal/api/authenticator"
	"github.com/praveen001/trailmap/internal/api/response"
	"github.com/praveen001/trailmap/internal/perrors"
	"github.com/praveen001/trailmap/internal/services/access"
	"github.com/praveen001/trailmap/internal/services/assignment"
	"github.com/praveen001/trailmap/internal/services/note"
	"github.com/praveen001/trailmap/internal/services/progress"
	"github.com/praveen001/trailmap/internal/services/roadmap"
	"github.com/praveen001/trailmap/internal/services/user"
)

// requestContext returns the context for downstream calls. The middleware
// stores the span context of the request under "traceCtx"; falling back to
// Background only happens for handlers invoked outside the middleware chain.
func requestContext(ctx *fasthttp.RequestCtx) context.Context {
	if traceCtx, ok := ctx.UserValue("traceCtx").(context.Context); ok {
		return traceCtx
	}
	return context.Background()
}

func parseBody(ctx *fasthttp.RequestCtx, target any) error {
	body := ctx.PostBody()
	if len(body) == 0 {
		return errors.New("request body is empty")
	}

	return json.Unmarshal(body, target)
}

func writeError(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, err error) {
	response.NewResponse[any](stdCtx, message, nil).WithError(err).Write(ctx)
}

func writeOK(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, data any) {
	response.NewResponse(stdCtx, message, data).Write(ctx)
}

// writeServiceError translates service sentinels into typed errors carrying
// the right HTTP status, so every controller fails the same way.
func writeServiceError(ctx *fasthttp.RequestCtx, stdCtx context.Context, message string, err error) {
	var perr perrors.Err
	if errors.As(err, &perr) {
		writeError(ctx, stdCtx, message, err)
		return
	}

	switch {
	case errors.Is(err, access.ErrNoAccess),
		errors.Is(err, note.ErrNotNoteOwner):
		writeError(ctx, stdCtx, message, perrors.NewErrForbidden(message, err))
	case errors.Is(err, access.ErrRoadmapNotFound),
		errors.Is(err, access.ErrTaskNotFound),
		errors.Is(err, access.ErrUserNotFound),
		errors.Is(err, roadmap.ErrRoadmapNotFound),
		errors.Is(err, progress.ErrTaskNotFound),
		errors.Is(err, note.ErrNoteNotFound),
		errors.Is(err, note.ErrTaskNotFound),
		errors.Is(err, user.ErrUserNotFound),
		errors.Is(err, assignment.ErrAssignmentNotFound),
		errors.Is(err, assignment.ErrUserNotFound):
		writeError(ctx, stdCtx, message, perrors.NewErrNotFound(message, err))
	case errors.Is(err, user.ErrUserAlreadyExists),
		errors.Is(err, assignment.ErrDuplicateAssignment):
		writeError(ctx, stdCtx, message, perrors.NewErrConflict(message, err))
	case errors.Is(err, roadmap.ErrInvalidTreeSpec),
		errors.Is(err, note.ErrInvalidCategory),
		errors.Is(err, note.ErrEmptyContent),
		errors.Is(err, assignment.ErrInvalidAccessType):
		writeError(ctx, stdCtx, message, perrors.NewErrInvalidRequest(message, err))
	default:
		writeError(ctx, stdCtx, message, err)
	}
}

func pathParam(ctx *fasthttp.RequestCtx, key string) (string, error) {
	val := ctx.UserValue(key)
	if val == nil {
		return "", fmt.Errorf("%s is required", key)
	}

	return fmt.Sprint(val), nil
}

func pathParamUUID(ctx *fasthttp.RequestCtx, key string) (uuid.UUID, error) {
	val, err := pathParam(ctx, key)
	if err != nil {
		return uuid.Nil, err
	}

	return uuid.Parse(val)
}

// currentUser returns the claims the auth middleware stored, or nil when the
// request is unauthenticated.
func currentUser(ctx *fasthttp.RequestCtx) *authenticator.UserClaims {
	claims, ok := ctx.UserValue("userClaims").(*authenticator.UserClaims)
	if !ok {
		return nil
	}
	return claims
}

// requireUser fails the request with 401 when no authenticated user is
// present, and returns the user id otherwise.
func requireUser(ctx *fasthttp.RequestCtx, stdCtx context.Context) (uuid.UUID, bool) {
	claims := currentUser(ctx)
	if claims == nil || claims.UserID == uuid.Nil {
		writeError(ctx, stdCtx, "Unauthorized", perrors.NewErrUnauthorized("Unauthorized", errors.New("no user claims")))
		return uuid.Nil, false
	}

	return claims.UserID, true
}
