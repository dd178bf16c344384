package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/praveen001/trailmap/internal/api/authenticator"
	"github.com/praveen001/trailmap/internal/config"
)

func TestMiddlewareRecordsServerSpan(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder)))

	// Empty config leaves auth disabled, so the request reaches the handler.
	auth, err := authenticator.New(&config.Config{})
	require.NoError(t, err)

	var handlerCtx context.Context
	s := &Server{}
	handler := s.withMiddlewares(func(ctx *fasthttp.RequestCtx) {
		handlerCtx, _ = ctx.UserValue("traceCtx").(context.Context)
		ctx.SetStatusCode(fasthttp.StatusOK)
	}, auth)

	var reqCtx fasthttp.RequestCtx
	reqCtx.Request.Header.SetMethod(fasthttp.MethodGet)
	reqCtx.Request.SetRequestURI("http://localhost/api/roadmaps")
	handler(&reqCtx)

	require.NotNil(t, handlerCtx, "span context must be handed to the handler")
	assert.True(t, trace.SpanContextFromContext(handlerCtx).IsValid())

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "GET /api/roadmaps", ended[0].Name())
}
