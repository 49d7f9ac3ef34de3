package db

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// OpaqueIDHeader carries the request id to the engine, which echoes it in its
// task and slow logs.
const OpaqueIDHeader = "X-Opaque-Id"

type requestIDKey struct{}

// ContextWithRequestID stores a request id in the context.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// EnsureRequestID returns a context that carries a request id, generating one
// when ctx has none.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id := RequestIDFromContext(ctx); id != "" {
		return ctx, id
	}
	id := uuid.NewString()
	return ContextWithRequestID(ctx, id), id
}

// RequestIDFromContext returns the request id, or "" when there is none.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Header returns the engine request headers for ctx, nil without request id.
func Header(ctx context.Context) http.Header {
	id := RequestIDFromContext(ctx)
	if id == "" {
		return nil
	}
	h := http.Header{}
	h.Set(OpaqueIDHeader, id)
	return h
}
