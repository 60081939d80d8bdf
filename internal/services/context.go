package services

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const (
	summaryIDKey contextKey = "summary_id"
	operationKey contextKey = "operation"
	requestIDKey contextKey = "request_id"
)

// WithSummaryID annotates context with the summary identifier.
func WithSummaryID(ctx context.Context, id int64) context.Context {
	return context.WithValue(ctx, summaryIDKey, id)
}

// SummaryIDFromContext extracts the summary identifier if present.
func SummaryIDFromContext(ctx context.Context) (int64, bool) {
	v := ctx.Value(summaryIDKey)
	if v == nil {
		return 0, false
	}
	switch val := v.(type) {
	case int64:
		return val, true
	case int:
		return int64(val), true
	default:
		return 0, false
	}
}

// WithOperation annotates context with the operation name (summarize, scan, edit).
func WithOperation(ctx context.Context, op string) context.Context {
	if op == "" {
		return ctx
	}
	return context.WithValue(ctx, operationKey, op)
}

// OperationFromContext returns the operation name if present.
func OperationFromContext(ctx context.Context) (string, bool) {
	v := ctx.Value(operationKey)
	if str, ok := v.(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithRequestID annotates context with a correlation identifier.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// EnsureRequestID returns ctx unchanged when it already carries a correlation
// identifier; otherwise it stamps a fresh one.
func EnsureRequestID(ctx context.Context) (context.Context, string) {
	if id, ok := RequestIDFromContext(ctx); ok {
		return ctx, id
	}
	id := uuid.NewString()
	return WithRequestID(ctx, id), id
}

// RequestIDFromContext extracts the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if v, ok := ctx.Value(requestIDKey).(string); ok && v != "" {
		return v, true
	}
	return "", false
}
