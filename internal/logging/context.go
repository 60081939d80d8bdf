package logging

import (
	"context"
	"log/slog"

	"notesum/internal/services"
)

const (
	// FieldComponent is the standardized structured logging key for component names.
	FieldComponent = "component"
	// FieldSummaryID is the standardized structured logging key for summary identifiers.
	FieldSummaryID = "summary_id"
	// FieldOperation is the standardized structured logging key for operation names.
	FieldOperation = "operation"
	// FieldCorrelationID is the standardized structured logging key for request correlation identifiers.
	FieldCorrelationID = "correlation_id"
)

func contextFields(ctx context.Context) []any {
	if ctx == nil {
		return nil
	}
	fields := make([]any, 0, 3)
	if id, ok := services.SummaryIDFromContext(ctx); ok {
		fields = append(fields, slog.Int64(FieldSummaryID, id))
	}
	if op, ok := services.OperationFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldOperation, op))
	}
	if rid, ok := services.RequestIDFromContext(ctx); ok {
		fields = append(fields, slog.String(FieldCorrelationID, rid))
	}
	return fields
}

// WithContext adds the summary id, operation and correlation id carried by
// ctx to logger.
func WithContext(ctx context.Context, logger *slog.Logger) *slog.Logger {
	if logger == nil {
		logger = NewNop()
	}
	if fields := contextFields(ctx); len(fields) > 0 {
		return logger.With(fields...)
	}
	return logger
}
