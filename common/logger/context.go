package logger

import (
	"context"
	"log/slog"
)

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
type LogFields struct {
	RequestID   *string // X-Request-ID of the inbound request
	UserID      *int64  // Authenticated caller
	WorkspaceID *int64  // Workspace being operated on
	ProjectID   *int64  // Project being operated on
	Component   string  // Component name, e.g. "fractal.service.project"
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

// Attrs returns the set fields as slog attributes, in a stable order.
func (f LogFields) Attrs() []slog.Attr {
	attrs := make([]slog.Attr, 0, 5)
	if f.RequestID != nil {
		attrs = append(attrs, slog.String("request_id", *f.RequestID))
	}
	if f.UserID != nil {
		attrs = append(attrs, slog.Int64("user_id", *f.UserID))
	}
	if f.WorkspaceID != nil {
		attrs = append(attrs, slog.Int64("workspace_id", *f.WorkspaceID))
	}
	if f.ProjectID != nil {
		attrs = append(attrs, slog.Int64("project_id", *f.ProjectID))
	}
	if f.Component != "" {
		attrs = append(attrs, slog.String("component", f.Component))
	}
	return attrs
}

func mergeFields(existing, incoming LogFields) LogFields {
	result := existing

	if incoming.RequestID != nil {
		result.RequestID = incoming.RequestID
	}
	if incoming.UserID != nil {
		result.UserID = incoming.UserID
	}
	if incoming.WorkspaceID != nil {
		result.WorkspaceID = incoming.WorkspaceID
	}
	if incoming.ProjectID != nil {
		result.ProjectID = incoming.ProjectID
	}
	if incoming.Component != "" {
		result.Component = incoming.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{ProjectID: logger.Ptr(id)})
func Ptr[T any](v T) *T {
	return &v
}
