package logger

import "context"

type contextKey string

const logFieldsKey contextKey = "log_fields"

// LogFields contains structured fields automatically added to all logs within a context.
// Handlers and services enrich the context once and every log line below them
// carries the user, flow and repository it belongs to.
type LogFields struct {
	UserID       *int64  // Authenticated DocuGenAI user
	Flow         *string // Prompt flow name (e.g., "module-readme")
	FlowState    *string // Current orchestrator state
	Provider     *string // LLM or SCM provider handling the call
	RepoFullName *string // "owner/name" of the repository being documented
	Component    string  // Component name (OTel semantic convention style, e.g., "docugen.flow")
}

// WithLogFields enriches context with structured log fields.
// Multiple calls merge fields, with newer non-nil/non-empty values taking precedence.
func WithLogFields(ctx context.Context, fields LogFields) context.Context {
	existing := GetLogFields(ctx)
	merged := mergeFields(existing, fields)
	return context.WithValue(ctx, logFieldsKey, merged)
}

// GetLogFields retrieves log fields from context.
// Returns empty LogFields if none are set.
func GetLogFields(ctx context.Context) LogFields {
	if fields, ok := ctx.Value(logFieldsKey).(LogFields); ok {
		return fields
	}
	return LogFields{}
}

func mergeFields(existing, next LogFields) LogFields {
	result := existing

	if next.UserID != nil {
		result.UserID = next.UserID
	}
	if next.Flow != nil {
		result.Flow = next.Flow
	}
	if next.FlowState != nil {
		result.FlowState = next.FlowState
	}
	if next.Provider != nil {
		result.Provider = next.Provider
	}
	if next.RepoFullName != nil {
		result.RepoFullName = next.RepoFullName
	}
	if next.Component != "" {
		result.Component = next.Component
	}

	return result
}

// Ptr is a helper to create a pointer from a value.
// Useful for setting LogFields inline: logger.WithLogFields(ctx, logger.LogFields{Flow: logger.Ptr(name)})
func Ptr[T any](v T) *T {
	return &v
}

// Truncate truncates a string to maxLen bytes, appending "..." if truncated.
func Truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
