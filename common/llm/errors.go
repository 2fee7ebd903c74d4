package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
)

// InvocationError is a transport or provider failure: timeout, non-2xx,
// blocked prompt, or a reply with no usable content.
type InvocationError struct {
	Provider   ProviderName
	StatusCode int // 0 when no HTTP response was received
	Detail     string
	Err        error
}

func (e *InvocationError) Error() string {
	msg := fmt.Sprintf("%s invocation failed", e.Provider)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s (status %d)", msg, e.StatusCode)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Err != nil && e.Detail == "" {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvocationError) Unwrap() error { return e.Err }

// Temporary reports whether a later attempt could succeed: rate limiting,
// provider 5xx, timeouts and network failures. Nothing in this package
// retries; callers decide.
func (e *InvocationError) Temporary() bool {
	switch {
	case e.StatusCode == 429 || e.StatusCode >= 500:
		return true
	case e.StatusCode != 0:
		return false
	case errors.Is(e.Err, context.Canceled):
		return false
	case errors.Is(e.Err, context.DeadlineExceeded):
		return true
	}
	var netErr net.Error
	return errors.As(e.Err, &netErr)
}

// OutputError means the provider answered but the payload does not match the
// declared output schema. Err is a JSON syntax error or a *schema.ValidationError.
type OutputError struct {
	Schema  string
	Payload []byte
	Err     error
}

func (e *OutputError) Error() string {
	return fmt.Sprintf("model output does not match %s: %v", e.Schema, e.Err)
}

func (e *OutputError) Unwrap() error { return e.Err }
