package llm

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Adv-2005/DocuGenAI/internal/schema"
)

// Invoker runs one provider call and coerces the reply into the request's
// output schema.
type Invoker interface {
	Invoke(ctx context.Context, req Request) (schema.Values, *Response, error)
}

type invoker struct {
	provider Provider
	timeout  time.Duration
}

// NewInvoker wraps a provider. A positive timeout bounds each call.
// Every Invoke makes exactly one Generate call; there is no retry and no cache.
func NewInvoker(p Provider, timeout time.Duration) Invoker {
	return &invoker{provider: p, timeout: timeout}
}

func (i *invoker) Invoke(ctx context.Context, req Request) (schema.Values, *Response, error) {
	if i.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, i.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := i.provider.Generate(ctx, req)
	if err != nil {
		var invErr *InvocationError
		if !errors.As(err, &invErr) {
			invErr = &InvocationError{Provider: i.provider.Name(), Err: err}
		}
		slog.WarnContext(ctx, "llm invocation failed",
			"model", i.provider.Model(),
			"status_code", invErr.StatusCode,
			"temporary", invErr.Temporary(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return nil, nil, invErr
	}

	slog.DebugContext(ctx, "llm generation completed",
		"model", i.provider.Model(),
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_tokens", resp.PromptTokens,
		"completion_tokens", resp.CompletionTokens,
		"finish_reason", resp.FinishReason)

	values, err := Coerce(req.Output, resp.Payload)
	if err != nil {
		return nil, resp, err
	}
	return values, resp, nil
}

// Coerce decodes a JSON object payload and validates it against out.
func Coerce(out schema.Schema, payload []byte) (schema.Values, error) {
	var raw map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, &OutputError{Schema: out.Name, Payload: payload, Err: err}
	}
	values, err := out.Validate(raw)
	if err != nil {
		return nil, &OutputError{Schema: out.Name, Payload: payload, Err: err}
	}
	return values, nil
}
