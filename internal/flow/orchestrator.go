package flow

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/Adv-2005/DocuGenAI/common/llm"
	"github.com/Adv-2005/DocuGenAI/common/logger"
	"github.com/Adv-2005/DocuGenAI/internal/schema"
)

// State is a step of a single flow run. Runs move strictly forward through
// Validating, Rendering, Invoking and Done, or stop at Failed.
type State string

const (
	StateValidating State = "validating"
	StateRendering  State = "rendering"
	StateInvoking   State = "invoking"
	StateDone       State = "done"
	StateFailed     State = "failed"
)

// Event is emitted on every state change. Prompt is set from Invoking on.
type Event struct {
	Flow   string
	State  State
	Prompt string
	Err    error
}

// Observer receives state changes synchronously, in order.
type Observer func(ctx context.Context, e Event)

// Usage reports provider token counts for a run.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

type Result struct {
	Flow   string
	Output schema.Values
	Prompt string
	Usage  Usage
}

type Option func(*Orchestrator)

func WithObserver(obs Observer) Option {
	return func(o *Orchestrator) { o.observer = obs }
}

func WithMaxTokens(n int) Option {
	return func(o *Orchestrator) { o.maxTokens = n }
}

func WithTemperature(t *float64) Option {
	return func(o *Orchestrator) { o.temperature = t }
}

// Orchestrator runs flows against an injected model invoker. It keeps no
// state between runs and is safe for concurrent use.
type Orchestrator struct {
	invoker     llm.Invoker
	observer    Observer
	maxTokens   int
	temperature *float64
}

func New(invoker llm.Invoker, opts ...Option) *Orchestrator {
	o := &Orchestrator{invoker: invoker}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Run performs one Validating, Rendering, Invoking sequence. Errors are
// returned unchanged: *schema.ValidationError, *llm.InvocationError or
// *llm.OutputError.
func (o *Orchestrator) Run(ctx context.Context, def *Definition, raw map[string]any) (*Result, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Flow:      logger.Ptr(def.Name),
		Component: "docugen.flow",
	})
	sc := logger.StartSpan(ctx, "flow.run", trace.WithAttributes(attribute.String("flow", def.Name)))
	defer sc.End()
	ctx = sc.Context()

	start := time.Now()

	text, err := o.render(ctx, def, raw)
	if err != nil {
		sc.RecordError(err)
		return nil, err
	}

	o.emit(ctx, Event{Flow: def.Name, State: StateInvoking, Prompt: text})
	output, resp, err := o.invoker.Invoke(ctx, llm.Request{
		Name:        def.Name,
		Prompt:      text,
		Output:      def.Output,
		Safety:      def.Safety,
		MaxTokens:   o.maxTokens,
		Temperature: o.temperature,
	})
	if err != nil {
		o.fail(ctx, def, text, err)
		sc.RecordError(err)
		return nil, err
	}

	result := &Result{Flow: def.Name, Output: output, Prompt: text}
	if resp != nil {
		result.Usage = Usage{PromptTokens: resp.PromptTokens, CompletionTokens: resp.CompletionTokens}
	}

	o.emit(ctx, Event{Flow: def.Name, State: StateDone, Prompt: text})
	slog.InfoContext(ctx, "flow completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_chars", len(text),
		"prompt_tokens", result.Usage.PromptTokens,
		"completion_tokens", result.Usage.CompletionTokens)

	return result, nil
}

// Render validates raw and returns the prompt without calling the model.
func (o *Orchestrator) Render(ctx context.Context, def *Definition, raw map[string]any) (string, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Flow:      logger.Ptr(def.Name),
		Component: "docugen.flow",
	})
	return o.render(ctx, def, raw)
}

func (o *Orchestrator) render(ctx context.Context, def *Definition, raw map[string]any) (string, error) {
	o.emit(ctx, Event{Flow: def.Name, State: StateValidating})
	values, err := def.Input.Validate(raw)
	if err != nil {
		o.fail(ctx, def, "", err)
		return "", err
	}

	o.emit(ctx, Event{Flow: def.Name, State: StateRendering})
	return def.Template.Render(def.Input, values), nil
}

func (o *Orchestrator) fail(ctx context.Context, def *Definition, text string, err error) {
	o.emit(ctx, Event{Flow: def.Name, State: StateFailed, Prompt: text, Err: err})
	slog.WarnContext(ctx, "flow failed", "error", err)
}

func (o *Orchestrator) emit(ctx context.Context, e Event) {
	slog.DebugContext(logger.WithLogFields(ctx, logger.LogFields{FlowState: logger.Ptr(string(e.State))}),
		"flow state changed")
	if o.observer != nil {
		o.observer(ctx, e)
	}
}
