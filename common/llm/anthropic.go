package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/Adv-2005/DocuGenAI/internal/schema"
)

// submitToolName is the tool the model is forced to call with its answer.
const submitToolName = "submit_output"

type anthropicProvider struct {
	client anthropic.Client
	model  string
}

// NewAnthropicProvider creates a Provider using the Anthropic Messages API.
// Structured output is obtained by forcing a tool call whose input schema is
// the output schema.
func NewAnthropicProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = "claude-sonnet-4-5-20250514"
	}

	return &anthropicProvider{
		client: anthropic.NewClient(opts...),
		model:  model,
	}, nil
}

func (p *anthropicProvider) Name() ProviderName { return ProviderAnthropic }

func (p *anthropicProvider) Model() string { return p.model }

func (p *anthropicProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if len(req.Safety) > 0 {
		slog.DebugContext(ctx, "safety settings not supported by provider, ignoring",
			"provider", ProviderAnthropic, "count", len(req.Safety))
	}

	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = 8192
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(p.model),
		MaxTokens: int64(maxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(req.Prompt)),
		},
		Tools: []anthropic.ToolUnionParam{
			{
				OfTool: &anthropic.ToolParam{
					Name:        submitToolName,
					Description: anthropic.String("Submit the final answer. " + req.Output.Description),
					InputSchema: anthropic.ToolInputSchemaParam{
						Type:       "object",
						Properties: anthropicProperties(req.Output),
						Required:   req.Output.Required(),
					},
				},
			},
		},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: submitToolName},
		},
	}
	if req.Temperature != nil {
		params.Temperature = anthropic.Float(*req.Temperature)
	}

	resp, err := p.client.Messages.New(ctx, params)
	if err != nil {
		invErr := &InvocationError{Provider: ProviderAnthropic, Err: err}
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			invErr.StatusCode = apiErr.StatusCode
		}
		return nil, invErr
	}

	for _, block := range resp.Content {
		if block.Type == "tool_use" && block.Name == submitToolName {
			return &Response{
				Payload:          []byte(block.Input),
				FinishReason:     string(resp.StopReason),
				PromptTokens:     int(resp.Usage.InputTokens),
				CompletionTokens: int(resp.Usage.OutputTokens),
			}, nil
		}
	}

	return nil, &InvocationError{
		Provider: ProviderAnthropic,
		Detail:   fmt.Sprintf("model did not call %s (stop reason %s)", submitToolName, resp.StopReason),
	}
}

func anthropicProperties(s schema.Schema) map[string]any {
	props := make(map[string]any, len(s.Fields))
	for _, f := range s.Fields {
		prop := map[string]any{"type": "string"}
		if f.Kind == schema.KindStringArray {
			prop = map[string]any{"type": "array", "items": map[string]any{"type": "string"}}
		}
		if f.Description != "" {
			prop["description"] = f.Description
		}
		props[f.Name] = prop
	}
	return props
}
