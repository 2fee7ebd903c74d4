package llm

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type openaiProvider struct {
	client openai.Client
	model  string
}

// NewOpenAIProvider creates a Provider using chat completions with a strict
// json_schema response format.
func NewOpenAIProvider(cfg Config) (Provider, error) {
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
		model = "gpt-4o-mini"
	}

	return &openaiProvider{
		client: openai.NewClient(opts...),
		model:  model,
	}, nil
}

func (p *openaiProvider) Name() ProviderName { return ProviderOpenAI }

func (p *openaiProvider) Model() string { return p.model }

func (p *openaiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	if len(req.Safety) > 0 {
		slog.DebugContext(ctx, "safety settings not supported by provider, ignoring",
			"provider", ProviderOpenAI, "count", len(req.Safety))
	}

	schemaParam := openai.ResponseFormatJSONSchemaJSONSchemaParam{
		Name:        schemaName(req),
		Description: openai.String(req.Output.Description),
		Schema:      req.Output.JSONSchema(),
		Strict:      openai.Bool(req.Output.AllRequired()),
	}

	params := openai.ChatCompletionNewParams{
		Model: p.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: schemaParam,
			},
		},
	}
	if req.MaxTokens > 0 {
		params.MaxCompletionTokens = openai.Int(int64(req.MaxTokens))
	}
	if req.Temperature != nil {
		params.Temperature = openai.Float(*req.Temperature)
	}

	resp, err := p.client.Chat.Completions.New(ctx, params)
	if err != nil {
		invErr := &InvocationError{Provider: ProviderOpenAI, Err: err}
		var apiErr *openai.Error
		if errors.As(err, &apiErr) {
			invErr.StatusCode = apiErr.StatusCode
			invErr.Detail = apiErr.Message
		}
		return nil, invErr
	}

	if len(resp.Choices) == 0 {
		return nil, &InvocationError{Provider: ProviderOpenAI, Detail: "no choices in response"}
	}

	choice := resp.Choices[0]
	if choice.Message.Refusal != "" {
		return nil, &InvocationError{Provider: ProviderOpenAI, Detail: "model refused: " + choice.Message.Refusal}
	}

	return &Response{
		Payload:          []byte(choice.Message.Content),
		FinishReason:     string(choice.FinishReason),
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}, nil
}

func schemaName(req Request) string {
	if req.Output.Name != "" {
		return req.Output.Name
	}
	if req.Name != "" {
		return req.Name
	}
	return "output"
}
