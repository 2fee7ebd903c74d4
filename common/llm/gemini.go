package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/Adv-2005/DocuGenAI/internal/schema"
)

const defaultGeminiModel = "gemini-2.5-flash"

type geminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a Provider backed by the Gemini API. Output
// schemas and safety settings are passed through natively.
func NewGeminiProvider(ctx context.Context, cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &geminiProvider{client: client, model: model}, nil
}

func (p *geminiProvider) Name() ProviderName { return ProviderGemini }

func (p *geminiProvider) Model() string { return p.model }

func (p *geminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	genCfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   GeminiSchema(req.Output),
		SafetySettings:   GeminiSafetySettings(req.Safety),
	}
	if req.MaxTokens > 0 {
		genCfg.MaxOutputTokens = int32(req.MaxTokens)
	}
	if req.Temperature != nil {
		t := float32(*req.Temperature)
		genCfg.Temperature = &t
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.model, genai.Text(req.Prompt), genCfg)
	if err != nil {
		return nil, p.invocationError(err)
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
		return nil, &InvocationError{
			Provider: ProviderGemini,
			Detail:   fmt.Sprintf("prompt blocked: %s %s", fb.BlockReason, fb.BlockReasonMessage),
		}
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0] == nil {
		return nil, &InvocationError{Provider: ProviderGemini, Detail: "no candidates in response"}
	}

	// A safety stop usually comes without content.
	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, &InvocationError{Provider: ProviderGemini, Detail: "response blocked by safety settings"}
	}
	if candidate.Content == nil {
		return nil, &InvocationError{Provider: ProviderGemini, Detail: "no content in response"}
	}

	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part == nil || part.Thought {
			continue
		}
		text.WriteString(part.Text)
	}

	out := &Response{
		Payload:      []byte(text.String()),
		FinishReason: string(candidate.FinishReason),
	}
	if usage := resp.UsageMetadata; usage != nil {
		out.PromptTokens = int(usage.PromptTokenCount)
		out.CompletionTokens = int(usage.CandidatesTokenCount)
	}
	return out, nil
}

func (p *geminiProvider) invocationError(err error) error {
	invErr := &InvocationError{Provider: ProviderGemini, Err: err}

	var apiErr genai.APIError
	var apiErrPtr *genai.APIError
	switch {
	case errors.As(err, &apiErr):
		invErr.StatusCode = apiErr.Code
		invErr.Detail = apiErr.Message
	case errors.As(err, &apiErrPtr):
		invErr.StatusCode = apiErrPtr.Code
		invErr.Detail = apiErrPtr.Message
	}
	return invErr
}

// GeminiSchema converts a flow schema to the Gemini response schema with
// the declared property order.
func GeminiSchema(s schema.Schema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Fields))
	for _, f := range s.Fields {
		fs := &genai.Schema{Type: genai.TypeString, Description: f.Description}
		if f.Kind == schema.KindStringArray {
			fs = &genai.Schema{
				Type:        genai.TypeArray,
				Description: f.Description,
				Items:       &genai.Schema{Type: genai.TypeString},
			}
		}
		props[f.Name] = fs
	}

	return &genai.Schema{
		Type:             genai.TypeObject,
		Description:      s.Description,
		Properties:       props,
		Required:         s.Required(),
		PropertyOrdering: s.Names(),
	}
}

// GeminiSafetySettings converts settings in category order.
func GeminiSafetySettings(s SafetySettings) []*genai.SafetySetting {
	if len(s) == 0 {
		return nil
	}
	sorted := s.Sorted()
	out := make([]*genai.SafetySetting, len(sorted))
	for i, setting := range sorted {
		out[i] = &genai.SafetySetting{
			Category:  genai.HarmCategory(setting.Category),
			Threshold: genai.HarmBlockThreshold(setting.Threshold),
		}
	}
	return out
}
