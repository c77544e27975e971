package oracle

import (
	"context"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/KirkDiggler/horror-bot/internal/errors"
)

// GeminiConfig configures the hosted Gemini backend
type GeminiConfig struct {
	APIKey string
	Model  string
}

// Validate checks the config
func (c *GeminiConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("APIKey", c.APIKey, vb)
	errors.ValidateRequired("Model", c.Model, vb)
	return vb.Build()
}

// GeminiProvider completes chats with Google's generative AI API
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider dials the Gemini API
func NewGeminiProvider(ctx context.Context, cfg *GeminiConfig) (*GeminiProvider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to create gemini client")
	}

	return &GeminiProvider{client: client, model: cfg.Model}, nil
}

// Close releases the underlying client
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

// Name returns the provider name
func (p *GeminiProvider) Name() string {
	return "gemini"
}

// Complete replays the history into a chat session and sends the last message
func (p *GeminiProvider) Complete(ctx context.Context, req *Request) (string, error) {
	if req == nil || len(req.Messages) == 0 {
		return "", errors.InvalidArgument("request needs at least one message")
	}

	model := p.client.GenerativeModel(p.model)
	if req.System != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
	}
	if req.JSON {
		model.ResponseMIMEType = "application/json"
	}
	if req.Temperature > 0 {
		model.SetTemperature(req.Temperature)
	}

	chat := model.StartChat()
	last := req.Messages[len(req.Messages)-1]
	for _, m := range req.Messages[:len(req.Messages)-1] {
		role := "user"
		if m.Role == "assistant" {
			role = "model"
		}
		chat.History = append(chat.History, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(m.Content)},
		})
	}

	resp, err := chat.SendMessage(ctx, genai.Text(last.Content))
	if err != nil {
		return "", errors.FromContext(err, "gemini request failed")
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", errors.Unavailable("no content returned from gemini")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		text, ok := part.(genai.Text)
		if !ok {
			return "", errors.Unavailable("unexpected response type from gemini")
		}
		sb.WriteString(string(text))
	}

	return sb.String(), nil
}
