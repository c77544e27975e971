package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/KirkDiggler/horror-bot/internal/errors"
)

const defaultOllamaHTTPTimeout = 60 * time.Second

// OllamaConfig configures the local Ollama backend
type OllamaConfig struct {
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

// Validate checks the config
func (c *OllamaConfig) Validate() error {
	vb := errors.NewValidationBuilder()
	errors.ValidateRequired("BaseURL", c.BaseURL, vb)
	errors.ValidateRequired("Model", c.Model, vb)
	return vb.Build()
}

// OllamaProvider talks to the Ollama chat API without streaming
type OllamaProvider struct {
	baseURL    string
	model      string
	httpClient *http.Client
}

// NewOllamaProvider creates a provider for the given Ollama server
func NewOllamaProvider(cfg *OllamaConfig) (*OllamaProvider, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultOllamaHTTPTimeout}
	}

	return &OllamaProvider{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		model:      cfg.Model,
		httpClient: httpClient,
	}, nil
}

type ollamaChatRequest struct {
	Model    string         `json:"model"`
	Messages []Message      `json:"messages"`
	Stream   bool           `json:"stream"`
	Format   string         `json:"format,omitempty"`
	Options  *ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float32 `json:"temperature"`
}

type ollamaChatResponse struct {
	Message Message `json:"message"`
}

// Name returns the provider name
func (p *OllamaProvider) Name() string {
	return "ollama"
}

// Complete posts the request to /api/chat and returns the reply content
func (p *OllamaProvider) Complete(ctx context.Context, req *Request) (string, error) {
	if req == nil {
		return "", errors.InvalidArgument("request is required")
	}

	messages := make([]Message, 0, len(req.Messages)+1)
	if req.System != "" {
		messages = append(messages, Message{Role: "system", Content: req.System})
	}
	messages = append(messages, req.Messages...)

	body := ollamaChatRequest{
		Model:    p.model,
		Messages: messages,
		Stream:   false,
	}
	if req.JSON {
		body.Format = "json"
	}
	if req.Temperature > 0 {
		body.Options = &ollamaOptions{Temperature: req.Temperature}
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal ollama request")
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "failed to build ollama request")
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		slog.ErrorContext(ctx, "ollama request failed", "model", p.model, "error", err)
		return "", errors.FromContext(err, "ollama request failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		slog.ErrorContext(ctx, "ollama returned an error status",
			"model", p.model,
			"status", resp.StatusCode,
			"body", string(raw))
		return "", errors.Unavailable(fmt.Sprintf("ollama returned status %d", resp.StatusCode)).
			WithMeta("status", resp.StatusCode)
	}

	var decoded ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", errors.WrapWithCode(err, errors.CodeUnavailable, "failed to decode ollama response")
	}

	return decoded.Message.Content, nil
}
