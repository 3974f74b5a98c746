package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"novel-board/internal/models"

	"github.com/ollama/ollama/api"
)

type ollamaProvider struct {
	client *api.Client
	model  string
}

func newOllamaProvider(cfg Config) (*ollamaProvider, error) {
	// api.NewClient ожидает URL без суффикса /v1
	baseURL := strings.TrimSuffix(strings.TrimSuffix(cfg.BaseURL, "/"), "/v1")
	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama base URL '%s': %w", baseURL, err)
	}
	return &ollamaProvider{
		client: api.NewClient(parsedURL, &http.Client{Timeout: cfg.Timeout}),
		model:  cfg.Model,
	}, nil
}

func (p *ollamaProvider) name() string { return ClientTypeOllama }

func (p *ollamaProvider) complete(ctx context.Context, messages []Message) (completion, error) {
	stream := false
	req := &api.ChatRequest{
		Model:    p.model,
		Messages: make([]api.Message, 0, len(messages)),
		Stream:   &stream,
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, api.Message{Role: m.Role, Content: m.Content})
	}

	var resp api.ChatResponse
	received := false
	err := p.client.Chat(ctx, req, func(r api.ChatResponse) error {
		resp = r
		received = true
		return nil
	})
	if err != nil {
		return completion{}, classifyOllamaError(err)
	}
	if !received {
		return completion{}, fmt.Errorf("%w: malformed response: no message", models.ErrUpstreamFailure)
	}

	return completion{
		Content:          resp.Message.Content,
		PromptTokens:     resp.PromptEvalCount,
		CompletionTokens: resp.EvalCount,
	}, nil
}

func classifyOllamaError(err error) error {
	var statusErr api.StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode == http.StatusTooManyRequests {
			return fmt.Errorf("%w: %w", models.ErrRateLimited, err)
		}
		return fmt.Errorf("%w: status %d: %w", models.ErrUpstreamFailure, statusErr.StatusCode, err)
	}
	return fmt.Errorf("%w: %w", models.ErrUpstreamFailure, err)
}
