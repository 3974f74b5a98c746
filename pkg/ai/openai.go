package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"novel-board/internal/models"

	openaigo "github.com/sashabaranov/go-openai"
)

type openAIProvider struct {
	client *openaigo.Client
	model  string
}

func newOpenAIProvider(cfg Config) (*openAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("AI API key is not configured")
	}
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		openaiConfig.BaseURL = cfg.BaseURL
	}
	openaiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	return &openAIProvider{
		client: openaigo.NewClientWithConfig(openaiConfig),
		model:  cfg.Model,
	}, nil
}

func (p *openAIProvider) name() string { return ClientTypeOpenAI }

func (p *openAIProvider) complete(ctx context.Context, messages []Message) (completion, error) {
	req := openaigo.ChatCompletionRequest{
		Model:    p.model,
		Messages: make([]openaigo.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openaigo.ChatCompletionMessage{Role: m.Role, Content: m.Content})
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return completion{}, classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return completion{}, fmt.Errorf("%w: malformed response: no choices", models.ErrUpstreamFailure)
	}

	return completion{
		Content:          resp.Choices[0].Message.Content,
		PromptTokens:     resp.Usage.PromptTokens,
		CompletionTokens: resp.Usage.CompletionTokens,
	}, nil
}

func classifyOpenAIError(err error) error {
	status := 0
	var apiErr *openaigo.APIError
	var reqErr *openaigo.RequestError
	switch {
	case errors.As(err, &apiErr):
		status = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		status = reqErr.HTTPStatusCode
	}
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%w: %w", models.ErrRateLimited, err)
	}
	if status != 0 {
		return fmt.Errorf("%w: status %d: %w", models.ErrUpstreamFailure, status, err)
	}
	return fmt.Errorf("%w: %w", models.ErrUpstreamFailure, err)
}
