// Package ai выполняет запросы к API генерации текста (OpenAI-совместимому или Ollama)
// под управлением единой политики повторов.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"novel-board/internal/models"
	"novel-board/internal/retry"

	"go.uber.org/zap"
)

// ErrGenerationFailed возвращается, когда все попытки генерации провалились.
var ErrGenerationFailed = errors.New("text generation failed")

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"

	ClientTypeOpenAI = "openai"
	ClientTypeOllama = "ollama"
)

// Message - одно сообщение диалога с ролью.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client - логический запрос к модели. Повторы выполняются внутри.
type Client interface {
	Generate(ctx context.Context, messages []Message) (string, error)
}

// Config содержит настройки клиента генерации.
type Config struct {
	ClientType  string
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration // таймаут одной попытки
	MaxAttempts int
	RetryDelay  time.Duration
}

// completion - результат одной успешной попытки.
type completion struct {
	Content          string
	PromptTokens     int
	CompletionTokens int
}

// provider выполняет ровно одну попытку запроса.
type provider interface {
	complete(ctx context.Context, messages []Message) (completion, error)
	name() string
}

// retryingClient оборачивает provider политикой повторов и метриками.
type retryingClient struct {
	provider provider
	model    string
	policy   retry.Policy
	logger   *zap.Logger
}

// NewClient создает клиент в зависимости от cfg.ClientType.
func NewClient(cfg Config, logger *zap.Logger) (Client, error) {
	if cfg.Model == "" {
		return nil, errors.New("AI model is not configured")
	}
	log := logger.Named("AIClient")

	var p provider
	var err error
	switch strings.ToLower(cfg.ClientType) {
	case ClientTypeOpenAI, "":
		p, err = newOpenAIProvider(cfg)
	case ClientTypeOllama:
		p, err = newOllamaProvider(cfg)
	default:
		return nil, fmt.Errorf("unknown AI client type: '%s'", cfg.ClientType)
	}
	if err != nil {
		return nil, err
	}

	log.Info("AI client created",
		zap.String("provider", p.name()),
		zap.String("base_url", cfg.BaseURL),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout),
		zap.Int("max_attempts", cfg.MaxAttempts),
		zap.Duration("retry_delay", cfg.RetryDelay),
	)
	return newRetryingClient(p, cfg, log), nil
}

func newRetryingClient(p provider, cfg Config, log *zap.Logger) *retryingClient {
	return &retryingClient{
		provider: p,
		model:    cfg.Model,
		policy:   retry.Fixed(cfg.MaxAttempts, cfg.RetryDelay),
		logger:   log,
	}
}

// Generate отправляет сообщения и возвращает обрезанный текст первого варианта ответа.
// Пустой ответ модели считается успехом.
func (c *retryingClient) Generate(ctx context.Context, messages []Message) (string, error) {
	var result completion
	start := time.Now()

	err := c.policy.Do(ctx, func(ctx context.Context, attempt int) error {
		attemptStart := time.Now()
		res, err := c.provider.complete(ctx, messages)
		aiRequestDuration.WithLabelValues(c.model).Observe(time.Since(attemptStart).Seconds())
		if err != nil {
			fields := []zap.Field{
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", c.policy.MaxAttempts),
				zap.Error(err),
			}
			switch {
			case ctx.Err() != nil:
				aiRequestsTotal.WithLabelValues(c.model, "cancelled").Inc()
			case IsRateLimited(err):
				aiRequestsTotal.WithLabelValues(c.model, "rate_limited").Inc()
				c.logger.Warn("AI provider rate limited the request", fields...)
			default:
				aiRequestsTotal.WithLabelValues(c.model, "error").Inc()
				c.logger.Error("AI request attempt failed", fields...)
			}
			return err
		}
		aiRequestsTotal.WithLabelValues(c.model, "success").Inc()
		result = res
		return nil
	})

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil && errors.Is(err, ctxErr) {
			aiGenerationsTotal.WithLabelValues(c.model, "cancelled").Inc()
			return "", err
		}
		aiGenerationsTotal.WithLabelValues(c.model, "failed").Inc()
		c.logger.Error("AI generation failed", zap.Duration("elapsed", time.Since(start)), zap.Error(err))
		return "", fmt.Errorf("%w: %w", ErrGenerationFailed, err)
	}

	aiGenerationsTotal.WithLabelValues(c.model, "success").Inc()
	c.observeUsage(messages, result)

	text := strings.TrimSpace(result.Content)
	c.logger.Debug("AI generation completed",
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("response_length", len(text)),
	)
	return text, nil
}

func (c *retryingClient) observeUsage(messages []Message, res completion) {
	prompt, compl := res.PromptTokens, res.CompletionTokens
	if prompt == 0 && compl == 0 {
		var ok bool
		prompt, compl, ok = estimateTokens(c.model, messages, res.Content)
		if !ok {
			c.logger.Debug("Token usage unavailable, skipping token metrics")
			return
		}
	}
	aiPromptTokens.WithLabelValues(c.model).Observe(float64(prompt))
	aiCompletionTokens.WithLabelValues(c.model).Observe(float64(compl))
}

// IsRateLimited сообщает, была ли ошибка вызвана ответом 429.
func IsRateLimited(err error) bool {
	return errors.Is(err, models.ErrRateLimited)
}
