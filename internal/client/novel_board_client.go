package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"novel-board/internal/models"

	"go.uber.org/zap"
)

// APIError - ответ сервера с кодом не 2xx.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("server responded with status %d", e.StatusCode)
	}
	return fmt.Sprintf("server responded with status %d: %s", e.StatusCode, e.Message)
}

// Unwrap сопоставляет код ответа с ошибками из models.
func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == http.StatusBadRequest:
		return models.ErrBadRequest
	case e.StatusCode == http.StatusForbidden:
		return models.ErrForbidden
	case e.StatusCode == http.StatusNotFound:
		return models.ErrNotFound
	case e.StatusCode == http.StatusTooManyRequests:
		return models.ErrRateLimited
	case e.StatusCode >= 500:
		return models.ErrUpstreamFailure
	default:
		return nil
	}
}

type novelBoardClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewNovelBoardClient создает клиент для сервера novel-board.
func NewNovelBoardClient(baseURL string, timeout time.Duration, logger *zap.Logger) (NovelBoardClient, error) {
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return nil, fmt.Errorf("invalid base URL for novel-board server: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &novelBoardClient{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.Named("NovelBoardClient"),
	}, nil
}

// doJSON отправляет in (если не nil) и декодирует ответ в out (если не nil).
func (c *novelBoardClient) doJSON(ctx context.Context, method, path string, in, out any) error {
	reqURL := c.baseURL + path
	log := c.logger.With(zap.String("method", method), zap.String("url", reqURL))

	var body io.Reader
	if in != nil {
		bodyBytes, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("internal error marshaling request: %w", err)
		}
		body = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, body)
	if err != nil {
		return fmt.Errorf("internal error creating request: %w", err)
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	log.Debug("Sending request to novel-board server")
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		log.Error("HTTP request failed", zap.Error(err))
		return fmt.Errorf("failed to communicate with novel-board server: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read novel-board server response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Warn("Received non-OK status", zap.Int("status", resp.StatusCode), zap.ByteString("body", respBody))
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(respBody)}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		log.Error("Failed to unmarshal response", zap.ByteString("body", respBody), zap.Error(err))
		return fmt.Errorf("invalid response format from novel-board server: %w", err)
	}
	return nil
}

// errorMessage достает текст ошибки из {error} или {message}.
func errorMessage(body []byte) string {
	var resp struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		return ""
	}
	if resp.Error != "" {
		return resp.Error
	}
	return resp.Message
}

func (c *novelBoardClient) generate(ctx context.Context, path string, in any) (string, error) {
	var resp models.ResultResponse
	if err := c.doJSON(ctx, http.MethodPost, path, in, &resp); err != nil {
		return "", err
	}
	return resp.Result, nil
}

func (c *novelBoardClient) GenerateIntro(ctx context.Context, characterName string) (string, error) {
	return c.generate(ctx, "/api/generate-intro", map[string]string{"characterName": characterName})
}

func (c *novelBoardClient) GenerateStory(ctx context.Context, fullStory, lastChoice string) (string, error) {
	return c.generate(ctx, "/api/generate-story", map[string]string{"fullStory": fullStory, "lastChoice": lastChoice})
}

func (c *novelBoardClient) GenerateEnding(ctx context.Context, fullStory string) (string, error) {
	return c.generate(ctx, "/api/generate-ending", map[string]string{"fullStory": fullStory})
}

func (c *novelBoardClient) GenerateChoices(ctx context.Context, lastStory string) (string, error) {
	return c.generate(ctx, "/api/generate-choice", map[string]string{"lastStory": lastStory})
}

func (c *novelBoardClient) GenerateTitle(ctx context.Context, story string) (string, error) {
	var resp models.TitleResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/generate-title", map[string]string{"story": story}, &resp); err != nil {
		return "", err
	}
	return resp.Title, nil
}

func (c *novelBoardClient) SubmitPost(ctx context.Context, post *models.Post) (int64, error) {
	if post == nil {
		return 0, errors.New("post is nil")
	}
	body := map[string]string{
		"title":     post.Title,
		"content":   post.Content,
		"author":    post.Author,
		"password":  post.Password,
		"timestamp": post.Timestamp,
	}
	var resp models.SubmitPostResponse
	if err := c.doJSON(ctx, http.MethodPost, "/api/submit-post", body, &resp); err != nil {
		return 0, err
	}
	c.logger.Info("Post submitted", zap.Int64("postID", resp.ID))
	return resp.ID, nil
}

func (c *novelBoardClient) ListPosts(ctx context.Context) ([]models.PostSummary, error) {
	var posts []models.PostSummary
	if err := c.doJSON(ctx, http.MethodGet, "/api/get-posts", nil, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *novelBoardClient) GetPost(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := c.doJSON(ctx, http.MethodGet, fmt.Sprintf("/api/get-post/%d", id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *novelBoardClient) DeletePost(ctx context.Context, id int64, password string) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/api/delete-post/%d", id), map[string]string{"password": password}, nil)
}
