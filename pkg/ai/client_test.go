package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"novel-board/internal/models"
	"novel-board/internal/retry"

	"github.com/ollama/ollama/api"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func completionBody(content string) []byte {
	body, _ := json.Marshal(map[string]any{
		"id":      "chatcmpl-1",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   "gpt-4o",
		"choices": []map[string]any{{
			"index":         0,
			"message":       map[string]any{"role": "assistant", "content": "  " + content + "  "},
			"finish_reason": "stop",
		}},
		"usage": map[string]any{"prompt_tokens": 12, "completion_tokens": 4, "total_tokens": 16},
	})
	return body
}

type fakeOpenAI struct {
	server   *httptest.Server
	calls    atomic.Int32
	lastBody atomic.Value
}

// newFakeOpenAI отвечает по очереди статусами из statuses, затем 200 с content.
func newFakeOpenAI(t *testing.T, content string, statuses ...int) *fakeOpenAI {
	t.Helper()
	f := &fakeOpenAI{}
	f.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := int(f.calls.Add(1))
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.lastBody.Store(body)

		w.Header().Set("Content-Type", "application/json")
		if n <= len(statuses) {
			w.WriteHeader(statuses[n-1])
			_, _ = w.Write([]byte(`{"error": {"message": "upstream says no", "type": "test_error"}}`))
			return
		}
		_, _ = w.Write(completionBody(content))
	}))
	t.Cleanup(f.server.Close)
	return f
}

func newTestOpenAIClient(t *testing.T, baseURL string, maxAttempts int) Client {
	t.Helper()
	c, err := NewClient(Config{
		ClientType:  ClientTypeOpenAI,
		APIKey:      "sk-test",
		BaseURL:     baseURL,
		Model:       "gpt-4o",
		Timeout:     5 * time.Second,
		MaxAttempts: maxAttempts,
		RetryDelay:  time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)
	return c
}

var testMessages = []Message{{Role: RoleUser, Content: "안녕"}}

func TestGenerate_Success(t *testing.T) {
	fake := newFakeOpenAI(t, "이야기가 시작된다")
	client := newTestOpenAIClient(t, fake.server.URL, 5)

	text, err := client.Generate(context.Background(), []Message{
		{Role: RoleSystem, Content: "sys"},
		{Role: RoleUser, Content: "user"},
	})
	require.NoError(t, err)
	assert.Equal(t, "이야기가 시작된다", text)
	assert.EqualValues(t, 1, fake.calls.Load())

	body := fake.lastBody.Load().(map[string]any)
	assert.Equal(t, "gpt-4o", body["model"])
	msgs := body["messages"].([]any)
	require.Len(t, msgs, 2)
	assert.Equal(t, "system", msgs[0].(map[string]any)["role"])
	assert.Equal(t, "user", msgs[1].(map[string]any)["content"])
}

func TestGenerate_RetriesRateLimitThenSucceeds(t *testing.T) {
	for n := 1; n < 5; n++ {
		statuses := make([]int, n)
		for i := range statuses {
			statuses[i] = http.StatusTooManyRequests
		}
		fake := newFakeOpenAI(t, "ok", statuses...)
		client := newTestOpenAIClient(t, fake.server.URL, 5)

		text, err := client.Generate(context.Background(), testMessages)
		require.NoError(t, err)
		assert.Equal(t, "ok", text)
		assert.EqualValues(t, n+1, fake.calls.Load(), "rate limited %d times", n)
	}
}

func TestGenerate_RetriesServerErrors(t *testing.T) {
	fake := newFakeOpenAI(t, "ok", http.StatusInternalServerError, http.StatusBadGateway)
	client := newTestOpenAIClient(t, fake.server.URL, 5)

	text, err := client.Generate(context.Background(), testMessages)
	require.NoError(t, err)
	assert.Equal(t, "ok", text)
	assert.EqualValues(t, 3, fake.calls.Load())
}

func TestGenerate_ExhaustsAttempts(t *testing.T) {
	statuses := []int{429, 429, 429, 429, 429, 429, 429}
	fake := newFakeOpenAI(t, "never", statuses...)
	client := newTestOpenAIClient(t, fake.server.URL, 5)

	_, err := client.Generate(context.Background(), testMessages)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, retry.ErrExhausted)
	assert.True(t, IsRateLimited(err))
	assert.EqualValues(t, 5, fake.calls.Load())
}

func TestGenerate_EmptyChoicesIsRetried(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "x", "object": "chat.completion", "choices": []}`))
	}))
	defer server.Close()
	client := newTestOpenAIClient(t, server.URL, 3)

	_, err := client.Generate(context.Background(), testMessages)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.ErrorIs(t, err, models.ErrUpstreamFailure)
	assert.EqualValues(t, 3, calls.Load())
}

func TestGenerate_EmptyContentIsSuccess(t *testing.T) {
	fake := newFakeOpenAI(t, "   ")
	client := newTestOpenAIClient(t, fake.server.URL, 5)

	text, err := client.Generate(context.Background(), testMessages)
	require.NoError(t, err)
	assert.Equal(t, "", text)
	assert.EqualValues(t, 1, fake.calls.Load())
}

func TestGenerate_ContextCancelStopsRetries(t *testing.T) {
	fake := newFakeOpenAI(t, "never", 500, 500, 500, 500, 500)
	c, err := NewClient(Config{
		ClientType:  ClientTypeOpenAI,
		APIKey:      "sk-test",
		BaseURL:     fake.server.URL,
		Model:       "gpt-4o",
		Timeout:     5 * time.Second,
		MaxAttempts: 5,
		RetryDelay:  time.Hour,
	}, zap.NewNop())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Generate(ctx, testMessages)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, ErrGenerationFailed)
	assert.EqualValues(t, 1, fake.calls.Load())
}

func TestNewClient_Validation(t *testing.T) {
	_, err := NewClient(Config{ClientType: ClientTypeOpenAI, Model: "gpt-4o"}, zap.NewNop())
	assert.Error(t, err, "missing key")

	_, err = NewClient(Config{ClientType: "bard", APIKey: "k", Model: "m"}, zap.NewNop())
	assert.ErrorContains(t, err, "unknown AI client type")

	_, err = NewClient(Config{ClientType: ClientTypeOpenAI, APIKey: "k"}, zap.NewNop())
	assert.Error(t, err, "missing model")
}

func TestOllama_Success(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "/api/chat", r.URL.Path)
		var req api.ChatRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "llama3", req.Model)
		if assert.NotNil(t, req.Stream) {
			assert.False(t, *req.Stream)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"model":"llama3","created_at":"2024-01-01T00:00:00Z","message":{"role":"assistant","content":" 미래의 나 \n"},"done":true,"prompt_eval_count":10,"eval_count":5}` + "\n"))
	}))
	defer server.Close()

	client, err := NewClient(Config{
		ClientType:  ClientTypeOllama,
		BaseURL:     server.URL + "/v1",
		Model:       "llama3",
		Timeout:     5 * time.Second,
		MaxAttempts: 2,
		RetryDelay:  time.Millisecond,
	}, zap.NewNop())
	require.NoError(t, err)

	text, err := client.Generate(context.Background(), testMessages)
	require.NoError(t, err)
	assert.Equal(t, "미래의 나", text)
	assert.EqualValues(t, 1, calls.Load())
}

func TestClassifyErrors(t *testing.T) {
	rateLimited := classifyOllamaError(api.StatusError{StatusCode: http.StatusTooManyRequests, Status: "429 Too Many Requests"})
	assert.True(t, IsRateLimited(rateLimited))

	serverErr := classifyOllamaError(api.StatusError{StatusCode: http.StatusInternalServerError})
	assert.False(t, IsRateLimited(serverErr))
	assert.ErrorIs(t, serverErr, models.ErrUpstreamFailure)

	netErr := classifyOpenAIError(errors.New("connection refused"))
	assert.ErrorIs(t, netErr, models.ErrUpstreamFailure)
	assert.False(t, IsRateLimited(netErr))
}
