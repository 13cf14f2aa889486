package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Path  string
	Auth  string
	Model string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
}

func TestCompleteParsesChoiceAndUsage(t *testing.T) {
	var got capturedRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.Path = r.URL.Path
		got.Auth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]string{"role": "assistant", "content": "  a hint  "}}},
			"usage":   map[string]int{"total_tokens": 42},
		})
	}))
	defer srv.Close()

	c := NewOpenAI(srv.URL, "sk-test", "gpt-3.5-turbo")
	comp, err := c.Complete(context.Background(), CompletionRequest{System: "sys", User: "usr", MaxTokens: 1000, Temperature: 0.7})
	require.NoError(t, err)
	assert.Equal(t, "a hint", comp.Text, "surrounding whitespace is trimmed")
	assert.Equal(t, 42, comp.TotalTokens)

	assert.Equal(t, "/v1/chat/completions", got.Path)
	assert.Equal(t, "Bearer sk-test", got.Auth)
	assert.Equal(t, "gpt-3.5-turbo", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "sys", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "usr", got.Messages[1].Content)
	assert.Equal(t, 1000, got.MaxTokens)
	assert.InDelta(t, 0.7, got.Temperature, 1e-9)
}

func errStatusServer(status int, header http.Header, msg string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for k, vals := range header {
			for _, v := range vals {
				w.Header().Add(k, v)
			}
		}
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(map[string]any{"error": map[string]string{"message": msg}})
	}))
}

func TestCompleteClassifiesAuthError(t *testing.T) {
	srv := errStatusServer(401, nil, "invalid api key")
	defer srv.Close()

	_, err := NewOpenAI(srv.URL, "bad", "m").Complete(context.Background(), CompletionRequest{User: "hi"})

	var authErr *AuthError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, 401, authErr.StatusCode)
	assert.Contains(t, authErr.Error(), "invalid api key")
}

func TestCompleteClassifiesRateLimit(t *testing.T) {
	srv := errStatusServer(429, http.Header{"Retry-After": {"7"}}, "slow down")
	defer srv.Close()

	_, err := NewOpenAI(srv.URL, "k", "m").Complete(context.Background(), CompletionRequest{User: "hi"})

	var rl *RateLimitError
	require.ErrorAs(t, err, &rl)
	assert.Equal(t, 429, rl.StatusCode)
	assert.Equal(t, 7*time.Second, rl.RetryAfter)
}

func TestCompleteClassifiesServerError(t *testing.T) {
	srv := errStatusServer(503, nil, "overloaded")
	defer srv.Close()

	_, err := NewOpenAI(srv.URL, "k", "m").Complete(context.Background(), CompletionRequest{User: "hi"})

	var serverErr *ServerError
	require.ErrorAs(t, err, &serverErr)
	assert.Equal(t, 503, serverErr.StatusCode)
}

func TestCompleteBadRequestStaysPlainAPIError(t *testing.T) {
	srv := errStatusServer(400, nil, "bad request")
	defer srv.Close()

	_, err := NewOpenAI(srv.URL, "k", "m").Complete(context.Background(), CompletionRequest{User: "hi"})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
	var rl *RateLimitError
	assert.False(t, errors.As(err, &rl))
	var authErr *AuthError
	assert.False(t, errors.As(err, &authErr))
}

func TestCompleteRejectsEmptyChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer srv.Close()

	_, err := NewOpenAI(srv.URL, "k", "m").Complete(context.Background(), CompletionRequest{User: "hi"})
	assert.EqualError(t, err, "no choices")
}

func TestParseRetryAfter(t *testing.T) {
	assert.Equal(t, time.Duration(0), parseRetryAfter(""))
	assert.Equal(t, time.Duration(0), parseRetryAfter("soon"))
	assert.Equal(t, time.Duration(0), parseRetryAfter("-2"))
	assert.Equal(t, 3*time.Second, parseRetryAfter("3"))
}
