// pkg/ai/errors.go

package ai

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// APIError is the base error for non-2xx responses from the OpenAI API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("openai: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("openai: status %d", e.StatusCode)
}

// AuthError reports an invalid or missing API key. Retrying cannot help.
type AuthError struct{ APIError }

// RateLimitError reports HTTP 429. RetryAfter is zero when the server did not
// say how long to wait.
type RateLimitError struct {
	APIError
	RetryAfter time.Duration
}

// ServerError reports a 5xx response.
type ServerError struct{ APIError }

func classifyAPIError(status int, retryAfter string, body []byte) error {
	var payload struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	_ = json.Unmarshal(body, &payload)
	base := APIError{StatusCode: status, Message: payload.Error.Message}

	switch {
	case status == 401 || status == 403:
		return &AuthError{base}
	case status == 429:
		return &RateLimitError{APIError: base, RetryAfter: parseRetryAfter(retryAfter)}
	case status >= 500:
		return &ServerError{base}
	default:
		return &base
	}
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return 0
}
