// pkg/ai/mock_client.go

package ai

import (
	"context"
	"strings"
)

type mockClient struct{}

// NewMock returns a canned client for development without an API key.
func NewMock() Client { return &mockClient{} }

func (m *mockClient) Complete(_ context.Context, req CompletionRequest) (*Completion, error) {
	hint := "Think about which quantities the question gives you and which formula links them. Set up the calculation step by step before plugging in numbers. (mock)"
	low := strings.ToLower(req.User)
	switch {
	case strings.Contains(low, "eoq"):
		hint = "Recall how ordering cost and holding cost trade off against each other. The EOQ formula balances exactly those two terms. (mock)"
	case strings.Contains(low, "safety"):
		hint = "Start from the service level: which z-value corresponds to it, and how does demand variability over the lead time enter the formula? (mock)"
	case strings.Contains(low, "container"):
		hint = "Check both constraints: how many containers does the weight require, and how many does the volume require? The larger number is binding. (mock)"
	}
	return &Completion{Text: hint}, nil
}
