// pkg/ai/client.go

package ai

import "context"

type CompletionRequest struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

type Completion struct {
	Text        string
	TotalTokens int
}

type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (*Completion, error)
}
