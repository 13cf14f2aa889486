package service

import "context"

// KBService keeps one in-memory embedding index per course section.
type KBService interface {
	// EnsureSection builds the section's index once per process. An empty
	// docPath or an unreadable document concludes the section as empty;
	// an embedding failure is returned and retried on the next call.
	EnsureSection(ctx context.Context, sectionID, docPath string) error
	// BestChunk returns the most similar chunk text for a query vector,
	// or "" when the section has no usable index.
	BestChunk(queryVec []float32, sectionID string) string
	// Stats reports chunk counts for every concluded section.
	Stats() map[string]int
}
