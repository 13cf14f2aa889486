package embedder

import (
	"context"
	"hash/fnv"
	"strings"
)

type mock struct{ dim int }

// NewMock returns a local bag-of-words embedder for development without an
// API key. Deterministic: the same text always maps to the same vector.
func NewMock() Client { return &mock{dim: 64} }

func (m *mock) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v := make([]float32, m.dim)
		for _, w := range strings.Fields(strings.ToLower(t)) {
			h := fnv.New32a()
			h.Write([]byte(w))
			v[h.Sum32()%uint32(m.dim)]++
		}
		out[i] = v
	}
	return out, nil
}
