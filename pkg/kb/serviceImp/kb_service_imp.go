package serviceImp

import (
	"context"
	"fmt"
	"log"
	"math"
	"sync"

	"scls/pkg/kb/embedder"
	"scls/pkg/kb/extract"
)

// sectionIndex holds parallel chunk and vector slices for one section.
// checked means initialization concluded: populated, or legitimately empty
// (missing document, no usable chunks). An embedding failure leaves the index
// unchecked so the next request retries.
type sectionIndex struct {
	mu      sync.Mutex
	checked bool
	chunks  []string
	vectors [][]float32
}

type Svc struct {
	mu       sync.RWMutex
	sections map[string]*sectionIndex
	emb      embedder.Client
}

func New(emb embedder.Client) *Svc {
	return &Svc{sections: make(map[string]*sectionIndex), emb: emb}
}

func (s *Svc) index(sectionID string) *sectionIndex {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx, ok := s.sections[sectionID]
	if !ok {
		idx = &sectionIndex{}
		s.sections[sectionID] = idx
	}
	return idx
}

// EnsureSection builds the embedding index for a section at most once per
// process. Safe to call concurrently; different sections build independently.
func (s *Svc) EnsureSection(ctx context.Context, sectionID, docPath string) error {
	idx := s.index(sectionID)
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if idx.checked {
		return nil
	}

	if docPath == "" {
		idx.checked = true
		return nil
	}
	text, err := extract.Text(docPath)
	if err != nil {
		// a missing document is not fatal: the section just has no context
		log.Printf("[kb] %s: %v", sectionID, err)
		idx.checked = true
		return nil
	}
	chunks := splitChunks(text)
	if len(chunks) == 0 {
		idx.checked = true
		return nil
	}

	vecs, err := s.emb.Embed(ctx, chunks)
	if err != nil {
		return fmt.Errorf("embed %s: %w", sectionID, err)
	}
	if len(vecs) != len(chunks) {
		return fmt.Errorf("embed %s: got %d vectors for %d chunks", sectionID, len(vecs), len(chunks))
	}
	idx.chunks = chunks
	idx.vectors = vecs
	idx.checked = true
	log.Printf("[kb] %s: indexed %d chunks", sectionID, len(chunks))
	return nil
}

// BestChunk returns the most similar chunk for a query vector, or "" when the
// section has no usable index. Ties keep the earliest chunk.
func (s *Svc) BestChunk(queryVec []float32, sectionID string) string {
	s.mu.RLock()
	idx, ok := s.sections[sectionID]
	s.mu.RUnlock()
	if !ok {
		return ""
	}
	idx.mu.Lock()
	defer idx.mu.Unlock()
	if !idx.checked || len(idx.chunks) == 0 {
		return ""
	}

	best := -1
	bestScore := 0.0
	for i, vec := range idx.vectors {
		if sc := cosine(queryVec, vec); best == -1 || sc > bestScore {
			best, bestScore = i, sc
		}
	}
	if best == -1 {
		return ""
	}
	return idx.chunks[best]
}

// Stats reports chunk counts for every concluded section.
func (s *Svc) Stats() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.sections))
	for id, idx := range s.sections {
		idx.mu.Lock()
		if idx.checked {
			out[id] = len(idx.chunks)
		}
		idx.mu.Unlock()
	}
	return out
}

func cosine(a, b []float32) float64 {
	var dot, na, nb float64
	for i := 0; i < len(a) && i < len(b); i++ {
		dot += float64(a[i] * b[i])
		na += float64(a[i] * a[i])
		nb += float64(b[i] * b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
