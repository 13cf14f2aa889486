package serviceImp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scls/entities"
	"scls/pkg/ai"
	"scls/pkg/chat/service"
	"scls/pkg/ratelimit"
	"scls/pkg/section"
)

type fakeKB struct {
	ensured []string
	chunk   string
}

func (f *fakeKB) EnsureSection(_ context.Context, sectionID, _ string) error {
	f.ensured = append(f.ensured, sectionID)
	return nil
}
func (f *fakeKB) BestChunk(_ []float32, _ string) string { return f.chunk }
func (f *fakeKB) Stats() map[string]int                  { return nil }

type fakeEmbedder struct {
	err   error
	calls int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0, 0}
	}
	return out, nil
}

type step struct {
	comp *ai.Completion
	err  error
}

type scriptedLLM struct {
	steps []step
	reqs  []ai.CompletionRequest
}

func (s *scriptedLLM) Complete(_ context.Context, req ai.CompletionRequest) (*ai.Completion, error) {
	s.reqs = append(s.reqs, req)
	i := len(s.reqs) - 1
	if i >= len(s.steps) {
		i = len(s.steps) - 1
	}
	return s.steps[i].comp, s.steps[i].err
}

type memChats struct{ saved []entities.Chat }

func (m *memChats) Save(c *entities.Chat) error { m.saved = append(m.saved, *c); return nil }
func (m *memChats) ListByEmail(string, string) ([]entities.Chat, error) {
	return m.saved, nil
}

type failingChats struct{ attempts int }

func (f *failingChats) Save(*entities.Chat) error { f.attempts++; return errors.New("disk full") }
func (f *failingChats) ListByEmail(string, string) ([]entities.Chat, error) { return nil, nil }

type fixture struct {
	svc     *HintSvc
	llm     *scriptedLLM
	kb      *fakeKB
	emb     *fakeEmbedder
	chats   *memChats
	limiter *ratelimit.Limiter
	delays  []int
}

func newFixture(steps ...step) *fixture {
	f := &fixture{
		llm:     &scriptedLLM{steps: steps},
		kb:      &fakeKB{chunk: "EOQ balances ordering and holding cost."},
		emb:     &fakeEmbedder{},
		chats:   &memChats{},
		limiter: ratelimit.New(100, 500000),
	}
	reg := section.NewRegistry(section.NewCh3("docs"), section.NewSevenEleven("docs", ""), section.NewDragonFire())
	f.svc = NewHintService(reg, f.kb, f.emb, f.llm, f.limiter, f.chats)
	f.svc.retryDelay = func(attempt int) { f.delays = append(f.delays, attempt) }
	return f
}

func hintReq(email string) service.Request {
	return service.Request{
		Email:             email,
		SectionID:         section.Ch3ID,
		Question:          "how do I compute EOQ",
		AssignmentContext: "Part A: Economic Order Quantity",
	}
}

func TestHintHappyPath(t *testing.T) {
	f := newFixture(step{comp: &ai.Completion{Text: "Start from the EOQ formula and identify D, S, and H.", TotalTokens: 321}})

	got := f.svc.Hint(context.Background(), hintReq("alice@whu.edu"))

	assert.Equal(t, "Start from the EOQ formula and identify D, S, and H.", got)
	require.Len(t, f.llm.reqs, 1)
	req := f.llm.reqs[0]
	assert.Contains(t, req.System, "inventory management models")
	assert.Contains(t, req.User, "Context: EOQ balances ordering and holding cost.")
	assert.Contains(t, req.User, "Assignment Question: Part A: Economic Order Quantity")
	assert.Contains(t, req.User, "Student Query: how do I compute EOQ")
	assert.Equal(t, 1000, req.MaxTokens)

	assert.Equal(t, []string{section.Ch3ID}, f.kb.ensured)
	assert.Equal(t, 321, f.limiter.Status("alice@whu.edu").TokensLastDay)

	require.Len(t, f.chats.saved, 1)
	saved := f.chats.saved[0]
	assert.Equal(t, "alice@whu.edu", saved.Email)
	assert.Equal(t, section.Ch3ID, saved.Section)
	assert.Equal(t, got, saved.BotResponse)
}

func TestHintBudgetRejectionShortCircuits(t *testing.T) {
	f := newFixture(step{comp: &ai.Completion{Text: "should never be reached"}})
	f.limiter = ratelimit.New(1, 500000)
	f.svc.limiter = f.limiter
	f.limiter.Record("bob@whu.edu", 100)

	got := f.svc.Hint(context.Background(), hintReq("bob@whu.edu"))

	assert.Equal(t, "Rate limit exceeded: Max 1 queries per hour. Please try again later.", got)
	assert.Empty(t, f.llm.reqs, "completion service must not be called")
	assert.Zero(t, f.emb.calls)
	require.Len(t, f.chats.saved, 1, "apologies are persisted too")
	assert.Equal(t, got, f.chats.saved[0].BotResponse)
}

func TestHintEmbeddingFailure(t *testing.T) {
	f := newFixture(step{comp: &ai.Completion{Text: "unused"}})
	f.emb.err = errors.New("dial tcp: connection refused")

	got := f.svc.Hint(context.Background(), hintReq("alice@whu.edu"))

	assert.Equal(t, "I'm having trouble processing your question right now. Please try again in a few moments.", got)
	assert.Empty(t, f.llm.reqs)
	assert.Len(t, f.chats.saved, 1)
}

func TestHintRetriesRateLimitThenSucceeds(t *testing.T) {
	rl := &ai.RateLimitError{APIError: ai.APIError{StatusCode: 429}}
	f := newFixture(
		step{err: rl},
		step{err: rl},
		step{comp: &ai.Completion{Text: "third time works", TotalTokens: 10}},
	)

	got := f.svc.Hint(context.Background(), hintReq("alice@whu.edu"))

	assert.Equal(t, "third time works", got)
	assert.Len(t, f.llm.reqs, 3)
	assert.Equal(t, []int{0, 1}, f.delays, "backoff grows with the attempt number")
	assert.Equal(t, 10, f.limiter.Status("alice@whu.edu").TokensLastDay)
}

func TestHintRateLimitExhausted(t *testing.T) {
	rl := &ai.RateLimitError{APIError: ai.APIError{StatusCode: 429}}
	f := newFixture(step{err: rl})

	got := f.svc.Hint(context.Background(), hintReq("alice@whu.edu"))

	assert.Equal(t, "OpenAI rate limit reached. Please try again in a few minutes.", got)
	assert.Len(t, f.llm.reqs, 3)
	assert.Len(t, f.delays, 2)
	assert.Zero(t, f.limiter.Status("alice@whu.edu").TokensLastDay, "failed calls record nothing")
}

func TestHintAuthFailureDoesNotRetry(t *testing.T) {
	f := newFixture(step{err: &ai.AuthError{APIError: ai.APIError{StatusCode: 401, Message: "invalid api key"}}})

	got := f.svc.Hint(context.Background(), hintReq("alice@whu.edu"))

	assert.Equal(t, "A technical error occurred. Please contact support if this persists.", got)
	assert.Len(t, f.llm.reqs, 1)
	assert.Empty(t, f.delays)
}

func TestHintServerErrorsExhausted(t *testing.T) {
	f := newFixture(step{err: &ai.ServerError{APIError: ai.APIError{StatusCode: 502}}})

	got := f.svc.Hint(context.Background(), hintReq("alice@whu.edu"))

	assert.Equal(t, "Unable to process your question right now. Please try again later.", got)
	assert.Len(t, f.llm.reqs, 3)
	assert.Empty(t, f.delays, "only rate limits sleep between attempts")
}

func TestHintUnexpectedErrorsExhausted(t *testing.T) {
	f := newFixture(step{err: errors.New("read: connection reset by peer")})

	got := f.svc.Hint(context.Background(), hintReq("alice@whu.edu"))

	assert.Equal(t, "Unable to process your question at this time. Please try again later.", got)
	assert.Len(t, f.llm.reqs, 3)
}

func TestHintSkipsRetrievalWithoutDocument(t *testing.T) {
	f := newFixture(step{comp: &ai.Completion{Text: "think about port throughput", TotalTokens: 5}})

	got := f.svc.Hint(context.Background(), service.Request{
		Email:     "alice@whu.edu",
		SectionID: section.DragonFireID,
		Question:  "which port should I pick",
	})

	assert.Equal(t, "think about port throughput", got)
	assert.Zero(t, f.emb.calls, "interactive case needs no retrieval")
	assert.Empty(t, f.kb.ensured)
	require.Len(t, f.llm.reqs, 1)
	assert.NotContains(t, f.llm.reqs[0].User, "Context:")
	assert.Contains(t, f.llm.reqs[0].System, "Dragon Fire Case Context")
}

func TestHintDefaultsTokensWhenUsageMissing(t *testing.T) {
	f := newFixture(step{comp: &ai.Completion{Text: "hint", TotalTokens: 0}})

	f.svc.Hint(context.Background(), hintReq("alice@whu.edu"))

	assert.Equal(t, 150, f.limiter.Status("alice@whu.edu").TokensLastDay)
}

func TestHintAnonymousSkipsLedgerAndHistory(t *testing.T) {
	f := newFixture(step{comp: &ai.Completion{Text: "hint", TotalTokens: 77}})

	got := f.svc.Hint(context.Background(), hintReq(""))

	assert.Equal(t, "hint", got)
	assert.Empty(t, f.chats.saved)
	assert.Zero(t, f.limiter.Status("").TokensLastDay)
}

func TestHintSaveFailureDoesNotBlockReply(t *testing.T) {
	f := newFixture(step{comp: &ai.Completion{Text: "compare holding and ordering cost", TotalTokens: 9}})
	chats := &failingChats{}
	f.svc.chats = chats

	got := f.svc.Hint(context.Background(), hintReq("alice@whu.edu"))

	assert.Equal(t, "compare holding and ordering cost", got)
	assert.Equal(t, 1, chats.attempts, "the exchange is still handed to the repository")
	assert.Equal(t, 9, f.limiter.Status("alice@whu.edu").TokensLastDay)
}
