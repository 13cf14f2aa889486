package serviceImp

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"scls/entities"
	"scls/pkg/ai"
	"scls/pkg/chat/repository"
	"scls/pkg/chat/service"
	"scls/pkg/kb/embedder"
	kbservice "scls/pkg/kb/service"
	"scls/pkg/ratelimit"
	"scls/pkg/section"
)

const (
	maxAttempts = 3
	// Charged against the daily budget when the API reports no usage.
	defaultRecordedTokens = 150
)

type HintSvc struct {
	sections *section.Registry
	kb       kbservice.KBService
	emb      embedder.Client
	llm      ai.Client
	limiter  *ratelimit.Limiter
	chats    repository.ChatRepository

	// retryDelay sleeps between rate-limited attempts; tests swap it out.
	retryDelay func(attempt int)
}

func NewHintService(sections *section.Registry, kb kbservice.KBService, emb embedder.Client, llm ai.Client, limiter *ratelimit.Limiter, chats repository.ChatRepository) *HintSvc {
	return &HintSvc{
		sections: sections,
		kb:       kb,
		emb:      emb,
		llm:      llm,
		limiter:  limiter,
		chats:    chats,
		retryDelay: func(attempt int) {
			time.Sleep(time.Duration(1<<attempt) * time.Second)
		},
	}
}

var _ service.HintService = (*HintSvc)(nil)

// Hint runs budget check, retrieval, and completion with bounded retries.
// Sections without a grounding document skip retrieval entirely.
func (s *HintSvc) Hint(ctx context.Context, req service.Request) string {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	sec := s.sections.Resolve(req.SectionID)

	if email != "" {
		if allowed, msg := s.limiter.Check(email, 0); !allowed {
			return s.reply(sec.ID(), email, req.Question, msg+". Please try again later.")
		}
	}

	prompt := "Assignment Question: " + req.AssignmentContext + "\nStudent Query: " + req.Question + "\nHint:"
	if sec.DocumentPath() != "" {
		if err := s.kb.EnsureSection(ctx, sec.ID(), sec.DocumentPath()); err != nil {
			log.Printf("[chat] index %s: %v", sec.ID(), err)
		}

		fullQuery := req.Question
		if req.AssignmentContext != "" {
			fullQuery += "\nAssignment Question: " + req.AssignmentContext
		}
		vecs, err := s.emb.Embed(ctx, []string{fullQuery})
		if err != nil || len(vecs) == 0 {
			if err != nil {
				log.Printf("[chat] query embedding: %v", err)
			}
			return s.reply(sec.ID(), email, req.Question,
				"I'm having trouble processing your question right now. Please try again in a few moments.")
		}
		prompt = "Context: " + s.kb.BestChunk(vecs[0], sec.ID()) + "\n" + prompt
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		comp, err := s.llm.Complete(ctx, ai.CompletionRequest{
			System:      sec.SystemPrompt(),
			User:        prompt,
			MaxTokens:   1000,
			Temperature: 0.7,
		})
		if err == nil {
			tokens := comp.TotalTokens
			if tokens <= 0 {
				tokens = defaultRecordedTokens
			}
			if email != "" {
				s.limiter.Record(email, tokens)
			}
			return s.reply(sec.ID(), email, req.Question, comp.Text)
		}

		var rlErr *ai.RateLimitError
		var authErr *ai.AuthError
		var srvErr *ai.ServerError
		var apiErr *ai.APIError
		switch {
		case errors.As(err, &rlErr):
			if attempt < maxAttempts-1 {
				s.retryDelay(attempt)
				continue
			}
			return s.reply(sec.ID(), email, req.Question,
				"OpenAI rate limit reached. Please try again in a few minutes.")
		case errors.As(err, &authErr):
			// A bad key cannot heal on retry.
			log.Printf("[chat] auth rejected: %v", err)
			return s.reply(sec.ID(), email, req.Question,
				"A technical error occurred. Please contact support if this persists.")
		case errors.As(err, &srvErr), errors.As(err, &apiErr):
			log.Printf("[chat] api error on attempt %d: %v", attempt+1, err)
			if attempt < maxAttempts-1 {
				continue
			}
			return s.reply(sec.ID(), email, req.Question,
				"Unable to process your question right now. Please try again later.")
		default:
			log.Printf("[chat] unexpected error on attempt %d: %v", attempt+1, err)
			if attempt < maxAttempts-1 {
				continue
			}
		}
		break
	}
	return s.reply(sec.ID(), email, req.Question,
		"Unable to process your question at this time. Please try again later.")
}

// reply persists the exchange when it belongs to a student and hands the text
// back. Apologies are recorded the same as hints; persistence failures never
// block the reply.
func (s *HintSvc) reply(sectionID, email, question, text string) string {
	if email == "" {
		return text
	}
	if err := s.chats.Save(&entities.Chat{Email: email, Question: question, BotResponse: text, Section: sectionID}); err != nil {
		log.Printf("[chat] save chat for %s: %v", email, err)
	}
	return text
}
