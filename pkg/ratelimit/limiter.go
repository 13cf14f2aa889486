// Package ratelimit enforces per-student usage budgets for the hint chatbot.
package ratelimit

import (
	"fmt"
	"sync"
	"time"
)

// DefaultEstimatedTokens is charged against the daily budget when the caller
// has no better estimate for the upcoming request.
const DefaultEstimatedTokens = 10000

type entry struct {
	at     time.Time
	tokens int
}

// Limiter tracks a sliding-window usage ledger per email: queries per hour
// and tokens per day. Process-local; a restart starts fresh.
type Limiter struct {
	mu         sync.Mutex
	ledger     map[string][]entry
	maxQueries int
	maxTokens  int
	now        func() time.Time
}

func New(maxQueriesPerHour, maxTokensPerDay int) *Limiter {
	return &Limiter{
		ledger:     make(map[string][]entry),
		maxQueries: maxQueriesPerHour,
		maxTokens:  maxTokensPerDay,
		now:        time.Now,
	}
}

// Check reports whether email may run one more query, with a reason when not.
// estimatedTokens <= 0 falls back to DefaultEstimatedTokens. Entries older
// than a day are pruned here; Record never prunes.
func (l *Limiter) Check(email string, estimatedTokens int) (bool, string) {
	if estimatedTokens <= 0 {
		estimatedTokens = DefaultEstimatedTokens
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	hourAgo := now.Add(-time.Hour)
	dayAgo := now.Add(-24 * time.Hour)

	kept := make([]entry, 0, len(l.ledger[email]))
	for _, e := range l.ledger[email] {
		if e.at.After(dayAgo) {
			kept = append(kept, e)
		}
	}
	l.ledger[email] = kept

	recent := 0
	for _, e := range kept {
		if e.at.After(hourAgo) {
			recent++
		}
	}
	if recent >= l.maxQueries {
		return false, fmt.Sprintf("Rate limit exceeded: Max %d queries per hour", l.maxQueries)
	}

	daily := 0
	for _, e := range kept {
		daily += e.tokens
	}
	if daily+estimatedTokens > l.maxTokens {
		return false, fmt.Sprintf("Token limit exceeded: Max %d tokens per day", l.maxTokens)
	}
	return true, "OK"
}

// Record charges tokens against email's ledger.
func (l *Limiter) Record(email string, tokens int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ledger[email] = append(l.ledger[email], entry{at: l.now(), tokens: tokens})
}

// Status is a point-in-time usage snapshot for one email.
type Status struct {
	QueriesLastHour int `json:"queries_hour"`
	QueriesLastDay  int `json:"queries_today"`
	TokensLastDay   int `json:"tokens_today"`
	MaxQueriesHour  int `json:"max_queries_hour"`
	MaxTokensDay    int `json:"max_tokens_day"`
}

func (l *Limiter) Status(email string) Status {
	l.mu.Lock()
	defer l.mu.Unlock()

	st := Status{MaxQueriesHour: l.maxQueries, MaxTokensDay: l.maxTokens}
	now := l.now()
	hourAgo := now.Add(-time.Hour)
	dayAgo := now.Add(-24 * time.Hour)
	for _, e := range l.ledger[email] {
		if !e.at.After(dayAgo) {
			continue
		}
		st.QueriesLastDay++
		st.TokensLastDay += e.tokens
		if e.at.After(hourAgo) {
			st.QueriesLastHour++
		}
	}
	return st
}

// Clear drops the ledger for one email.
func (l *Limiter) Clear(email string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.ledger, email)
}

// ClearAll drops every ledger.
func (l *Limiter) ClearAll() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.ledger = make(map[string][]entry)
}
