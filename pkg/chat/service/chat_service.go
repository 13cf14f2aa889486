package service

import "context"

// Request is one student question to the hint chatbot. AssignmentContext is
// the question text the student is currently working on and may be empty.
type Request struct {
	Email             string
	SectionID         string
	Question          string
	AssignmentContext string
}

// HintService turns a student question into a hint. It always returns a
// student-facing string: every failure inside the pipeline maps to a fixed
// apology message rather than an error.
type HintService interface {
	Hint(ctx context.Context, req Request) string
}
