// Package section defines the course units a student can work in and the
// registry that resolves them. Each section carries its own assignment
// questions, chatbot system prompt, optional grounding document, and numeric
// answer checks.
package section

import "fmt"

// Canonical section ids. The id is the tag stored with answers, chats, and
// grades, so it must stay stable across releases.
const (
	Ch3ID         = "Ch.3"
	SevenElevenID = "7-Eleven Case 2015"
	DragonFireID  = "Dragon Fire Case"
)

// Section is one course unit.
type Section interface {
	ID() string
	Name() string
	Questions() []string
	SystemPrompt() string
	// DocumentPath returns the grounding document for retrieval, or ""
	// when the section works without one.
	DocumentPath() string
	// ValidateNumeric checks a labeled numeric answer against the
	// section's tolerance table. Sections without a table report
	// (false, "Unknown task").
	ValidateNumeric(taskID string, value float64) (bool, string)
}

// ScenarioAssigner is implemented by sections that hand each student a
// personal disruption scenario.
type ScenarioAssigner interface {
	AssignScenario(email string) Scenario
	Scenarios() []Scenario
}

// LogisticsToolkit is implemented by sections that ship interactive planning
// calculators alongside the questions.
type LogisticsToolkit interface {
	ContainerSpecs() ContainerSpecs
	DensityGuidance() DensityGuidance
	VolumeMetrics(in VolumeInput) VolumeReport
	TransportCosts(containers, totalKg float64) TransportCosts
	ValidateContainerResearch(weightKg, volumeM3 float64) ResearchReview
	CheckPhase2Inputs(in Phase2Inputs) Phase2Review
}

// Registry holds the closed set of sections. Resolving an unknown id yields a
// safe fallback instead of nil so callers never branch on missing sections.
type Registry struct {
	byID     map[string]Section
	order    []string
	fallback Section
}

func NewRegistry(sections ...Section) *Registry {
	r := &Registry{byID: make(map[string]Section, len(sections)), fallback: unknown{}}
	for _, s := range sections {
		if _, dup := r.byID[s.ID()]; dup {
			continue
		}
		r.byID[s.ID()] = s
		r.order = append(r.order, s.ID())
	}
	return r
}

// Resolve never returns nil.
func (r *Registry) Resolve(id string) Section {
	if s, ok := r.byID[id]; ok {
		return s
	}
	return r.fallback
}

// Known reports whether id names a registered section.
func (r *Registry) Known(id string) bool {
	_, ok := r.byID[id]
	return ok
}

// All returns the sections in registration order.
func (r *Registry) All() []Section {
	out := make([]Section, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

// unknown is the fallback variant: no questions, no document, a generic
// hint-only prompt, and no numeric checks.
type unknown struct{}

func (unknown) ID() string           { return "unknown" }
func (unknown) Name() string         { return "Unknown Section" }
func (unknown) Questions() []string  { return nil }
func (unknown) DocumentPath() string { return "" }
func (unknown) SystemPrompt() string { return hintPrompt("supply chain management", "") }
func (unknown) ValidateNumeric(string, float64) (bool, string) {
	return false, "Unknown task"
}

// hintPrompt builds the tutor preamble shared by every section. The tail
// carries section specific facts and may be empty.
func hintPrompt(specialty, tail string) string {
	return fmt.Sprintf("You are a supply chain course assistant specializing in %s. "+
		"Use the following context to give helpful hints for the assignment question, but do NOT solve it directly. "+
		"Encourage the student to think and guide them to the right concepts or formulas. "+
		"Provide data from your understanding if a student asks for it. "+
		"If the student asks for a solution, only provide hints and steps, not the final answer.\n", specialty) + tail
}
