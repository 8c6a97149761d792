package llm

import "context"

// AnnotateInput carries the match facts the model is asked to explain.
type AnnotateInput struct {
	CandidateSummary string
	OfferSummary     string
	Overall          int
	Level            string
	Subscores        map[string]int
}

// Annotation is a best-effort natural-language gloss on a match result.
type Annotation struct {
	Summary   string   `json:"summary"`
	Strengths []string `json:"strengths"`
	Gaps      []string `json:"gaps"`
}

// Client produces match annotations. Implementations call external model
// providers; callers must treat failure as a missing annotation, never as a
// scoring failure.
type Client interface {
	AnnotateMatch(ctx context.Context, input AnnotateInput) (Annotation, error)
}
