package matching

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"recruit-backend/internal/llm"
	"recruit-backend/internal/profiles"
	"recruit-backend/internal/shared/metrics"
	"recruit-backend/internal/shared/telemetry"
)

// Service loads profile data and computes matches. Scoring itself is pure;
// the service owns the I/O around it.
type Service struct {
	Profiles    profiles.Repo
	LLM         llm.Client // optional, best-effort annotation
	RankWorkers int
}

// AnnotatedResult is a match result with an optional AI-generated gloss.
type AnnotatedResult struct {
	MatchResult
	Annotation *llm.Annotation `json:"annotation,omitempty"`
}

// ComputeByIDs loads both sides of a pair and scores them. The result is
// recomputed on every call; underlying data may have changed.
func (s *Service) ComputeByIDs(ctx context.Context, candidateID, offerID string) (MatchResult, error) {
	if strings.TrimSpace(candidateID) == "" || strings.TrimSpace(offerID) == "" {
		return MatchResult{}, fmt.Errorf("%w: candidate and offer ids required", ErrInvalidInput)
	}

	candidate, err := s.Profiles.GetCandidateProfile(ctx, candidateID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return MatchResult{}, fmt.Errorf("%w: candidate %s", ErrNotFound, candidateID)
		}
		return MatchResult{}, err
	}
	offer, err := s.Profiles.GetJobOffer(ctx, offerID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return MatchResult{}, fmt.Errorf("%w: offer %s", ErrNotFound, offerID)
		}
		return MatchResult{}, err
	}

	result := ComputeMatch(candidate, offer)
	metrics.IncMatchComputed()
	if candidate.Coords == nil || offer.Coords == nil {
		metrics.IncGeocodeFallback()
	}
	return result, nil
}

// ComputeAnnotated scores a pair and, when an LLM client is configured, asks
// it for a gloss. Annotation failure is logged and degrades to a result
// without annotation.
func (s *Service) ComputeAnnotated(ctx context.Context, candidateID, offerID string) (AnnotatedResult, error) {
	result, err := s.ComputeByIDs(ctx, candidateID, offerID)
	if err != nil {
		return AnnotatedResult{}, err
	}
	out := AnnotatedResult{MatchResult: result}
	if s.LLM == nil {
		return out, nil
	}

	candidate, cErr := s.Profiles.GetCandidateProfile(ctx, candidateID)
	offer, oErr := s.Profiles.GetJobOffer(ctx, offerID)
	if cErr != nil || oErr != nil {
		return out, nil
	}

	annotation, err := s.LLM.AnnotateMatch(ctx, llm.AnnotateInput{
		CandidateSummary: candidateSummary(candidate),
		OfferSummary:     offerSummary(offer),
		Overall:          result.Overall,
		Level:            string(result.Level),
		Subscores: map[string]int{
			"skills":       result.Subscores.Skills,
			"location":     result.Subscores.Location,
			"contractType": result.Subscores.ContractType,
			"experience":   result.Subscores.Experience,
		},
	})
	if err != nil {
		metrics.IncMatchAnnotationFailed()
		telemetry.Warn("match.annotation_failed", map[string]any{
			"candidate_id": candidateID,
			"offer_id":     offerID,
			"error":        err.Error(),
		})
		return out, nil
	}
	out.Annotation = &annotation
	return out, nil
}

func candidateSummary(candidate profiles.CandidateProfile) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d years of experience", candidate.ExperienceYears)
	if len(candidate.Skills) > 0 {
		sb.WriteString("; skills:")
		for _, skill := range candidate.Skills {
			fmt.Fprintf(&sb, " %s(%s)", skill.Name, skill.Level)
		}
	}
	if candidate.Location != "" {
		fmt.Fprintf(&sb, "; based in %s", candidate.Location)
	}
	return sb.String()
}

func offerSummary(offer profiles.JobOffer) string {
	var sb strings.Builder
	sb.WriteString(offer.Title)
	fmt.Fprintf(&sb, " (%s)", offer.ContractType)
	if len(offer.RequiredSkills) > 0 {
		sb.WriteString("; requires:")
		for _, skill := range offer.RequiredSkills {
			fmt.Fprintf(&sb, " %s(%s)", skill.Name, skill.Level)
		}
	}
	if offer.ExpectedYears != nil {
		fmt.Fprintf(&sb, "; %d+ years expected", *offer.ExpectedYears)
	}
	return sb.String()
}
