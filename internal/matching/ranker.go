package matching

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"recruit-backend/internal/profiles"
	"recruit-backend/internal/shared/metrics"
)

const defaultRankWorkers = 8

// RankedCandidate pairs a candidate id with its match result.
type RankedCandidate struct {
	CandidateID string      `json:"candidateId"`
	Result      MatchResult `json:"result"`
}

// SkippedCandidate reports a candidate that could not be scored.
type SkippedCandidate struct {
	CandidateID string `json:"candidateId"`
	Reason      string `json:"reason"`
}

// RankResult holds a ranking run's outcome: matches sorted best-first plus
// the candidates that had to be skipped.
type RankResult struct {
	Matches []RankedCandidate  `json:"matches"`
	Skipped []SkippedCandidate `json:"skipped"`
}

// RankCandidates scores many candidates against one offer concurrently.
// Each pair is scored independently with no shared mutable state, so the
// work runs in a bounded worker pool. Cancelling ctx stops scoring early;
// unknown candidates are skipped, while store failures abort the whole run.
func (s *Service) RankCandidates(ctx context.Context, offerID string, candidateIDs []string) (RankResult, error) {
	if len(candidateIDs) == 0 {
		return RankResult{}, fmt.Errorf("%w: candidate ids required", ErrInvalidInput)
	}

	offer, err := s.Profiles.GetJobOffer(ctx, offerID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return RankResult{}, fmt.Errorf("%w: offer %s", ErrNotFound, offerID)
		}
		return RankResult{}, err
	}

	start := time.Now()

	workers := s.RankWorkers
	if workers <= 0 {
		workers = defaultRankWorkers
	}

	type slot struct {
		ranked  *RankedCandidate
		skipped *SkippedCandidate
	}
	slots := make([]slot, len(candidateIDs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, candidateID := range candidateIDs {
		i, candidateID := i, candidateID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			candidate, err := s.Profiles.GetCandidateProfile(gctx, candidateID)
			if err != nil {
				if errors.Is(err, profiles.ErrNotFound) {
					slots[i].skipped = &SkippedCandidate{CandidateID: candidateID, Reason: "candidate not found"}
					return nil
				}
				return err
			}
			result := ComputeMatch(candidate, offer)
			metrics.IncMatchComputed()
			slots[i].ranked = &RankedCandidate{CandidateID: candidateID, Result: result}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return RankResult{}, err
	}

	out := RankResult{
		Matches: make([]RankedCandidate, 0, len(candidateIDs)),
		Skipped: []SkippedCandidate{},
	}
	for _, s := range slots {
		if s.ranked != nil {
			out.Matches = append(out.Matches, *s.ranked)
		}
		if s.skipped != nil {
			out.Skipped = append(out.Skipped, *s.skipped)
		}
	}

	// Best first; candidate id breaks ties so ordering is stable.
	sort.Slice(out.Matches, func(i, j int) bool {
		if out.Matches[i].Result.Overall != out.Matches[j].Result.Overall {
			return out.Matches[i].Result.Overall > out.Matches[j].Result.Overall
		}
		return out.Matches[i].CandidateID < out.Matches[j].CandidateID
	})

	metrics.ObserveRankDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)
	return out, nil
}
