package matching

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"recruit-backend/internal/profiles"
)

func seedRankingFixtures(t *testing.T) profiles.Repo {
	t.Helper()
	repo := profiles.NewMemoryRepo()
	ctx := context.Background()

	offer := profiles.JobOffer{
		ID:             "offer-1",
		RecruiterID:    "recruiter-1",
		Title:          "Backend Engineer",
		ContractType:   profiles.ContractCDI,
		RequiredSkills: []profiles.Skill{{Name: "Go", Level: profiles.LevelAdvanced}},
	}
	if err := repo.CreateJobOffer(ctx, offer); err != nil {
		t.Fatalf("CreateJobOffer: %v", err)
	}

	levels := map[string]profiles.SkillLevel{
		"cand-strong": profiles.LevelExpert,
		"cand-mid":    profiles.LevelIntermediate,
		"cand-weak":   profiles.LevelBeginner,
	}
	for id, level := range levels {
		profile := profiles.CandidateProfile{
			ID:     id,
			Skills: []profiles.Skill{{Name: "Go", Level: level}},
		}
		if err := repo.UpsertCandidateProfile(ctx, profile); err != nil {
			t.Fatalf("UpsertCandidateProfile(%s): %v", id, err)
		}
	}
	return repo
}

func TestRankCandidatesSortsBestFirst(t *testing.T) {
	svc := &Service{Profiles: seedRankingFixtures(t)}

	result, err := svc.RankCandidates(context.Background(), "offer-1",
		[]string{"cand-weak", "cand-strong", "cand-mid"})
	if err != nil {
		t.Fatalf("RankCandidates: %v", err)
	}

	if len(result.Matches) != 3 {
		t.Fatalf("len(Matches) = %d, want 3", len(result.Matches))
	}
	wantOrder := []string{"cand-strong", "cand-mid", "cand-weak"}
	for i, want := range wantOrder {
		if result.Matches[i].CandidateID != want {
			t.Fatalf("Matches[%d] = %s, want %s", i, result.Matches[i].CandidateID, want)
		}
	}
	for i := 1; i < len(result.Matches); i++ {
		if result.Matches[i-1].Result.Overall < result.Matches[i].Result.Overall {
			t.Fatalf("matches not sorted descending at index %d", i)
		}
	}
}

func TestRankCandidatesTieBreaksByCandidateID(t *testing.T) {
	repo := profiles.NewMemoryRepo()
	ctx := context.Background()
	if err := repo.CreateJobOffer(ctx, profiles.JobOffer{ID: "offer-1", ContractType: profiles.ContractCDI}); err != nil {
		t.Fatalf("CreateJobOffer: %v", err)
	}
	for _, id := range []string{"cand-b", "cand-a"} {
		if err := repo.UpsertCandidateProfile(ctx, profiles.CandidateProfile{ID: id}); err != nil {
			t.Fatalf("UpsertCandidateProfile: %v", err)
		}
	}

	svc := &Service{Profiles: repo}
	result, err := svc.RankCandidates(ctx, "offer-1", []string{"cand-b", "cand-a"})
	if err != nil {
		t.Fatalf("RankCandidates: %v", err)
	}
	if result.Matches[0].CandidateID != "cand-a" {
		t.Fatalf("tie-break order = %s, want cand-a first", result.Matches[0].CandidateID)
	}
}

func TestRankCandidatesSkipsUnknownCandidates(t *testing.T) {
	svc := &Service{Profiles: seedRankingFixtures(t)}

	result, err := svc.RankCandidates(context.Background(), "offer-1",
		[]string{"cand-strong", "cand-missing"})
	if err != nil {
		t.Fatalf("RankCandidates: %v", err)
	}
	if len(result.Matches) != 1 {
		t.Fatalf("len(Matches) = %d, want 1", len(result.Matches))
	}
	if len(result.Skipped) != 1 || result.Skipped[0].CandidateID != "cand-missing" {
		t.Fatalf("Skipped = %+v, want cand-missing", result.Skipped)
	}
}

func TestRankCandidatesUnknownOffer(t *testing.T) {
	svc := &Service{Profiles: profiles.NewMemoryRepo()}

	_, err := svc.RankCandidates(context.Background(), "offer-missing", []string{"cand-1"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

type failingProfilesRepo struct {
	profiles.Repo
	failOn string
}

func (r failingProfilesRepo) GetCandidateProfile(ctx context.Context, id string) (profiles.CandidateProfile, error) {
	if id == r.failOn {
		return profiles.CandidateProfile{}, fmt.Errorf("connection reset")
	}
	return r.Repo.GetCandidateProfile(ctx, id)
}

func TestRankCandidatesAbortsOnStoreError(t *testing.T) {
	repo := failingProfilesRepo{Repo: seedRankingFixtures(t), failOn: "cand-mid"}
	svc := &Service{Profiles: repo, RankWorkers: 1}

	_, err := svc.RankCandidates(context.Background(), "offer-1",
		[]string{"cand-strong", "cand-mid", "cand-weak"})
	if err == nil {
		t.Fatal("expected error when the store fails")
	}
}

func TestRankCandidatesCancelledContext(t *testing.T) {
	svc := &Service{Profiles: seedRankingFixtures(t), RankWorkers: 1}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.RankCandidates(ctx, "offer-1", []string{"cand-strong"})
	if err == nil {
		t.Fatal("expected error for cancelled context")
	}
}

func TestRankCandidatesEmptyInput(t *testing.T) {
	svc := &Service{Profiles: profiles.NewMemoryRepo()}
	if _, err := svc.RankCandidates(context.Background(), "offer-1", nil); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("err = %v, want ErrInvalidInput", err)
	}
}
