package profiles

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"recruit-backend/internal/geocode"
)

type stubGeocoder struct {
	point geocode.Point
	err   error
	calls int
}

func (g *stubGeocoder) Resolve(_ context.Context, _ string) (geocode.Point, error) {
	g.calls++
	return g.point, g.err
}

func TestSaveCandidateProfileValidation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	cases := []struct {
		name    string
		profile CandidateProfile
	}{
		{"missing id", CandidateProfile{}},
		{"negative experience", CandidateProfile{ID: "cand-1", ExperienceYears: -1}},
		{"unknown contract type", CandidateProfile{ID: "cand-1", ContractTypes: []ContractType{"PERMANENT"}}},
		{"empty skill name", CandidateProfile{ID: "cand-1", Skills: []Skill{{Name: " ", Level: LevelBeginner}}}},
		{"unknown skill level", CandidateProfile{ID: "cand-1", Skills: []Skill{{Name: "Go", Level: "GURU"}}}},
		{"duplicate skill", CandidateProfile{ID: "cand-1", Skills: []Skill{
			{Name: "Go", Level: LevelBeginner},
			{Name: "go", Level: LevelExpert},
		}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.SaveCandidateProfile(ctx, tc.profile); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestSaveCandidateProfileResolvesLocation(t *testing.T) {
	geocoder := &stubGeocoder{point: geocode.Point{Lat: 48.8566, Lon: 2.3522}}
	svc := &Service{Repo: NewMemoryRepo(), Geocoder: geocoder}

	saved, err := svc.SaveCandidateProfile(context.Background(), CandidateProfile{
		ID:       "cand-1",
		Location: "Paris, France",
	})
	if err != nil {
		t.Fatalf("SaveCandidateProfile: %v", err)
	}
	if geocoder.calls != 1 {
		t.Fatalf("geocoder calls = %d, want 1", geocoder.calls)
	}
	if saved.Coords == nil || saved.Coords.Lat != 48.8566 {
		t.Fatalf("Coords = %+v, want resolved Paris", saved.Coords)
	}
}

func TestSaveCandidateProfileSurvivesGeocoderFailure(t *testing.T) {
	geocoder := &stubGeocoder{err: fmt.Errorf("upstream unavailable")}
	svc := &Service{Repo: NewMemoryRepo(), Geocoder: geocoder}

	saved, err := svc.SaveCandidateProfile(context.Background(), CandidateProfile{
		ID:       "cand-1",
		Location: "Paris, France",
	})
	if err != nil {
		t.Fatalf("SaveCandidateProfile: %v", err)
	}
	if saved.Coords != nil {
		t.Fatalf("Coords = %+v, want nil when resolution fails", saved.Coords)
	}
}

func TestSaveCandidateProfileKeepsExplicitCoords(t *testing.T) {
	geocoder := &stubGeocoder{}
	svc := &Service{Repo: NewMemoryRepo(), Geocoder: geocoder}

	saved, err := svc.SaveCandidateProfile(context.Background(), CandidateProfile{
		ID:       "cand-1",
		Location: "Paris, France",
		Coords:   &Coordinates{Lat: 1, Lon: 2},
	})
	if err != nil {
		t.Fatalf("SaveCandidateProfile: %v", err)
	}
	if geocoder.calls != 0 {
		t.Fatalf("geocoder calls = %d, want 0 when coords are supplied", geocoder.calls)
	}
	if saved.Coords.Lat != 1 || saved.Coords.Lon != 2 {
		t.Fatalf("Coords = %+v, want the supplied values", saved.Coords)
	}
}

func TestCreateJobOfferValidation(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	ctx := context.Background()

	negative := -1
	cases := []struct {
		name      string
		offer     JobOffer
		recruiter string
	}{
		{"missing recruiter", JobOffer{Title: "Backend Engineer", ContractType: ContractCDI}, ""},
		{"missing title", JobOffer{ContractType: ContractCDI}, "recruiter-1"},
		{"unknown contract type", JobOffer{Title: "Backend Engineer", ContractType: "PERMANENT"}, "recruiter-1"},
		{"negative expected years", JobOffer{Title: "Backend Engineer", ContractType: ContractCDI, ExpectedYears: &negative}, "recruiter-1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.CreateJobOffer(ctx, tc.offer, tc.recruiter); !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("err = %v, want ErrInvalidInput", err)
			}
		})
	}
}

func TestCreateJobOfferAssignsIDAndOwner(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}

	offer, err := svc.CreateJobOffer(context.Background(), JobOffer{
		Title:        "Backend Engineer",
		ContractType: ContractCDI,
	}, "recruiter-1")
	if err != nil {
		t.Fatalf("CreateJobOffer: %v", err)
	}
	if offer.ID == "" {
		t.Fatal("offer ID not assigned")
	}
	if offer.RecruiterID != "recruiter-1" {
		t.Fatalf("RecruiterID = %s, want recruiter-1", offer.RecruiterID)
	}

	fetched, err := svc.JobOffer(context.Background(), offer.ID)
	if err != nil {
		t.Fatalf("JobOffer: %v", err)
	}
	if fetched.Title != "Backend Engineer" {
		t.Fatalf("Title = %s", fetched.Title)
	}
}

func TestMemoryRepoUpsertReplacesProfile(t *testing.T) {
	repo := NewMemoryRepo()
	ctx := context.Background()

	first := CandidateProfile{ID: "cand-1", ExperienceYears: 2}
	if err := repo.UpsertCandidateProfile(ctx, first); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	second := CandidateProfile{ID: "cand-1", ExperienceYears: 5}
	if err := repo.UpsertCandidateProfile(ctx, second); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	got, err := repo.GetCandidateProfile(ctx, "cand-1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ExperienceYears != 5 {
		t.Fatalf("ExperienceYears = %d, want 5 (last write wins)", got.ExperienceYears)
	}
}
