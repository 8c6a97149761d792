package profiles

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/geocode"
	"recruit-backend/internal/shared/telemetry"
)

// Service contains business logic for candidate profiles and job offers.
type Service struct {
	Repo     Repo
	Geocoder geocode.Geocoder // optional
}

// CandidateProfile returns a profile by candidate id.
func (s *Service) CandidateProfile(ctx context.Context, id string) (CandidateProfile, error) {
	if strings.TrimSpace(id) == "" {
		return CandidateProfile{}, ErrInvalidInput
	}
	return s.Repo.GetCandidateProfile(ctx, id)
}

// SaveCandidateProfile validates and stores a candidate profile. When the
// profile has a free-text location but no coordinates, resolution is
// attempted through the geocoder; failure degrades to "no coordinates" so
// later scoring falls back to the neutral location subscore.
func (s *Service) SaveCandidateProfile(ctx context.Context, profile CandidateProfile) (CandidateProfile, error) {
	if strings.TrimSpace(profile.ID) == "" {
		return CandidateProfile{}, fmt.Errorf("%w: candidate id required", ErrInvalidInput)
	}
	if err := validateProfile(profile); err != nil {
		return CandidateProfile{}, err
	}

	profile.Coords = s.resolveCoords(ctx, profile.Location, profile.Coords)
	profile.UpdatedAt = time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = profile.UpdatedAt
	}

	if err := s.Repo.UpsertCandidateProfile(ctx, profile); err != nil {
		return CandidateProfile{}, err
	}
	return profile, nil
}

// JobOffer returns an offer by id.
func (s *Service) JobOffer(ctx context.Context, id string) (JobOffer, error) {
	if strings.TrimSpace(id) == "" {
		return JobOffer{}, ErrInvalidInput
	}
	return s.Repo.GetJobOffer(ctx, id)
}

// CreateJobOffer validates and stores a new offer owned by recruiterID.
func (s *Service) CreateJobOffer(ctx context.Context, offer JobOffer, recruiterID string) (JobOffer, error) {
	if strings.TrimSpace(recruiterID) == "" {
		return JobOffer{}, fmt.Errorf("%w: recruiter id required", ErrInvalidInput)
	}
	if strings.TrimSpace(offer.Title) == "" {
		return JobOffer{}, fmt.Errorf("%w: title required", ErrInvalidInput)
	}
	if !contractTypes[offer.ContractType] {
		return JobOffer{}, fmt.Errorf("%w: unknown contract type %q", ErrInvalidInput, offer.ContractType)
	}
	if err := validateSkills(offer.RequiredSkills); err != nil {
		return JobOffer{}, err
	}
	if offer.ExpectedYears != nil && *offer.ExpectedYears < 0 {
		return JobOffer{}, fmt.Errorf("%w: expected years must be non-negative", ErrInvalidInput)
	}

	offer.ID = uuid.NewString()
	offer.RecruiterID = recruiterID
	offer.Coords = s.resolveCoords(ctx, offer.Location, offer.Coords)
	offer.CreatedAt = time.Now().UTC()

	if err := s.Repo.CreateJobOffer(ctx, offer); err != nil {
		return JobOffer{}, err
	}
	return offer, nil
}

// ListJobOffers lists published offers.
func (s *Service) ListJobOffers(ctx context.Context, limit, offset int) ([]JobOffer, error) {
	return s.Repo.ListJobOffers(ctx, limit, offset)
}

func (s *Service) resolveCoords(ctx context.Context, location string, coords *Coordinates) *Coordinates {
	if coords != nil || s.Geocoder == nil || strings.TrimSpace(location) == "" {
		return coords
	}
	point, err := s.Geocoder.Resolve(ctx, location)
	if err != nil {
		if !errors.Is(err, geocode.ErrNoResult) {
			telemetry.Warn("geocode.resolve_failed", map[string]any{
				"location": location,
				"error":    err.Error(),
			})
		}
		return nil
	}
	return &Coordinates{Lat: point.Lat, Lon: point.Lon}
}

func validateProfile(profile CandidateProfile) error {
	if profile.ExperienceYears < 0 {
		return fmt.Errorf("%w: experience years must be non-negative", ErrInvalidInput)
	}
	for _, ct := range profile.ContractTypes {
		if !contractTypes[ct] {
			return fmt.Errorf("%w: unknown contract type %q", ErrInvalidInput, ct)
		}
	}
	return validateSkills(profile.Skills)
}

func validateSkills(skills []Skill) error {
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		name := strings.ToLower(strings.TrimSpace(skill.Name))
		if name == "" {
			return fmt.Errorf("%w: skill name required", ErrInvalidInput)
		}
		if seen[name] {
			return fmt.Errorf("%w: duplicate skill %q", ErrInvalidInput, skill.Name)
		}
		seen[name] = true
		if skill.Level.Rank() == 0 {
			return fmt.Errorf("%w: unknown skill level %q", ErrInvalidInput, skill.Level)
		}
	}
	return nil
}
