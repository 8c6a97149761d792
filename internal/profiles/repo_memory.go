package profiles

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu       sync.RWMutex
	profiles map[string]CandidateProfile
	offers   map[string]JobOffer
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		profiles: make(map[string]CandidateProfile),
		offers:   make(map[string]JobOffer),
	}
}

// GetCandidateProfile returns a candidate profile by id.
func (r *MemoryRepo) GetCandidateProfile(ctx context.Context, id string) (CandidateProfile, error) {
	if err := ctx.Err(); err != nil {
		return CandidateProfile{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[id]
	if !ok {
		return CandidateProfile{}, ErrNotFound
	}
	return profile, nil
}

// UpsertCandidateProfile stores a candidate profile.
func (r *MemoryRepo) UpsertCandidateProfile(ctx context.Context, profile CandidateProfile) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[profile.ID] = profile
	return nil
}

// GetJobOffer returns a job offer by id.
func (r *MemoryRepo) GetJobOffer(ctx context.Context, id string) (JobOffer, error) {
	if err := ctx.Err(); err != nil {
		return JobOffer{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	offer, ok := r.offers[id]
	if !ok {
		return JobOffer{}, ErrNotFound
	}
	return offer, nil
}

// CreateJobOffer stores a job offer.
func (r *MemoryRepo) CreateJobOffer(ctx context.Context, offer JobOffer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offers[offer.ID] = offer
	return nil
}

// ListJobOffers lists offers newest first, honoring limit/offset.
func (r *MemoryRepo) ListJobOffers(ctx context.Context, limit, offset int) ([]JobOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = 20
	}

	r.mu.RLock()
	offers := make([]JobOffer, 0, len(r.offers))
	for _, offer := range r.offers {
		offers = append(offers, offer)
	}
	r.mu.RUnlock()

	sort.Slice(offers, func(i, j int) bool {
		return offers[i].CreatedAt.After(offers[j].CreatedAt)
	})

	if offset >= len(offers) {
		return []JobOffer{}, nil
	}
	end := len(offers)
	if offset+limit < end {
		end = offset + limit
	}
	return offers[offset:end], nil
}

var _ Repo = (*MemoryRepo)(nil)
