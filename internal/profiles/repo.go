package profiles

import "context"

// Repo defines read/write access to candidate profiles and job offers.
type Repo interface {
	GetCandidateProfile(ctx context.Context, id string) (CandidateProfile, error)
	UpsertCandidateProfile(ctx context.Context, profile CandidateProfile) error
	GetJobOffer(ctx context.Context, id string) (JobOffer, error)
	CreateJobOffer(ctx context.Context, offer JobOffer) error
	ListJobOffers(ctx context.Context, limit, offset int) ([]JobOffer, error)
}
