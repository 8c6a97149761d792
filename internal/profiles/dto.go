package profiles

import "time"

type skillPayload struct {
	Name  string `json:"name"`
	Level string `json:"level"`
}

type profileRequest struct {
	Location        string         `json:"location"`
	Coords          *Coordinates   `json:"coords"`
	ContractTypes   []string       `json:"contractTypes"`
	ExperienceYears int            `json:"experienceYears"`
	Skills          []skillPayload `json:"skills"`
}

// ProfileResponse is the outward-facing representation of a candidate profile.
type ProfileResponse struct {
	CandidateID     string         `json:"candidateId"`
	Location        string         `json:"location,omitempty"`
	Coords          *Coordinates   `json:"coords,omitempty"`
	ContractTypes   []ContractType `json:"contractTypes"`
	ExperienceYears int            `json:"experienceYears"`
	Skills          []Skill        `json:"skills"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

func toProfileResponse(profile CandidateProfile) ProfileResponse {
	return ProfileResponse{
		CandidateID:     profile.ID,
		Location:        profile.Location,
		Coords:          profile.Coords,
		ContractTypes:   nonNilContracts(profile.ContractTypes),
		ExperienceYears: profile.ExperienceYears,
		Skills:          nonNilSkills(profile.Skills),
		UpdatedAt:       profile.UpdatedAt,
	}
}

type offerRequest struct {
	Title          string         `json:"title"`
	Location       string         `json:"location"`
	Coords         *Coordinates   `json:"coords"`
	ContractType   string         `json:"contractType"`
	RequiredSkills []skillPayload `json:"requiredSkills"`
	ExpectedYears  *int           `json:"expectedYears"`
}

// OfferResponse is the outward-facing representation of a job offer.
type OfferResponse struct {
	OfferID        string       `json:"offerId"`
	RecruiterID    string       `json:"recruiterId"`
	Title          string       `json:"title"`
	Location       string       `json:"location,omitempty"`
	Coords         *Coordinates `json:"coords,omitempty"`
	ContractType   ContractType `json:"contractType"`
	RequiredSkills []Skill      `json:"requiredSkills"`
	ExpectedYears  *int         `json:"expectedYears,omitempty"`
	CreatedAt      time.Time    `json:"createdAt"`
}

func toOfferResponse(offer JobOffer) OfferResponse {
	return OfferResponse{
		OfferID:        offer.ID,
		RecruiterID:    offer.RecruiterID,
		Title:          offer.Title,
		Location:       offer.Location,
		Coords:         offer.Coords,
		ContractType:   offer.ContractType,
		RequiredSkills: nonNilSkills(offer.RequiredSkills),
		ExpectedYears:  offer.ExpectedYears,
		CreatedAt:      offer.CreatedAt,
	}
}
