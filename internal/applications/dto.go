package applications

import "time"

// ApplicationResponse is the JSON shape returned for an application.
type ApplicationResponse struct {
	ID          string    `json:"id"`
	CandidateID string    `json:"candidateId"`
	OfferID     string    `json:"offerId"`
	Status      string    `json:"status"`
	Archived    bool      `json:"archived"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	ResumeKey   string    `json:"resumeKey,omitempty"`
	AppliedAt   time.Time `json:"appliedAt"`
}

func toApplicationResponse(app Application) ApplicationResponse {
	return ApplicationResponse{
		ID:          app.ID,
		CandidateID: app.CandidateID,
		OfferID:     app.OfferID,
		Status:      string(app.Status),
		Archived:    app.Archived,
		CoverLetter: app.CoverLetter,
		ResumeKey:   app.ResumeKey,
		AppliedAt:   app.AppliedAt,
	}
}

func toApplicationResponses(apps []Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, app := range apps {
		out = append(out, toApplicationResponse(app))
	}
	return out
}

// HistoryEntryResponse is the JSON shape returned for a ledger entry.
type HistoryEntryResponse struct {
	ID            string    `json:"id"`
	ApplicationID string    `json:"applicationId"`
	Status        string    `json:"status"`
	ActorID       string    `json:"actorId"`
	Note          string    `json:"note"`
	ChangedAt     time.Time `json:"changedAt"`
}

func toHistoryEntryResponse(entry HistoryEntry) HistoryEntryResponse {
	return HistoryEntryResponse{
		ID:            entry.ID,
		ApplicationID: entry.ApplicationID,
		Status:        string(entry.Status),
		ActorID:       entry.ActorID,
		Note:          entry.Note,
		ChangedAt:     entry.ChangedAt,
	}
}

type statusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type bulkStatusRequest struct {
	ApplicationIDs []string `json:"applicationIds"`
	Status         string   `json:"status"`
	Note           string   `json:"note"`
}

type archiveRequest struct {
	Archived *bool `json:"archived"`
}

type correctEntryRequest struct {
	Status *string `json:"status"`
	Note   *string `json:"note"`
}
