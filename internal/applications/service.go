package applications

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"recruit-backend/internal/profiles"
	"recruit-backend/internal/shared/metrics"
)

// Service implements the application lifecycle: submission, status changes
// under the transition table, archival, and the history ledger.
type Service struct {
	Repo     Repo
	Profiles profiles.Repo

	now func() time.Time
}

func NewService(repo Repo, profilesRepo profiles.Repo) *Service {
	return &Service{Repo: repo, Profiles: profilesRepo, now: time.Now}
}

// SubmitInput carries everything needed to create a new application.
type SubmitInput struct {
	CandidateID string
	OfferID     string
	CoverLetter string
	ResumeKey   string
	ActorID     string
}

// Submit creates an application in SUBMITTED status with its first ledger
// entry. Candidate and offer must exist.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (Application, error) {
	if in.CandidateID == "" || in.OfferID == "" {
		return Application{}, fmt.Errorf("%w: candidateId and offerId are required", ErrInvalidInput)
	}
	if _, err := s.Profiles.GetCandidateProfile(ctx, in.CandidateID); err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return Application{}, fmt.Errorf("%w: candidate %s", ErrNotFound, in.CandidateID)
		}
		return Application{}, err
	}
	if _, err := s.Profiles.GetJobOffer(ctx, in.OfferID); err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return Application{}, fmt.Errorf("%w: offer %s", ErrNotFound, in.OfferID)
		}
		return Application{}, err
	}

	now := s.now().UTC()
	app := Application{
		ID:          uuid.NewString(),
		CandidateID: in.CandidateID,
		OfferID:     in.OfferID,
		Status:      StatusSubmitted,
		CoverLetter: in.CoverLetter,
		ResumeKey:   in.ResumeKey,
		AppliedAt:   now,
	}
	initial := HistoryEntry{
		ID:            uuid.NewString(),
		ApplicationID: app.ID,
		Status:        StatusSubmitted,
		ActorID:       in.ActorID,
		Note:          defaultNote(StatusSubmitted),
		ChangedAt:     now,
	}
	if err := s.Repo.Create(ctx, app, initial); err != nil {
		return Application{}, err
	}
	return app, nil
}

func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	return s.Repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, filter ListFilter) ([]Application, error) {
	if filter.Status != "" {
		status, ok := ParseStatus(string(filter.Status))
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, filter.Status)
		}
		filter.Status = status
	}
	return s.Repo.List(ctx, filter)
}

// UpdateStatus moves an application to a new status. The move must be
// allowed by the transition table; exactly one ledger entry is appended.
func (s *Service) UpdateStatus(ctx context.Context, id, rawStatus, actorID, note string) (Application, HistoryEntry, error) {
	status, ok := ParseStatus(rawStatus)
	if !ok {
		return Application{}, HistoryEntry{}, fmt.Errorf("%w: %q", ErrInvalidStatus, rawStatus)
	}
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Application{}, HistoryEntry{}, err
	}
	if !CanTransition(app.Status, status) {
		return Application{}, HistoryEntry{}, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, app.Status, status)
	}
	return s.applyStatus(ctx, app, status, actorID, note, defaultNote(status))
}

// OverrideStatus sets any valid status regardless of the transition table.
// Reserved for administrators fixing mistakes; the ledger records the
// correction like any other change.
func (s *Service) OverrideStatus(ctx context.Context, id, rawStatus, actorID, note string) (Application, HistoryEntry, error) {
	status, ok := ParseStatus(rawStatus)
	if !ok {
		return Application{}, HistoryEntry{}, fmt.Errorf("%w: %q", ErrInvalidStatus, rawStatus)
	}
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Application{}, HistoryEntry{}, err
	}
	return s.applyStatus(ctx, app, status, actorID, note, overrideNote(status))
}

func (s *Service) applyStatus(ctx context.Context, app Application, status Status, actorID, note, fallbackNote string) (Application, HistoryEntry, error) {
	if strings.TrimSpace(note) == "" {
		note = fallbackNote
	}
	entry := HistoryEntry{
		ID:            uuid.NewString(),
		ApplicationID: app.ID,
		Status:        status,
		ActorID:       actorID,
		Note:          note,
		ChangedAt:     s.now().UTC(),
	}
	if err := s.Repo.UpdateStatus(ctx, app.ID, status, entry); err != nil {
		return Application{}, HistoryEntry{}, err
	}
	app.Status = status
	metrics.IncStatusChange()
	return app, entry, nil
}

// SetArchived flips the archived flag. Archival is a visibility toggle: the
// status and the ledger are left untouched, and the operation is idempotent.
func (s *Service) SetArchived(ctx context.Context, id string, archived bool) (Application, error) {
	app, err := s.Repo.Get(ctx, id)
	if err != nil {
		return Application{}, err
	}
	if app.Archived == archived {
		return app, nil
	}
	if err := s.Repo.SetArchived(ctx, id, archived); err != nil {
		return Application{}, err
	}
	app.Archived = archived
	return app, nil
}

// History returns the ledger for an application, oldest entry first.
func (s *Service) History(ctx context.Context, applicationID string) ([]HistoryEntry, error) {
	if _, err := s.Repo.Get(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.Repo.History(ctx, applicationID)
}

// CorrectEntry rewrites the status and/or note of an existing ledger entry.
// The entry keeps its identity and timestamp.
func (s *Service) CorrectEntry(ctx context.Context, applicationID, entryID string, rawStatus, note *string) (HistoryEntry, error) {
	entry, err := s.Repo.GetEntry(ctx, entryID)
	if err != nil {
		return HistoryEntry{}, err
	}
	if entry.ApplicationID != applicationID {
		return HistoryEntry{}, ErrNotFound
	}
	if rawStatus != nil {
		status, ok := ParseStatus(*rawStatus)
		if !ok {
			return HistoryEntry{}, fmt.Errorf("%w: %q", ErrInvalidStatus, *rawStatus)
		}
		entry.Status = status
	}
	if note != nil {
		entry.Note = *note
	}
	if err := s.Repo.UpdateEntry(ctx, entry); err != nil {
		return HistoryEntry{}, err
	}
	return entry, nil
}

// RemoveEntry deletes a ledger entry. An application always keeps at least
// one entry, so removing the last one is refused.
func (s *Service) RemoveEntry(ctx context.Context, applicationID, entryID string) error {
	entry, err := s.Repo.GetEntry(ctx, entryID)
	if err != nil {
		return err
	}
	if entry.ApplicationID != applicationID {
		return ErrNotFound
	}
	count, err := s.Repo.CountEntries(ctx, entry.ApplicationID)
	if err != nil {
		return err
	}
	if count <= 1 {
		return ErrLastEntry
	}
	return s.Repo.DeleteEntry(ctx, entryID)
}
