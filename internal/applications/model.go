package applications

import "time"

// Application links a candidate to a job offer and tracks where it stands in
// the hiring process.
type Application struct {
	ID          string
	CandidateID string
	OfferID     string
	Status      Status
	Archived    bool
	CoverLetter string
	ResumeKey   string
	AppliedAt   time.Time
}

// HistoryEntry is one line in an application's audit ledger. Entries are
// appended on every status change and never rewritten by the system itself;
// only explicit corrections touch them afterwards.
type HistoryEntry struct {
	ID            string
	ApplicationID string
	Status        Status
	ActorID       string
	Note          string
	ChangedAt     time.Time
}

// ListFilter narrows an application listing. Archived applications are
// excluded unless IncludeArchived is set.
type ListFilter struct {
	CandidateID     string
	OfferID         string
	Status          Status
	IncludeArchived bool
	Limit           int
	Offset          int
}
