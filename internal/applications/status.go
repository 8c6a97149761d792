package applications

import "strings"

// Status is the stage of an application in the hiring process.
type Status string

const (
	StatusSubmitted   Status = "SUBMITTED"
	StatusInReview    Status = "IN_REVIEW"
	StatusShortlisted Status = "SHORTLISTED"
	StatusInterview   Status = "INTERVIEW"
	StatusRejected    Status = "REJECTED"
	StatusHired       Status = "HIRED"
)

var allStatuses = map[Status]bool{
	StatusSubmitted:   true,
	StatusInReview:    true,
	StatusShortlisted: true,
	StatusInterview:   true,
	StatusRejected:    true,
	StatusHired:       true,
}

// transitions is the closed transition table. HIRED and REJECTED are
// terminal; administrators can bypass the table through OverrideStatus.
var transitions = map[Status][]Status{
	StatusSubmitted:   {StatusInReview, StatusShortlisted, StatusRejected},
	StatusInReview:    {StatusShortlisted, StatusRejected, StatusInterview},
	StatusShortlisted: {StatusInterview, StatusRejected},
	StatusInterview:   {StatusHired, StatusRejected},
	StatusRejected:    {},
	StatusHired:       {},
}

// ParseStatus normalizes a raw status string.
func ParseStatus(raw string) (Status, bool) {
	status := Status(strings.ToUpper(strings.TrimSpace(raw)))
	return status, allStatuses[status]
}

// CanTransition reports whether the table allows moving from one status to
// another.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// defaultNotes are the canned explanations recorded when the caller supplies
// no note with a status change.
var defaultNotes = map[Status]string{
	StatusSubmitted:   "Application submitted",
	StatusInReview:    "Application moved to review",
	StatusShortlisted: "Candidate shortlisted",
	StatusInterview:   "Candidate invited to interview",
	StatusRejected:    "Application rejected",
	StatusHired:       "Candidate hired",
}

// defaultNote returns the canned explanation for a status change.
func defaultNote(status Status) string {
	if note, ok := defaultNotes[status]; ok {
		return note
	}
	return "Status changed to " + string(status)
}

// overrideNote returns the canned explanation for an administrative
// correction that bypassed the transition table.
func overrideNote(status Status) string {
	return "Status corrected to " + string(status) + " by an administrator"
}
