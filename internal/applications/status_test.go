package applications

import "testing"

func TestParseStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want Status
		ok   bool
	}{
		{"SUBMITTED", StatusSubmitted, true},
		{"in_review", StatusInReview, true},
		{"  hired  ", StatusHired, true},
		{"PENDING", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseStatus(tc.raw)
		if ok != tc.ok {
			t.Fatalf("ParseStatus(%q) ok = %v, want %v", tc.raw, ok, tc.ok)
		}
		if ok && got != tc.want {
			t.Fatalf("ParseStatus(%q) = %s, want %s", tc.raw, got, tc.want)
		}
	}
}

func TestTransitionTable(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusSubmitted, StatusInReview},
		{StatusSubmitted, StatusShortlisted},
		{StatusSubmitted, StatusRejected},
		{StatusInReview, StatusShortlisted},
		{StatusInReview, StatusRejected},
		{StatusInReview, StatusInterview},
		{StatusShortlisted, StatusInterview},
		{StatusShortlisted, StatusRejected},
		{StatusInterview, StatusHired},
		{StatusInterview, StatusRejected},
	}
	for _, tc := range allowed {
		if !CanTransition(tc.from, tc.to) {
			t.Fatalf("CanTransition(%s, %s) = false, want true", tc.from, tc.to)
		}
	}

	denied := []struct{ from, to Status }{
		{StatusSubmitted, StatusHired},
		{StatusSubmitted, StatusInterview},
		{StatusInReview, StatusHired},
		{StatusShortlisted, StatusHired},
		{StatusInterview, StatusShortlisted},
		{StatusHired, StatusRejected},
		{StatusRejected, StatusInReview},
		{StatusHired, StatusSubmitted},
	}
	for _, tc := range denied {
		if CanTransition(tc.from, tc.to) {
			t.Fatalf("CanTransition(%s, %s) = true, want false", tc.from, tc.to)
		}
	}
}

func TestTerminalStatusesHaveNoExits(t *testing.T) {
	for _, terminal := range []Status{StatusHired, StatusRejected} {
		for next := range allStatuses {
			if CanTransition(terminal, next) {
				t.Fatalf("terminal status %s allows transition to %s", terminal, next)
			}
		}
	}
}

func TestDefaultNotesCoverAllStatuses(t *testing.T) {
	for status := range allStatuses {
		if defaultNote(status) == "" {
			t.Fatalf("defaultNote(%s) is empty", status)
		}
	}
}
