package notify

import (
	"context"
	"reflect"
	"testing"
)

func TestStatusEventRoundTrip(t *testing.T) {
	event := StatusEvent{
		ApplicationID: "app-123",
		CandidateID:   "cand-456",
		OfferID:       "offer-789",
		FromStatus:    "SUBMITTED",
		ToStatus:      "IN_REVIEW",
		ActorID:       "recruiter-1",
		ChangedAt:     "2026-08-30T22:00:00Z",
		Version:       1,
	}

	payload, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("encode event: %v", err)
	}

	got, err := DecodeEvent(payload)
	if err != nil {
		t.Fatalf("decode event: %v", err)
	}

	if !reflect.DeepEqual(got, event) {
		t.Fatalf("round trip mismatch: got %+v want %+v", got, event)
	}
}

func TestDecodeEventRejectsGarbage(t *testing.T) {
	if _, err := DecodeEvent([]byte("{not json")); err == nil {
		t.Fatal("expected error for malformed payload")
	}
}

func TestLogNotifierNeverFails(t *testing.T) {
	if err := (LogNotifier{}).StatusChanged(context.Background(), StatusEvent{ApplicationID: "app-1"}); err != nil {
		t.Fatalf("StatusChanged: %v", err)
	}
}
