package notify

import (
	"context"
	"encoding/json"
)

// Notifier delivers status-change events to downstream consumers.
type Notifier interface {
	StatusChanged(ctx context.Context, event StatusEvent) error
}

// StatusEvent is the payload published when an application changes status.
type StatusEvent struct {
	ApplicationID string `json:"applicationId"`
	CandidateID   string `json:"candidateId"`
	OfferID       string `json:"offerId"`
	FromStatus    string `json:"fromStatus"`
	ToStatus      string `json:"toStatus"`
	ActorID       string `json:"actorId"`
	ChangedAt     string `json:"changedAt"`
	Version       int    `json:"version"`
}

// EncodeEvent returns the JSON representation of an event.
func EncodeEvent(event StatusEvent) ([]byte, error) {
	return json.Marshal(event)
}

// DecodeEvent parses a JSON payload into a StatusEvent.
func DecodeEvent(payload []byte) (StatusEvent, error) {
	var event StatusEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		return StatusEvent{}, err
	}
	return event, nil
}
