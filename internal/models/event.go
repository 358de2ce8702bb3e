package models

import (
	"time"

	"github.com/google/uuid"
)

// Routing keys for subscription lifecycle events.
const (
	EventSubscriptionCreated = "subscription.created"
	EventSubscriptionDeleted = "subscription.deleted"
)

// SubscriptionEvent is published whenever the endpoint records or removes a
// subscription.
type SubscriptionEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	Endpoint   string    `json:"endpoint"`
	Group      string    `json:"group"`
	Browser    string    `json:"browser,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewSubscriptionEvent(eventType, endpoint, group, browser string) SubscriptionEvent {
	return SubscriptionEvent{
		ID:         uuid.NewString(),
		Type:       eventType,
		Endpoint:   endpoint,
		Group:      group,
		Browser:    browser,
		OccurredAt: time.Now().UTC(),
	}
}
