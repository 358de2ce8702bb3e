package models

import (
	"errors"
	"strings"

	webpush "github.com/SherClockHolmes/webpush-go"
)

// StatusType tells the remote endpoint whether a subscription is being
// created or removed.
type StatusType string

const (
	StatusSubscribe   StatusType = "subscribe"
	StatusUnsubscribe StatusType = "unsubscribe"
)

// Valid reports whether the status type is one the endpoint understands.
func (s StatusType) Valid() bool {
	return s == StatusSubscribe || s == StatusUnsubscribe
}

// Key names used by the platform when serialising a subscription.
const (
	KeyP256dh = "p256dh"
	KeyAuth   = "auth"
)

var ErrIncompleteSubscription = errors.New("subscription is missing endpoint or keys")

// SubscriptionJSON is the platform serialisation of a push subscription
// (PushSubscription.toJSON in browsers).
type SubscriptionJSON struct {
	Endpoint       string            `json:"endpoint"`
	ExpirationTime *int64            `json:"expirationTime"`
	Keys           map[string]string `json:"keys,omitempty"`
}

// WebPush converts the record into the shape push senders consume. Both the
// p256dh and auth keys are required.
func (s SubscriptionJSON) WebPush() (*webpush.Subscription, error) {
	endpoint := strings.TrimSpace(s.Endpoint)
	p256dh := s.Keys[KeyP256dh]
	auth := s.Keys[KeyAuth]
	if endpoint == "" || p256dh == "" || auth == "" {
		return nil, ErrIncompleteSubscription
	}
	return &webpush.Subscription{
		Endpoint: endpoint,
		Keys: webpush.Keys{
			P256dh: p256dh,
			Auth:   auth,
		},
	}, nil
}

// SyncRequest is the body posted to the remote endpoint.
type SyncRequest struct {
	StatusType   StatusType       `json:"status_type"`
	Subscription SubscriptionJSON `json:"subscription"`
	Browser      string           `json:"browser"`
	Group        string           `json:"group"`
}
