package subscriber

import (
	"context"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/models"
)

// Permission is the notification permission reported by the platform.
type Permission string

const (
	PermissionGranted Permission = "granted"
	PermissionDenied  Permission = "denied"
	PermissionDefault Permission = "default"
)

// SubscribeOptions are passed to PushManager.Subscribe.
type SubscribeOptions struct {
	// UserVisibleOnly forbids silent pushes. The controller always sets it.
	UserVisibleOnly bool
	// ApplicationServerKey is the base64url VAPID public key, if any.
	ApplicationServerKey string
}

// Subscription is the platform-owned push subscription record.
type Subscription interface {
	JSON() (models.SubscriptionJSON, error)
	Unsubscribe(ctx context.Context) error
}

// PushManager creates and looks up subscriptions for a registration.
type PushManager interface {
	// GetSubscription returns nil, nil when no subscription exists.
	GetSubscription(ctx context.Context) (Subscription, error)
	Subscribe(ctx context.Context, opts SubscribeOptions) (Subscription, error)
}

// Registration is a registered background worker.
type Registration interface {
	SupportsNotifications() bool
	PushManager() PushManager
}

// Platform is the browser surface the controller depends on.
type Platform interface {
	WorkerSupported() bool
	Register(ctx context.Context, scriptURL string) (Registration, error)
	// Ready blocks until a worker controls the page.
	Ready(ctx context.Context) (Registration, error)
	Permission() Permission
	PushSupported() bool
	UserAgent() string
}

// RemoteSync posts a sync request and reports the HTTP status code.
type RemoteSync interface {
	Post(ctx context.Context, req models.SyncRequest) (int, error)
}
