package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/models"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/internal/repository"
	"github.com/CyberwizD/Distributed-Notification-System/services/push_subscriber/pkg/metrics"
)

var ErrInvalidRequest = errors.New("invalid sync request")

type SubscriptionStore interface {
	Save(ctx context.Context, sub repository.PushSubscription) error
	Delete(ctx context.Context, endpoint string) (bool, error)
	CountByGroup(ctx context.Context, group string) (int64, error)
}

type GroupIndex interface {
	Add(ctx context.Context, group, endpoint string) error
	Remove(ctx context.Context, group, endpoint string) error
	Count(ctx context.Context, group string) (int64, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, event models.SubscriptionEvent) error
}

// Registry applies sync requests on the endpoint side. The store is the
// source of truth; the group index and event publisher are optional and their
// failures only degrade the request.
type Registry struct {
	store     SubscriptionStore
	index     GroupIndex
	publisher EventPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
}

func NewRegistry(store SubscriptionStore, index GroupIndex, publisher EventPublisher, metrics *metrics.Metrics, logger *slog.Logger) *Registry {
	return &Registry{
		store:     store,
		index:     index,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger,
	}
}

// Register stores the subscription carried by req.
func (r *Registry) Register(ctx context.Context, req models.SyncRequest) error {
	sub, err := req.Subscription.WebPush()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}

	record := repository.PushSubscription{
		Endpoint: sub.Endpoint,
		P256dh:   sub.Keys.P256dh,
		Auth:     sub.Keys.Auth,
		Browser:  req.Browser,
		Group:    req.Group,
	}
	if err := r.store.Save(ctx, record); err != nil {
		return fmt.Errorf("save subscription: %w", err)
	}
	r.metrics.IncCreated()

	if r.index != nil {
		if err := r.index.Add(ctx, req.Group, sub.Endpoint); err != nil {
			r.degraded("group_index", "failed to index subscription", req.Group, err)
		}
	}
	r.publish(ctx, models.NewSubscriptionEvent(models.EventSubscriptionCreated, sub.Endpoint, req.Group, req.Browser))
	return nil
}

// Unregister removes the subscription carried by req and reports whether it
// was stored. Removing an unknown subscription is not an error.
func (r *Registry) Unregister(ctx context.Context, req models.SyncRequest) (bool, error) {
	endpoint := strings.TrimSpace(req.Subscription.Endpoint)
	if endpoint == "" {
		return false, fmt.Errorf("%w: %v", ErrInvalidRequest, models.ErrIncompleteSubscription)
	}

	existed, err := r.store.Delete(ctx, endpoint)
	if err != nil {
		return false, fmt.Errorf("delete subscription: %w", err)
	}

	if r.index != nil {
		if err := r.index.Remove(ctx, req.Group, endpoint); err != nil {
			r.degraded("group_index", "failed to unindex subscription", req.Group, err)
		}
	}
	if !existed {
		r.logger.Info("unsubscribe for unknown subscription", slog.String("group", req.Group))
		return false, nil
	}
	r.metrics.IncDeleted()
	r.publish(ctx, models.NewSubscriptionEvent(models.EventSubscriptionDeleted, endpoint, req.Group, req.Browser))
	return true, nil
}

// GroupSize counts subscriptions in group, preferring the index.
func (r *Registry) GroupSize(ctx context.Context, group string) (int64, error) {
	if r.index != nil {
		count, err := r.index.Count(ctx, group)
		if err == nil {
			return count, nil
		}
		r.degraded("group_index", "group index count failed, falling back to store", group, err)
	}
	return r.store.CountByGroup(ctx, group)
}

func (r *Registry) publish(ctx context.Context, event models.SubscriptionEvent) {
	if r.publisher == nil {
		return
	}
	if err := r.publisher.Publish(ctx, event); err != nil {
		r.degraded("events", "failed to publish subscription event", event.Group, err)
	}
}

func (r *Registry) degraded(component, msg, group string, err error) {
	r.metrics.IncDegraded(component)
	r.logger.Warn(msg, slog.String("group", group), slog.Any("error", err))
}
