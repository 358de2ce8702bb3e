package repository

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const groupKeyPrefix = "push:group:"

// GroupIndex keeps one Redis set of subscription endpoints per group so
// senders can fan out without scanning the database.
type GroupIndex struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGroupIndex returns an index whose sets expire ttl after their last
// change. A zero ttl keeps them forever.
func NewGroupIndex(client *redis.Client, ttl time.Duration) *GroupIndex {
	return &GroupIndex{
		client: client,
		ttl:    ttl,
	}
}

func (r *GroupIndex) Close() error {
	return r.client.Close()
}

// Add records endpoint as a member of group.
func (r *GroupIndex) Add(ctx context.Context, group, endpoint string) error {
	key := groupKey(group)
	pipe := r.client.TxPipeline()
	pipe.SAdd(ctx, key, endpoint)
	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}
	_, err := pipe.Exec(ctx)
	return err
}

// Remove drops endpoint from group.
func (r *GroupIndex) Remove(ctx context.Context, group, endpoint string) error {
	return r.client.SRem(ctx, groupKey(group), endpoint).Err()
}

// Count returns the number of endpoints in group.
func (r *GroupIndex) Count(ctx context.Context, group string) (int64, error) {
	return r.client.SCard(ctx, groupKey(group)).Result()
}

func groupKey(group string) string {
	if group == "" {
		group = "_default"
	}
	return groupKeyPrefix + group
}
