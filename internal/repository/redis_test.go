package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestGroupIndexAddRemove(t *testing.T) {
	mr, client := setupRedis(t)
	idx := NewGroupIndex(client, 0)
	ctx := context.Background()

	require.NoError(t, idx.Add(ctx, "staff", "https://push.example.com/a"))
	require.NoError(t, idx.Add(ctx, "staff", "https://push.example.com/b"))
	require.NoError(t, idx.Add(ctx, "staff", "https://push.example.com/a"))

	count, err := idx.Count(ctx, "staff")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	require.NoError(t, idx.Remove(ctx, "staff", "https://push.example.com/a"))
	ok, err := mr.IsMember("push:group:staff", "https://push.example.com/a")
	require.NoError(t, err)
	assert.False(t, ok)

	count, err = idx.Count(ctx, "staff")
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestGroupIndexTTL(t *testing.T) {
	mr, client := setupRedis(t)
	idx := NewGroupIndex(client, time.Hour)

	require.NoError(t, idx.Add(context.Background(), "news", "https://push.example.com/a"))
	assert.Equal(t, time.Hour, mr.TTL("push:group:news"))

	mr.FastForward(2 * time.Hour)
	count, err := idx.Count(context.Background(), "news")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGroupIndexEmptyGroupUsesDefaultKey(t *testing.T) {
	mr, client := setupRedis(t)
	idx := NewGroupIndex(client, 0)

	require.NoError(t, idx.Add(context.Background(), "", "https://push.example.com/a"))
	members, err := mr.Members("push:group:_default")
	require.NoError(t, err)
	assert.Equal(t, []string{"https://push.example.com/a"}, members)
}
