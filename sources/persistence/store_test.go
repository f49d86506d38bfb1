package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, store KeyValueStore) {
	ctx := context.Background()

	_, err := store.Get(ctx, "reportassist:missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "reportassist:key", `{"tokens":3}`, time.Hour))
	value, err := store.Get(ctx, "reportassist:key")
	require.NoError(t, err)
	assert.Equal(t, `{"tokens":3}`, value)

	require.NoError(t, store.Remove(ctx, "reportassist:key"))
	_, err = store.Get(ctx, "reportassist:key")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestRedisStore(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	exerciseStore(t, NewRedisStore(client))
}

func TestRedisStoreAppliesTTL(t *testing.T) {
	server := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client)

	require.NoError(t, store.Set(context.Background(), "bucket", "1", time.Minute))
	server.FastForward(2 * time.Minute)

	_, err := store.Get(context.Background(), "bucket")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStoreUnavailable(t *testing.T) {
	server, err := miniredis.Run()
	require.NoError(t, err)
	client := redis.NewClient(&redis.Options{Addr: server.Addr(), MaxRetries: -1})
	t.Cleanup(func() { _ = client.Close() })
	store := NewRedisStore(client)
	server.Close()

	_, err = store.Get(context.Background(), "bucket")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
