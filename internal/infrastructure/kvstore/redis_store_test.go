package kvstore

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRedisStore(t *testing.T, prefix string) (*miniredis.Miniredis, *RedisStore) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, NewRedisStore(client, prefix)
}

func TestRedisStore_RoundTripWithPrefix(t *testing.T) {
	mr, store := setupRedisStore(t, "clinic-a:")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "vr_therapy_auth", []byte(`{"isAuthenticated":true}`)))

	raw, err := mr.Get("clinic-a:vr_therapy_auth")
	require.NoError(t, err)
	assert.Equal(t, `{"isAuthenticated":true}`, raw)

	value, ok, err := store.Get(ctx, "vr_therapy_auth")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"isAuthenticated":true}`, string(value))
}

func TestRedisStore_GetMissing(t *testing.T) {
	_, store := setupRedisStore(t, "")

	_, ok, err := store.Get(context.Background(), "nothing")

	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStore_Delete(t *testing.T) {
	mr, store := setupRedisStore(t, "p:")
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "one", []byte(`1`)))
	require.NoError(t, store.Set(ctx, "two", []byte(`2`)))
	require.NoError(t, store.Delete(ctx, "one", "two"))

	assert.False(t, mr.Exists("p:one"))
	assert.False(t, mr.Exists("p:two"))
}

func TestRedisStore_ConnectionFailure(t *testing.T) {
	mr, store := setupRedisStore(t, "")
	mr.Close()

	_, _, err := store.Get(context.Background(), "key")

	assert.Error(t, err)
}
