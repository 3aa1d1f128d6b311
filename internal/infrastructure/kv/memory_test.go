package kv_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalog-admin/internal/domain/repository"
	"github.com/jhoicas/catalog-admin/internal/infrastructure/kv"
)

// exerciseStore verifica el contrato de repository.KeyValueStore.
func exerciseStore(t *testing.T, s repository.KeyValueStore, key string) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok, "una clave ausente no es error")

	require.NoError(t, s.Set(ctx, key, `{"email":"a@b.c"}`))
	v, ok, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, `{"email":"a@b.c"}`, v)

	require.NoError(t, s.Set(ctx, key, "otro"))
	v, _, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "otro", v)

	require.NoError(t, s.Delete(ctx, key))
	_, ok, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx, key), "borrar una clave ausente no es error")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, kv.NewMemoryStore(), "user:c1")
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL no definido")
	}
	ctx := context.Background()
	client, err := kv.NewRedisClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	key := "test:" + time.Now().Format("150405.000000")
	exerciseStore(t, kv.NewRedisStore(client, time.Minute), key)
}

func TestNewRedisClient_URLInvalida(t *testing.T) {
	_, err := kv.NewRedisClient(context.Background(), "no-es-una-url")

	assert.Error(t, err)
}
