package auth_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/ridewitus/auth"
)

func TestMemoryRevoker(t *testing.T) {
	// Arrange
	ctx := context.Background()
	r := auth.NewMemoryRevoker()

	// Act
	require.NoError(t, r.Revoke(ctx, "live", time.Now().Add(time.Hour)))
	require.NoError(t, r.Revoke(ctx, "stale", time.Now().Add(-time.Hour)))

	// Assert
	ok, err := r.Revoked(ctx, "live")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Revoked(ctx, "stale")
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = r.Revoked(ctx, "unknown")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryRevokerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := auth.NewMemoryRevoker()
	require.ErrorIs(t, r.Revoke(ctx, "id", time.Now().Add(time.Hour)), context.Canceled)

	_, err := r.Revoked(ctx, "id")
	require.ErrorIs(t, err, context.Canceled)
}

func TestRedisRevoker(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR is not set")
	}

	// Arrange
	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })

	r := auth.NewRedisRevoker(client)
	id := uuid.NewString()

	// Act
	require.NoError(t, r.Revoke(ctx, id, time.Now().Add(time.Minute)))

	// Assert
	ok, err := r.Revoked(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = r.Revoked(ctx, uuid.NewString())
	require.NoError(t, err)
	require.False(t, ok)
}
