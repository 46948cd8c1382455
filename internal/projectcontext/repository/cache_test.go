package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/decisio-app/decisio-backend/internal/projectcontext/domain"
	"github.com/decisio-app/decisio-backend/internal/projectcontext/repository"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	ctx := context.Background()
	err = client.Ping(ctx).Err()
	require.NoError(t, err)

	return client, mr
}

func sampleContext() *domain.ProjectContext {
	constraints := "on-call budget is fixed"
	return &domain.ProjectContext{
		ID:             uuid.New(),
		TeamSize:       8,
		ExpectedUsers:  25000,
		TimelineMonths: 9,
		Constraints:    &constraints,
		UpdatedAt:      time.Now().UTC().Truncate(time.Millisecond),
	}
}

func TestCache_SetAndGet(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	cache := repository.NewCache(client)
	ctx := context.Background()

	pc := sampleContext()
	require.NoError(t, cache.Set(ctx, pc))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, pc.ID, got.ID)
	assert.Equal(t, pc.TeamSize, got.TeamSize)
	assert.Equal(t, pc.ExpectedUsers, got.ExpectedUsers)
	assert.Equal(t, pc.TimelineMonths, got.TimelineMonths)
	require.NotNil(t, got.Constraints)
	assert.Equal(t, *pc.Constraints, *got.Constraints)
}

func TestCache_MissReturnsNil(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	cache := repository.NewCache(client)

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_Invalidate(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	cache := repository.NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleContext()))
	require.NoError(t, cache.Invalidate(ctx))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCache_EntryExpires(t *testing.T) {
	client, mr := setupTestRedis(t)
	defer mr.Close()
	defer client.Close()

	cache := repository.NewCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleContext()))

	// miniredis advances TTLs manually.
	mr.FastForward(6 * time.Minute)

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
