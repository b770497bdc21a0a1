package repository_test

import (
	"context"
	"testing"
	"time"

	"listing_editor/internal/domain/models"
	"listing_editor/internal/repository"
	redisapp "listing_editor/internal/storage/redis"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func NewMockClient() (*redisapp.Client, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	return &redisapp.Client{Client: db}, mock
}

func TestRedisCatalogCache(t *testing.T) {
	ctx := context.Background()
	client, mock := NewMockClient()
	ttl := 10 * time.Minute
	cache := repository.NewRedisCatalogCache(client, ttl)

	items := []models.CatalogItem{{ID: 1, Name: "House"}, {ID: 2, Name: "Flat", Description: "City"}}
	payload := `[{"id":1,"name":"House"},{"id":2,"name":"Flat","description":"City"}]`

	t.Run("set", func(t *testing.T) {
		mock.ExpectSet("catalog:propertytype", []byte(payload), ttl).SetVal("OK")

		require.NoError(t, cache.Set(ctx, "propertytype", items))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("hit", func(t *testing.T) {
		mock.ExpectGet("catalog:propertytype").SetVal(payload)

		got, ok, err := cache.Get(ctx, "propertytype")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, items, got)
	})

	t.Run("miss", func(t *testing.T) {
		mock.ExpectGet("catalog:saletype").RedisNil()

		got, ok, err := cache.Get(ctx, "saletype")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, got)
	})

	t.Run("corrupted value is a miss", func(t *testing.T) {
		mock.ExpectGet("catalog:improvement").SetVal("{not json")

		_, ok, err := cache.Get(ctx, "improvement")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("redis error", func(t *testing.T) {
		mock.ExpectGet("catalog:improvement").SetErr(redis.ErrClosed)

		_, _, err := cache.Get(ctx, "improvement")
		assert.ErrorIs(t, err, redis.ErrClosed)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMemoryCatalogCache(t *testing.T) {
	ctx := context.Background()
	cache := repository.NewMemoryCatalogCache(time.Minute)

	_, ok, err := cache.Get(ctx, "saletype")
	require.NoError(t, err)
	assert.False(t, ok)

	items := []models.CatalogItem{{ID: 1, Name: "Sale"}}
	require.NoError(t, cache.Set(ctx, "saletype", items))

	got, ok, err := cache.Get(ctx, "saletype")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, items, got)

	// изменение результата не портит кэш
	got[0].Name = "changed"
	again, _, _ := cache.Get(ctx, "saletype")
	assert.Equal(t, "Sale", again[0].Name)
}
