package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"listing_editor/internal/domain/models"
	redisapp "listing_editor/internal/storage/redis"

	"github.com/goccy/go-json"
	"github.com/patrickmn/go-cache"
	"github.com/redis/go-redis/v9"
)

// RedisCatalogCache shares catalogs between BFF replicas.
type RedisCatalogCache struct {
	Client *redisapp.Client
	ttl    time.Duration
}

func NewRedisCatalogCache(client *redisapp.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{Client: client, ttl: ttl}
}

func (r *RedisCatalogCache) Get(ctx context.Context, key string) ([]models.CatalogItem, bool, error) {
	const op = "repository.catalog_cache.Get"

	val, err := r.Client.Get(ctx, catalogKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%s: %w", op, err)
	}

	var items []models.CatalogItem
	if err := json.Unmarshal(val, &items); err != nil {
		// битое значение считаем промахом
		return nil, false, nil
	}

	return items, true, nil
}

func (r *RedisCatalogCache) Set(ctx context.Context, key string, items []models.CatalogItem) error {
	const op = "repository.catalog_cache.Set"

	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	if err := r.Client.Set(ctx, catalogKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// MemoryCatalogCache is the in-process fallback when redis is not configured.
type MemoryCatalogCache struct {
	c *cache.Cache
}

func NewMemoryCatalogCache(ttl time.Duration) *MemoryCatalogCache {
	return &MemoryCatalogCache{c: cache.New(ttl, 2*ttl)}
}

func (m *MemoryCatalogCache) Get(_ context.Context, key string) ([]models.CatalogItem, bool, error) {
	v, ok := m.c.Get(catalogKey(key))
	if !ok {
		return nil, false, nil
	}
	items := v.([]models.CatalogItem)
	return append([]models.CatalogItem(nil), items...), true, nil
}

func (m *MemoryCatalogCache) Set(_ context.Context, key string, items []models.CatalogItem) error {
	m.c.Set(catalogKey(key), append([]models.CatalogItem(nil), items...), cache.DefaultExpiration)
	return nil
}

func catalogKey(name string) string {
	return "catalog:" + name
}
