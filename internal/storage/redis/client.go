package storage

import (
	"context"
	"fmt"
	"strings"

	"listing_editor/internal/storage"

	"github.com/redis/go-redis/v9"
)

type Client struct {
	*redis.Client
}

// NewClient returns storage.ErrNotConfigured when addr is empty.
func NewClient(addr, password string, db int) (*Client, error) {
	if strings.TrimSpace(addr) == "" {
		return nil, fmt.Errorf("storage.redis.NewClient: %w", storage.ErrNotConfigured)
	}

	return &Client{
		Client: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
	}, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

func (c *Client) Close() error {
	return c.Client.Close()
}
