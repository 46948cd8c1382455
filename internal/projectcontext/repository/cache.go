package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/decisio-app/decisio-backend/internal/projectcontext/domain"
)

const (
	currentContextKey = "decisio:context:current"
	contextTTL        = 5 * time.Minute
)

// Cache keeps the current project context in redis so the read endpoint does
// not hit postgres on every poll. The drift engine never reads from here; it
// always loads the context inside its own transaction.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Get returns the cached context, or (nil, nil) on a miss.
func (c *Cache) Get(ctx context.Context) (*domain.ProjectContext, error) {
	data, err := c.client.Get(ctx, currentContextKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cached context: %w", err)
	}

	var pc domain.ProjectContext
	if err := json.Unmarshal([]byte(data), &pc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached context: %w", err)
	}
	return &pc, nil
}

func (c *Cache) Set(ctx context.Context, pc *domain.ProjectContext) error {
	data, err := json.Marshal(pc)
	if err != nil {
		return fmt.Errorf("failed to marshal context: %w", err)
	}
	if err := c.client.Set(ctx, currentContextKey, data, contextTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache context: %w", err)
	}
	return nil
}

func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, currentContextKey).Err(); err != nil {
		return fmt.Errorf("failed to invalidate context cache: %w", err)
	}
	return nil
}
