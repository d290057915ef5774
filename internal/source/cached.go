package source

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/bookhive/order_picker_service/internal/cache"
	"github.com/bookhive/order_picker_service/internal/catalog"
)

// Cached puts a shared redis-backed snapshot cache in front of a Client so
// that opening a new picker session does not refetch unchanged catalogs.
// A missing or unreachable cache degrades to direct upstream fetches.
type Cached struct {
	client    *Client
	snapshots *cache.Cache
	ttl       time.Duration
	logger    *zap.Logger
}

func NewCached(client *Client, snapshots *cache.Cache, ttl time.Duration, logger *zap.Logger) *Cached {
	return &Cached{
		client:    client,
		snapshots: snapshots,
		ttl:       ttl,
		logger:    logger,
	}
}

func (c *Cached) FetchBooks(ctx context.Context) ([]catalog.Entity, error) {
	return c.fetch(ctx, "books", c.client.FetchBooks)
}

func (c *Cached) FetchUsers(ctx context.Context) ([]catalog.Entity, error) {
	return c.fetch(ctx, "users", c.client.FetchUsers)
}

func (c *Cached) CreateOrder(ctx context.Context, payload OrderPayload) error {
	return c.client.CreateOrder(ctx, payload)
}

// InvalidateSnapshots drops the cached catalogs so the next fetch hits the
// upstream API. Used by the explicit reload affordance.
func (c *Cached) InvalidateSnapshots() {
	if c.snapshots == nil {
		return
	}
	for _, key := range []string{"books", "users"} {
		if err := c.snapshots.Delete(key); err != nil {
			c.logger.Warn("Failed to invalidate snapshot", zap.String("key", key), zap.Error(err))
		}
	}
}

func (c *Cached) fetch(ctx context.Context, key string, direct func(context.Context) ([]catalog.Entity, error)) ([]catalog.Entity, error) {
	if c.snapshots != nil {
		var cached []catalog.Entity
		err := c.snapshots.GetJSON(key, &cached)
		if err == nil {
			c.logger.Info("Snapshot cache hit", zap.String("key", key))
			return cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("Snapshot cache error", zap.String("key", key), zap.Error(err))
		}
	}

	entities, err := direct(ctx)
	if err != nil {
		return nil, err
	}

	if c.snapshots != nil {
		if err := c.snapshots.Set(key, entities, c.ttl); err != nil {
			c.logger.Warn("Failed to cache snapshot", zap.String("key", key), zap.Error(err))
		} else {
			c.logger.Info("Snapshot cached", zap.String("key", key))
		}
	}
	return entities, nil
}
