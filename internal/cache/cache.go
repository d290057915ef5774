package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a prefixed JSON cache on top of redis, shared by all picker
// sessions as the snapshot store in front of the upstream API.
type Cache struct {
	redisClient *redis.Client
	ctx         context.Context
	prefix      string
}

func NewCache(client *redis.Client, prefix string) *Cache {
	return &Cache{
		redisClient: client,
		ctx:         context.Background(),
		prefix:      prefix,
	}
}

func (c *Cache) Set(key string, value interface{}, ttl time.Duration) error {
	var data interface{} = value

	switch v := value.(type) {
	case string:
		data = v
	default:
		jsonData, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value to JSON: %w", err)
		}
		data = jsonData
	}

	fullKey := fmt.Sprintf("%s:%s", c.prefix, key)
	return c.redisClient.Set(c.ctx, fullKey, data, ttl).Err()
}

func (c *Cache) Get(key string) (string, error) {
	fullKey := fmt.Sprintf("%s:%s", c.prefix, key)
	return c.redisClient.Get(c.ctx, fullKey).Result()
}

func (c *Cache) GetJSON(key string, v interface{}) error {
	fullKey := fmt.Sprintf("%s:%s", c.prefix, key)
	jsonData, err := c.redisClient.Get(c.ctx, fullKey).Result()
	if err != nil {
		return fmt.Errorf("failed to get value from Redis: %w", err)
	}
	return json.Unmarshal([]byte(jsonData), v)
}

func (c *Cache) Delete(key string) error {
	fullKey := fmt.Sprintf("%s:%s", c.prefix, key)
	return c.redisClient.Del(c.ctx, fullKey).Err()
}

func (c *Cache) Exists(key string) (bool, error) {
	fullKey := fmt.Sprintf("%s:%s", c.prefix, key)
	result, err := c.redisClient.Exists(c.ctx, fullKey).Result()
	return result > 0, err
}
