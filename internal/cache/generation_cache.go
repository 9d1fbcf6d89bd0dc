package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"questdeck/internal/model"
)

// GenerationCache handles Redis operations for the most recent generation
// result per passage
type GenerationCache interface {
	SetResult(ctx context.Context, textID string, result *model.GenerationResult) error
	GetResult(ctx context.Context, textID string) (*model.GenerationResult, error)
	DeleteResult(ctx context.Context, textID string) error
}

type generationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGenerationCache creates a new generation cache
func NewGenerationCache(client *redis.Client) GenerationCache {
	return &generationCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *generationCache) key(textID string) string {
	return fmt.Sprintf("passage:%s:generation", textID)
}

func (c *generationCache) SetResult(ctx context.Context, textID string, result *model.GenerationResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(textID), data, c.ttl).Err()
}

func (c *generationCache) GetResult(ctx context.Context, textID string) (*model.GenerationResult, error) {
	data, err := c.client.Get(ctx, c.key(textID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var result model.GenerationResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *generationCache) DeleteResult(ctx context.Context, textID string) error {
	return c.client.Del(ctx, c.key(textID)).Err()
}
