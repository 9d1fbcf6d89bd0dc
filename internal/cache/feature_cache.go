package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"questdeck/internal/model"
)

// FeatureCache handles Redis operations for passage attribute records. Only
// source data is cached; computed decisions never are.
type FeatureCache interface {
	SetFeatures(ctx context.Context, textID string, features model.AttributeRecord) error
	GetFeatures(ctx context.Context, textID string) (model.AttributeRecord, error)
	DeleteFeatures(ctx context.Context, textID string) error
}

type featureCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewFeatureCache creates a new feature cache
func NewFeatureCache(client *redis.Client) FeatureCache {
	return &featureCache{
		client: client,
		ttl:    1 * time.Hour,
	}
}

func (c *featureCache) key(textID string) string {
	return fmt.Sprintf("passage:%s:features", textID)
}

func (c *featureCache) SetFeatures(ctx context.Context, textID string, features model.AttributeRecord) error {
	data, err := json.Marshal(features)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(textID), data, c.ttl).Err()
}

func (c *featureCache) GetFeatures(ctx context.Context, textID string) (model.AttributeRecord, error) {
	data, err := c.client.Get(ctx, c.key(textID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var features model.AttributeRecord
	if err := json.Unmarshal([]byte(data), &features); err != nil {
		return nil, err
	}
	return features, nil
}

func (c *featureCache) DeleteFeatures(ctx context.Context, textID string) error {
	return c.client.Del(ctx, c.key(textID)).Err()
}
