package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carelink-app/carelink-backend/internal/guides/domain"
)

const (
	relationKeyPrefix = "guides:rel:" // guides:rel:{relation}
	defaultTTL        = 5 * time.Minute
)

// ErrMiss is returned when no cached entry exists for the relation.
var ErrMiss = errors.New("guide cache miss")

// RelationCache holds the per-relation CMS result set so repeated
// match-guides calls don't hit the CMS until the entry expires.
type RelationCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRelationCache(client *redis.Client) *RelationCache {
	return &RelationCache{client: client, ttl: defaultTTL}
}

func (c *RelationCache) key(relation string) string {
	return relationKeyPrefix + relation
}

func (c *RelationCache) Get(ctx context.Context, relation string) ([]domain.Guide, error) {
	data, err := c.client.Get(ctx, c.key(relation)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("get cached guides: %w", err)
	}

	var guides []domain.Guide
	if err := json.Unmarshal([]byte(data), &guides); err != nil {
		return nil, fmt.Errorf("unmarshal cached guides: %w", err)
	}
	return guides, nil
}

func (c *RelationCache) Put(ctx context.Context, relation string, guides []domain.Guide) error {
	data, err := json.Marshal(guides)
	if err != nil {
		return fmt.Errorf("marshal guides: %w", err)
	}
	if err := c.client.Set(ctx, c.key(relation), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache guides: %w", err)
	}
	return nil
}
