package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/segyhp/lamf-engine/internal/domain"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ProductCache keeps recently read products close to the pricing path.
type ProductCache interface {
	// Get returns nil, nil on a miss.
	Get(ctx context.Context, id uuid.UUID) (*domain.LoanProduct, error)
	Set(ctx context.Context, product *domain.LoanProduct) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type redisProductCache struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewRedisProductCache(client *redis.Client, ttl time.Duration) ProductCache {
	return &redisProductCache{redis: client, ttl: ttl}
}

func productCacheKey(id uuid.UUID) string {
	return fmt.Sprintf("loan_product:%s", id)
}

func (c *redisProductCache) Get(ctx context.Context, id uuid.UUID) (*domain.LoanProduct, error) {
	raw, err := c.redis.Get(ctx, productCacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var product domain.LoanProduct
	if err := json.Unmarshal(raw, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *redisProductCache) Set(ctx context.Context, product *domain.LoanProduct) error {
	raw, err := json.Marshal(product)
	if err != nil {
		return err
	}
	return c.redis.Set(ctx, productCacheKey(product.ID), raw, c.ttl).Err()
}

func (c *redisProductCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.redis.Del(ctx, productCacheKey(id)).Err()
}
