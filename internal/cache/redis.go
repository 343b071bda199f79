package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/zvrva/travelbook/config"
	"github.com/zvrva/travelbook/internal/domain"
)

type RedisCache struct {
	client       *redis.Client
	offeringsTTL time.Duration
}

func NewRedisCache(cfg config.RedisConfig, offeringsTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:       redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB}),
		offeringsTTL: offeringsTTL,
	}
}

func (c *RedisCache) GetOfferings(ctx context.Context) ([]domain.Offering, error) {
	data, err := c.client.Get(ctx, offeringsKey()).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var offerings []domain.Offering
	if err := json.Unmarshal(data, &offerings); err != nil {
		return nil, err
	}
	return offerings, nil
}

func (c *RedisCache) SetOfferings(ctx context.Context, offerings []domain.Offering) error {
	payload, err := json.Marshal(offerings)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, offeringsKey(), payload, c.offeringsTTL).Err()
}

// InvalidateOfferings drops the cached list. Called whenever availability
// changes so the TTL is only an upper bound on staleness.
func (c *RedisCache) InvalidateOfferings(ctx context.Context) error {
	return c.client.Del(ctx, offeringsKey()).Err()
}

func offeringsKey() string {
	return "cache:offerings"
}
