package util

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"bobatcal/internal/app/bobatcal/entity"
	"bobatcal/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	serviceName   = "bobatcal"
	shopsCacheKey = "shops:all"
)

// RedisShopCache кеширует список магазинов в Redis
// Магазины почти никогда не меняются после создания, поэтому список
// живет с TTL и инвалидируется только при создании нового магазина
type RedisShopCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisShopCache(addr, password string, db int, ttl time.Duration) (*RedisShopCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisShopCache{client: client, ttl: ttl}, nil
}

func (r *RedisShopCache) SetShops(ctx context.Context, shops []entity.Shop) error {
	data, err := json.Marshal(shops)
	if err != nil {
		return fmt.Errorf("failed to marshal shops: %w", err)
	}

	if err := r.client.Set(ctx, shopsCacheKey, data, r.ttl).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpSet)
		return fmt.Errorf("failed to set shops in cache: %w", err)
	}

	return nil
}

func (r *RedisShopCache) GetShops(ctx context.Context) ([]entity.Shop, error) {
	data, err := r.client.Get(ctx, shopsCacheKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		metrics.RecordRedisError(serviceName, metrics.RedisOpGet)
		return nil, fmt.Errorf("failed to get shops from cache: %w", err)
	}

	var shops []entity.Shop
	if err := json.Unmarshal(data, &shops); err != nil {
		return nil, fmt.Errorf("failed to unmarshal shops: %w", err)
	}

	return shops, nil
}

func (r *RedisShopCache) DeleteShops(ctx context.Context) error {
	if err := r.client.Del(ctx, shopsCacheKey).Err(); err != nil {
		metrics.RecordRedisError(serviceName, metrics.RedisOpDel)
		return fmt.Errorf("failed to delete shops from cache: %w", err)
	}
	return nil
}

func (r *RedisShopCache) Close() error {
	return r.client.Close()
}
